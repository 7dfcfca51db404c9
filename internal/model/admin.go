package model

import (
	"time"
)

type AdminUser struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

type CreateAdminUserParams struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
}
