package model

import (
	"time"
)

type AuthToken struct {
	ID        string    `db:"id" json:"id"`
	TokenHash string    `db:"token_hash" json:"-"`
	AdminID   string    `db:"admin_id" json:"adminId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
}

type CreateAuthTokenParams struct {
	ID        string
	TokenHash string
	AdminID   string
	ExpiresAt time.Time
}
