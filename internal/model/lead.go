package model

import (
	"time"
)

type Lead struct {
	ID        string    `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"fullName"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Consent   bool      `db:"consent" json:"consent"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type CreateLeadParams struct {
	ID       string
	FullName string
	Email    string
	Phone    string
	Consent  bool
}
