package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/flowcoaching/site-server-go/internal/model"
)

type AuthTokenRepository interface {
	Create(ctx context.Context, params model.CreateAuthTokenParams) (*model.AuthToken, error)
	FindValidByTokenHash(ctx context.Context, tokenHash string) (*model.AuthToken, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteByAdminID(ctx context.Context, adminID string) error
}

type authTokenRepo struct {
	db *sqlx.DB
}

func NewAuthTokenRepository(db *sqlx.DB) AuthTokenRepository {
	return &authTokenRepo{db: db}
}

func (r *authTokenRepo) Create(ctx context.Context, params model.CreateAuthTokenParams) (*model.AuthToken, error) {
	var token model.AuthToken
	err := r.db.GetContext(ctx, &token, `
		INSERT INTO auth_tokens (id, token_hash, admin_id, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.ID, params.TokenHash, params.AdminID, params.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// FindValidByTokenHash returns the token row only while it has not expired.
// Expired rows are left in place; they simply stop matching.
func (r *authTokenRepo) FindValidByTokenHash(ctx context.Context, tokenHash string) (*model.AuthToken, error) {
	var token model.AuthToken
	err := r.db.GetContext(ctx, &token, `
		SELECT * FROM auth_tokens
		WHERE token_hash = $1 AND expires_at > NOW()
	`, tokenHash)
	return HandleNotFound(&token, err)
}

func (r *authTokenRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE token_hash = $1`, tokenHash)
	return err
}

func (r *authTokenRepo) DeleteByAdminID(ctx context.Context, adminID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE admin_id = $1`, adminID)
	return err
}
