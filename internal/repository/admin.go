package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/flowcoaching/site-server-go/internal/model"
)

type AdminUserRepository interface {
	Create(ctx context.Context, params model.CreateAdminUserParams) (*model.AdminUser, error)
	FindByEmail(ctx context.Context, email string) (*model.AdminUser, error)
	FindByID(ctx context.Context, id string) (*model.AdminUser, error)
	FindAll(ctx context.Context) ([]model.AdminUser, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}

type adminUserRepo struct {
	db *sqlx.DB
}

func NewAdminUserRepository(db *sqlx.DB) AdminUserRepository {
	return &adminUserRepo{db: db}
}

func (r *adminUserRepo) Create(ctx context.Context, params model.CreateAdminUserParams) (*model.AdminUser, error) {
	var admin model.AdminUser
	err := r.db.GetContext(ctx, &admin, `
		INSERT INTO admin_users (id, email, password_hash, name)
		VALUES ($1, $2, $3, $4)
		RETURNING *
	`, params.ID, params.Email, params.PasswordHash, params.Name)
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *adminUserRepo) FindByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	var admin model.AdminUser
	err := r.db.GetContext(ctx, &admin, `
		SELECT * FROM admin_users WHERE email = $1
	`, email)
	return HandleNotFound(&admin, err)
}

func (r *adminUserRepo) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	var admin model.AdminUser
	err := r.db.GetContext(ctx, &admin, `
		SELECT * FROM admin_users WHERE id = $1
	`, id)
	return HandleNotFound(&admin, err)
}

func (r *adminUserRepo) FindAll(ctx context.Context) ([]model.AdminUser, error) {
	admins := []model.AdminUser{}
	err := r.db.SelectContext(ctx, &admins, `
		SELECT * FROM admin_users ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return admins, nil
}

func (r *adminUserRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admin_users`)
	return count, err
}

// Delete removes an admin user. Auth tokens owned by the user go with it via
// the ON DELETE CASCADE foreign key. Deleting an absent id is a no-op.
func (r *adminUserRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM admin_users WHERE id = $1`, id)
	return err
}
