package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/flowcoaching/site-server-go/internal/database"
	"github.com/flowcoaching/site-server-go/internal/model"
)

type SettingRepository interface {
	Get(ctx context.Context, key string) (*model.Setting, error)
	Set(ctx context.Context, key, value string) error
}

type settingRepo struct {
	db *database.DB
}

func NewSettingRepository(db *database.DB) SettingRepository {
	return &settingRepo{db: db}
}

func (r *settingRepo) Get(ctx context.Context, key string) (*model.Setting, error) {
	var setting model.Setting
	err := r.db.GetContext(ctx, &setting, `
		SELECT * FROM settings WHERE key = $1
	`, key)
	return HandleNotFound(&setting, err)
}

// Set upserts the key inside a transaction. The row lock serializes
// concurrent writers to the same key; the UNIQUE constraint on key keeps
// duplicate rows out either way.
func (r *settingRepo) Set(ctx context.Context, key, value string) error {
	return r.db.WithTx(ctx, func(tx *sqlx.Tx) error {
		var existing model.Setting
		err := tx.GetContext(ctx, &existing, `
			SELECT * FROM settings WHERE key = $1 FOR UPDATE
		`, key)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		if err == nil {
			_, err = tx.ExecContext(ctx, `
				UPDATE settings SET value = $2 WHERE key = $1
			`, key, value)
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO settings (id, key, value)
			VALUES ($1, $2, $3)
		`, uuid.NewString(), key, value)
		return err
	})
}
