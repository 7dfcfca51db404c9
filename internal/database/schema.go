package database

import (
	"context"
	"fmt"
)

// schemaStatements bring an empty database up to the current schema. All
// statements are idempotent so the server can run them on every start.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS admin_users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		name          TEXT NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS auth_tokens (
		id         TEXT PRIMARY KEY,
		token_hash TEXT NOT NULL UNIQUE,
		admin_id   TEXT NOT NULL REFERENCES admin_users(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expires_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id    TEXT PRIMARY KEY,
		key   TEXT NOT NULL UNIQUE,
		value TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS leads (
		id         TEXT PRIMARY KEY,
		full_name  TEXT NOT NULL,
		email      TEXT NOT NULL,
		phone      TEXT NOT NULL,
		consent    BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_auth_tokens_admin_id ON auth_tokens(admin_id)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at DESC)`,
}

// Migrate applies the schema statements in order.
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
