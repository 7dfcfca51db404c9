package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/flowcoaching/site-server-go/internal/model"
)

type LeadRepository interface {
	Create(ctx context.Context, params model.CreateLeadParams) (*model.Lead, error)
	FindAll(ctx context.Context) ([]model.Lead, error)
}

type leadRepo struct {
	db *sqlx.DB
}

func NewLeadRepository(db *sqlx.DB) LeadRepository {
	return &leadRepo{db: db}
}

func (r *leadRepo) Create(ctx context.Context, params model.CreateLeadParams) (*model.Lead, error) {
	var lead model.Lead
	err := r.db.GetContext(ctx, &lead, `
		INSERT INTO leads (id, full_name, email, phone, consent)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *
	`, params.ID, params.FullName, params.Email, params.Phone, params.Consent)
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepo) FindAll(ctx context.Context) ([]model.Lead, error) {
	leads := []model.Lead{}
	err := r.db.SelectContext(ctx, &leads, `
		SELECT * FROM leads ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return leads, nil
}
