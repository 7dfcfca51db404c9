package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/flowcoaching/site-server-go/internal/model"
	"github.com/flowcoaching/site-server-go/internal/service"
)

// passthrough stands in for the rate-limiting middlewares, which have their
// own tests.
func passthrough(next http.Handler) http.Handler { return next }

type memAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*model.AdminUser
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{admins: make(map[string]*model.AdminUser)}
}

func (r *memAdminRepo) Create(ctx context.Context, params model.CreateAdminUserParams) (*model.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin := &model.AdminUser{
		ID:           params.ID,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		Name:         params.Name,
		CreatedAt:    time.Now(),
	}
	r.admins[params.ID] = admin
	return admin, nil
}

func (r *memAdminRepo) FindByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (r *memAdminRepo) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.admins[id], nil
}

func (r *memAdminRepo) FindAll(ctx context.Context) ([]model.AdminUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]model.AdminUser, 0, len(r.admins))
	for _, a := range r.admins {
		all = append(all, *a)
	}
	return all, nil
}

func (r *memAdminRepo) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.admins), nil
}

func (r *memAdminRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.admins, id)
	return nil
}

type memTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*model.AuthToken
}

func newMemTokenRepo() *memTokenRepo {
	return &memTokenRepo{tokens: make(map[string]*model.AuthToken)}
}

func (r *memTokenRepo) Create(ctx context.Context, params model.CreateAuthTokenParams) (*model.AuthToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token := &model.AuthToken{
		ID:        params.ID,
		TokenHash: params.TokenHash,
		AdminID:   params.AdminID,
		CreatedAt: time.Now(),
		ExpiresAt: params.ExpiresAt,
	}
	r.tokens[params.TokenHash] = token
	return token, nil
}

func (r *memTokenRepo) FindValidByTokenHash(ctx context.Context, tokenHash string) (*model.AuthToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenHash]
	if !ok || !token.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	return token, nil
}

func (r *memTokenRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, tokenHash)
	return nil
}

func (r *memTokenRepo) DeleteByAdminID(ctx context.Context, adminID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash, token := range r.tokens {
		if token.AdminID == adminID {
			delete(r.tokens, hash)
		}
	}
	return nil
}

type memLeadRepo struct {
	mu    sync.Mutex
	leads []model.Lead
}

func (r *memLeadRepo) Create(ctx context.Context, params model.CreateLeadParams) (*model.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead := model.Lead{
		ID:        params.ID,
		FullName:  params.FullName,
		Email:     params.Email,
		Phone:     params.Phone,
		Consent:   params.Consent,
		CreatedAt: time.Now(),
	}
	r.leads = append(r.leads, lead)
	return &lead, nil
}

func (r *memLeadRepo) FindAll(ctx context.Context) ([]model.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Lead, len(r.leads))
	copy(out, r.leads)
	return out, nil
}

type memSettingRepo struct {
	mu     sync.Mutex
	values map[string]string
}

func newMemSettingRepo() *memSettingRepo {
	return &memSettingRepo{values: make(map[string]string)}
}

func (r *memSettingRepo) Get(ctx context.Context, key string) (*model.Setting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.values[key]
	if !ok {
		return nil, nil
	}
	return &model.Setting{ID: key, Key: key, Value: value}, nil
}

func (r *memSettingRepo) Set(ctx context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

type stubCompletionClient struct {
	reply string
	err   error
}

func (c *stubCompletionClient) Complete(ctx context.Context, messages []service.ChatMessage) (string, error) {
	return c.reply, c.err
}
