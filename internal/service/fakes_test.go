package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/flowcoaching/site-server-go/internal/model"
)

// In-memory repository fakes shared by the service tests.

type fakeAdminRepo struct {
	mu     sync.Mutex
	admins map[string]*model.AdminUser
	err    error
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*model.AdminUser)}
}

func (r *fakeAdminRepo) Create(ctx context.Context, params model.CreateAdminUserParams) (*model.AdminUser, error) {
	if r.err != nil {
		return nil, r.err
	}
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

func (r *fakeAdminRepo) FindByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (r *fakeAdminRepo) FindByID(ctx context.Context, id string) (*model.AdminUser, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.admins[id], nil
}

func (r *fakeAdminRepo) FindAll(ctx context.Context) ([]model.AdminUser, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]model.AdminUser, 0, len(r.admins))
	for _, a := range r.admins {
		all = append(all, *a)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return all, nil
}

func (r *fakeAdminRepo) Count(ctx context.Context) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.admins), nil
}

func (r *fakeAdminRepo) Delete(ctx context.Context, id string) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.admins, id)
	return nil
}

type fakeTokenRepo struct {
	mu     sync.Mutex
	tokens map[string]*model.AuthToken
}

func newFakeTokenRepo() *fakeTokenRepo {
	return &fakeTokenRepo{tokens: make(map[string]*model.AuthToken)}
}

func (r *fakeTokenRepo) Create(ctx context.Context, params model.CreateAuthTokenParams) (*model.AuthToken, error) {
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

func (r *fakeTokenRepo) FindValidByTokenHash(ctx context.Context, tokenHash string) (*model.AuthToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[tokenHash]
	if !ok || !token.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	return token, nil
}

func (r *fakeTokenRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, tokenHash)
	return nil
}

func (r *fakeTokenRepo) DeleteByAdminID(ctx context.Context, adminID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash, token := range r.tokens {
		if token.AdminID == adminID {
			delete(r.tokens, hash)
		}
	}
	return nil
}

type fakeLeadRepo struct {
	mu    sync.Mutex
	leads []model.Lead
	err   error
}

func (r *fakeLeadRepo) Create(ctx context.Context, params model.CreateLeadParams) (*model.Lead, error) {
	if r.err != nil {
		return nil, r.err
	}
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

func (r *fakeLeadRepo) FindAll(ctx context.Context) ([]model.Lead, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Lead, len(r.leads))
	copy(out, r.leads)
	return out, nil
}

type fakeSettingRepo struct {
	mu     sync.Mutex
	values map[string]string
	err    error
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{values: make(map[string]string)}
}

func (r *fakeSettingRepo) Get(ctx context.Context, key string) (*model.Setting, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	value, ok := r.values[key]
	if !ok {
		return nil, nil
	}
	return &model.Setting{ID: key, Key: key, Value: value}, nil
}

func (r *fakeSettingRepo) Set(ctx context.Context, key, value string) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = value
	return nil
}

type fakeVerifier struct {
	enabled bool
	result  bool

	mu         sync.Mutex
	lastToken  string
	verifyCall int
}

func (v *fakeVerifier) Enabled() bool { return v.enabled }

func (v *fakeVerifier) Verify(ctx context.Context, token string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.lastToken = token
	v.verifyCall++
	return v.result
}

type sentMail struct {
	to      []string
	subject string
	body    string
}

type fakeMailer struct {
	mu    sync.Mutex
	sends []sentMail
	err   error
	done  chan struct{}
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{done: make(chan struct{}, 8)}
}

func (m *fakeMailer) Send(ctx context.Context, to []string, subject, body string) error {
	m.mu.Lock()
	m.sends = append(m.sends, sentMail{to: to, subject: subject, body: body})
	m.mu.Unlock()
	m.done <- struct{}{}
	return m.err
}

func (m *fakeMailer) sent() []sentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]sentMail, len(m.sends))
	copy(out, m.sends)
	return out
}

type fakeCompletionClient struct {
	completeFunc func(ctx context.Context, messages []ChatMessage) (string, error)
	lastMessages []ChatMessage
}

func (c *fakeCompletionClient) Complete(ctx context.Context, messages []ChatMessage) (string, error) {
	c.lastMessages = messages
	if c.completeFunc != nil {
		return c.completeFunc(ctx, messages)
	}
	return "", nil
}
