package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/flowcoaching/site-server-go/internal/config"
	apperrors "github.com/flowcoaching/site-server-go/internal/errors"
	"github.com/flowcoaching/site-server-go/internal/model"
	"github.com/flowcoaching/site-server-go/internal/repository"
	"github.com/flowcoaching/site-server-go/internal/util"
)

const minPasswordLength = 6

type AuthService struct {
	adminRepo repository.AdminUserRepository
	tokenRepo repository.AuthTokenRepository
}

func NewAuthService(
	adminRepo repository.AdminUserRepository,
	tokenRepo repository.AuthTokenRepository,
) *AuthService {
	return &AuthService{
		adminRepo: adminRepo,
		tokenRepo: tokenRepo,
	}
}

// NeedsSetup reports whether the one-time bootstrap is still available.
func (s *AuthService) NeedsSetup(ctx context.Context) (bool, error) {
	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// Setup creates the first admin. It only succeeds while zero admins exist.
func (s *AuthService) Setup(ctx context.Context, email, password, name string) (*model.AdminUser, error) {
	count, err := s.adminRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperrors.SetupAlreadyDone("Admin zaten mevcut. Kurulum yapılamaz.")
	}

	return s.CreateAdmin(ctx, email, password, name)
}

// CreateAdmin validates the fields, rejects duplicate emails and stores a
// bcrypt hash of the password. The raw password is never persisted.
func (s *AuthService) CreateAdmin(ctx context.Context, email, password, name string) (*model.AdminUser, error) {
	email = util.NormalizeEmail(email)
	name = strings.TrimSpace(name)

	if verr := validateAdminInput(email, password, name); verr != nil {
		return nil, verr
	}

	existing, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.DuplicateEmail("Bu email zaten kayıtlı")
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return nil, err
	}

	admin, err := s.adminRepo.Create(ctx, model.CreateAdminUserParams{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("adminId", admin.ID).Msg("admin user created")

	return admin, nil
}

// Login verifies the credentials and issues a 24h bearer token. Unknown
// email and wrong password are indistinguishable: both return (nil, "", nil).
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.AdminUser, string, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, util.NormalizeEmail(email))
	if err != nil {
		return nil, "", err
	}
	if admin == nil || !util.CheckPasswordHash(password, admin.PasswordHash) {
		return nil, "", nil
	}

	token, err := s.issueToken(ctx, admin.ID)
	if err != nil {
		return nil, "", err
	}

	return admin, token, nil
}

func (s *AuthService) issueToken(ctx context.Context, adminID string) (string, error) {
	token, err := util.GenerateToken()
	if err != nil {
		return "", err
	}

	_, err = s.tokenRepo.Create(ctx, model.CreateAuthTokenParams{
		ID:        uuid.NewString(),
		TokenHash: util.HashToken(token),
		AdminID:   adminID,
		ExpiresAt: time.Now().Add(config.AuthTokenTTL),
	})
	if err != nil {
		return "", err
	}

	return token, nil
}

// Logout revokes the presented token. Revoking an unknown token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.tokenRepo.DeleteByTokenHash(ctx, util.HashToken(token))
}

// Validate resolves a bearer token to its admin. Returns nil when the token
// is unknown, expired, or its owner no longer exists.
func (s *AuthService) Validate(ctx context.Context, token string) (*model.AdminUser, error) {
	row, err := s.tokenRepo.FindValidByTokenHash(ctx, util.HashToken(token))
	if err != nil || row == nil {
		return nil, err
	}
	return s.adminRepo.FindByID(ctx, row.AdminID)
}

func (s *AuthService) GetAdmin(ctx context.Context, id string) (*model.AdminUser, error) {
	return s.adminRepo.FindByID(ctx, id)
}

func (s *AuthService) ListAdmins(ctx context.Context) ([]model.AdminUser, error) {
	return s.adminRepo.FindAll(ctx)
}

// DeleteAdmin removes an admin and, via the cascade, every token it owns.
func (s *AuthService) DeleteAdmin(ctx context.Context, id string) error {
	if err := s.adminRepo.Delete(ctx, id); err != nil {
		return err
	}
	log.Info().Str("adminId", id).Msg("admin user deleted")
	return nil
}
