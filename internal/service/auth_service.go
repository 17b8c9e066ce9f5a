package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-management/internal/auth"
	"github.com/spec-kit/ticket-management/internal/config"
	"github.com/spec-kit/ticket-management/internal/domain"
	"github.com/spec-kit/ticket-management/internal/repository"
	apperrors "github.com/spec-kit/ticket-management/pkg/util"
)

// AuthService coordinates registration and login flows.
type AuthService struct {
	users    repository.UserRepository
	userSvc  *UserService
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, users repository.UserRepository, userSvc *UserService) *AuthService {
	return &AuthService{
		users:    users,
		userSvc:  userSvc,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAlgorithm, cfg.Auth.AccessTokenTTLMinutes),
	}
}

// Register creates a new account after checking email availability.
func (s *AuthService) Register(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	taken, err := s.userSvc.EmailTaken(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
	}
	return s.userSvc.Create(ctx, input)
}

// Login authenticates by email and password, refreshes the last-login
// timestamp and issues an access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("incorrect email or password")
		}
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("incorrect email or password")
	}

	now := time.Now()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}

	token, exp, err := s.tokenMgr.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.MapError(err)
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
