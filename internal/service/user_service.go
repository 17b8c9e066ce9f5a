package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/ticket-management/internal/auth"
	"github.com/spec-kit/ticket-management/internal/config"
	"github.com/spec-kit/ticket-management/internal/domain"
	"github.com/spec-kit/ticket-management/internal/repository"
	apperrors "github.com/spec-kit/ticket-management/pkg/util"
)

// UserService provides CRUD over the user directory.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// UserCreateInput describes a new account. Role defaults to customer.
type UserCreateInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      domain.Role
}

// UserUpdate is the exclude-unset partial update: only non-nil fields are
// applied. A supplied password is re-hashed before storage.
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
	Activated *bool
	Role      *domain.Role
	Password  *string
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, users repository.UserRepository) *UserService {
	return &UserService{users: users, bcryptCost: cfg.Auth.BcryptCost}
}

// Create hashes the password and persists the account. Email uniqueness is
// pre-checked by the registration flow; the database unique constraint is the
// backstop for the check-then-insert race and surfaces as Conflict here.
func (s *UserService) Create(ctx context.Context, input UserCreateInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleCustomer
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": string(role)})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hash,
		Activated:    true,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// List returns users with offset/limit pagination.
func (s *UserService) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	users, err := s.users.List(ctx, skip, limit)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return users, nil
}

// Update applies only the fields present in the partial input.
func (s *UserService) Update(ctx context.Context, id string, update UserUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		user.LastName = *update.LastName
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Activated != nil {
		user.Activated = *update.Activated
	}
	if update.Role != nil {
		if !update.Role.Valid() {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": string(*update.Role)})
		}
		user.Role = *update.Role
	}
	if update.Password != nil {
		hash, err := auth.HashPassword(*update.Password, s.bcryptCost)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if apperrors.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", nil)
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// Delete hard-deletes a user. False means the id did not exist.
func (s *UserService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.users.Delete(ctx, id)
	if err != nil {
		return false, apperrors.MapError(err)
	}
	return deleted, nil
}

// EmailTaken reports whether an account with the email already exists.
func (s *UserService) EmailTaken(ctx context.Context, email string) (bool, error) {
	taken, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return false, apperrors.MapError(err)
	}
	return taken, nil
}
