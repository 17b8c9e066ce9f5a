package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/ticket-management/internal/api/dto"
	"github.com/spec-kit/ticket-management/internal/config"
	"github.com/spec-kit/ticket-management/internal/domain"
	"github.com/spec-kit/ticket-management/internal/repository"
	"github.com/spec-kit/ticket-management/internal/service"
)

// --- Mock User Repository ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepository) List(ctx context.Context, skip, limit int) ([]domain.User, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *mockUserRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func newUsersApp(principal *domain.User, repo repository.UserRepository) *fiber.App {
	cfg := config.Config{Auth: config.AuthConfig{BcryptCost: bcrypt.MinCost}}
	h := NewUsersHandler(service.NewUserService(cfg, repo))
	return handlerTestApp(principal, func(app *fiber.App) {
		app.Get("/users/me", h.Me)
		app.Put("/users/me", h.UpdateMe)
	})
}

func TestUpdateMeIgnoresActivationFlag(t *testing.T) {
	repo := new(mockUserRepository)
	stored := domain.User{
		ID:        "u1",
		FirstName: "Alice",
		LastName:  "Doe",
		Email:     "alice@example.com",
		Activated: true,
		Role:      domain.RoleCustomer,
	}
	repo.On("GetByID", mock.Anything, "u1").Return(&stored, nil)
	repo.On("Update", mock.Anything, mock.Anything).Return(nil)
	principal := &domain.User{ID: "u1", Role: domain.RoleCustomer, Activated: true}
	app := newUsersApp(principal, repo)

	resp, err := app.Test(jsonRequest(http.MethodPut, "/users/me", `{"first_name":"Alicia","is_activated":false}`))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body struct {
		Data dto.UserResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Alicia", body.Data.FirstName)
	assert.True(t, body.Data.Activated)
	assert.True(t, stored.Activated)
}

func TestMeReturnsPrincipalProfile(t *testing.T) {
	principal := &domain.User{ID: "u1", FirstName: "Alice", Email: "alice@example.com", Activated: true, Role: domain.RoleCustomer}
	app := newUsersApp(principal, new(mockUserRepository))

	resp, err := app.Test(jsonRequest(http.MethodGet, "/users/me", ""))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body struct {
		Data dto.UserResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "alice@example.com", body.Data.Email)
}
