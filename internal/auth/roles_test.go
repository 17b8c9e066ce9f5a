package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/ticket-management/internal/domain"
	apperrors "github.com/spec-kit/ticket-management/pkg/util"
)

func rolesTestApp(principal *domain.User, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if err := c.Next(); err != nil {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"code": domainErr.Code})
		}
		return nil
	})
	app.Use(func(c *fiber.Ctx) error {
		if principal != nil {
			c.Locals(principalKey, principal)
		}
		return c.Next()
	})
	app.Get("/protected", guard, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})
	return app
}

func TestRequireRoleForbidsMismatch(t *testing.T) {
	customer := &domain.User{ID: "u1", Role: domain.RoleCustomer, Activated: true}
	app := rolesTestApp(customer, RequireRole(domain.RoleAgent, domain.RoleAdmin))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleAllowsWhitelisted(t *testing.T) {
	agent := &domain.User{ID: "a1", Role: domain.RoleAgent, Activated: true}
	app := rolesTestApp(agent, RequireRole(domain.RoleAgent, domain.RoleAdmin))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRoleRejectsAnonymous(t *testing.T) {
	app := rolesTestApp(nil, RequireRole(domain.RoleAdmin))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthenticatedAllowsAnyRole(t *testing.T) {
	customer := &domain.User{ID: "u1", Role: domain.RoleCustomer, Activated: true}
	app := rolesTestApp(customer, RequireAuthenticated())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
