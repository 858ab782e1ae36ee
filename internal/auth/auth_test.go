package auth

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/employee-service/pkg/util/errorutil"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("secret", "employee-service", 5)
	token, exp, err := tm.GenerateToken("ops-bot", RoleEditor)
	require.NoError(t, err)
	assert.False(t, exp.IsZero())

	claims, err := tm.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops-bot", claims.Subject)
	assert.Equal(t, RoleEditor, claims.Role)
}

func TestTokenRejections(t *testing.T) {
	tm := NewTokenManager("secret", "employee-service", 5)
	token, _, err := tm.GenerateToken("ops-bot", RoleViewer)
	require.NoError(t, err)

	_, err = NewTokenManager("other", "employee-service", 5).ParseToken(token)
	assert.Error(t, err)
	_, err = NewTokenManager("secret", "someone-else", 5).ParseToken(token)
	assert.Error(t, err)

	_, _, err = tm.GenerateToken("ops-bot", Role("root"))
	assert.Error(t, err)
}

func newProtectedApp(tm *TokenManager) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if domainErr := apperrors.ToDomainError(err); domainErr.Code == apperrors.CodeUnauthorized {
				return c.SendStatus(domainErr.HTTPStatus)
			}
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.SendStatus(fe.Code)
			}
			return c.SendStatus(fiber.StatusInternalServerError)
		},
	})
	m := NewAuthMiddleware(tm)
	app.Use(WritesOnly(m.Handle), WritesOnly(RequireWriter()))
	app.Get("/items", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	app.Post("/items", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) })
	return app
}

func TestMiddlewareGuardsWritesOnly(t *testing.T) {
	tm := NewTokenManager("secret", "", 5)
	app := newProtectedApp(tm)
	editor, _, err := tm.GenerateToken("e", RoleEditor)
	require.NoError(t, err)
	viewer, _, err := tm.GenerateToken("v", RoleViewer)
	require.NoError(t, err)

	cases := []struct {
		name   string
		method string
		token  string
		want   int
	}{
		{"read is open", fiber.MethodGet, "", fiber.StatusOK},
		{"write without token", fiber.MethodPost, "", fiber.StatusUnauthorized},
		{"write with garbage", fiber.MethodPost, "nope", fiber.StatusUnauthorized},
		{"viewer cannot write", fiber.MethodPost, viewer, fiber.StatusForbidden},
		{"editor writes", fiber.MethodPost, editor, fiber.StatusCreated},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/items", nil)
			if tc.token != "" {
				req.Header.Set(fiber.HeaderAuthorization, "Bearer "+tc.token)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}
