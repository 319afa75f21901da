package middleware_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"carrental/internal/middleware"
	"carrental/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubValidator map[string]*models.UserClaims

func (s stubValidator) ValidateToken(token string) (*models.UserClaims, error) {
	if claims, ok := s[token]; ok {
		return claims, nil
	}
	return nil, errors.New("bad token")
}

func TestAuthRequired(t *testing.T) {
	validator := stubValidator{"good": {ID: 6, Name: "Jojo", Role: models.RoleCustomer}}

	app := fiber.New()
	app.Get("/secure", middleware.AuthRequired(validator, zap.NewNop()), func(c *fiber.Ctx) error {
		return c.SendString(middleware.Claims(c).Name)
	})
	app.Get("/open", func(c *fiber.Ctx) error {
		if middleware.Claims(c) == nil {
			return c.SendString("anonymous")
		}
		return c.SendString("unexpected")
	})

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"valid bearer", "Bearer good", http.StatusOK, "Jojo"},
		{"lowercase scheme", "bearer good", http.StatusOK, "Jojo"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, ""},
		{"no token", "Bearer", http.StatusUnauthorized, ""},
		{"rejected token", "Bearer bad", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/secure", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.body != "" {
				raw, _ := io.ReadAll(resp.Body)
				assert.Equal(t, tt.body, string(raw))
			}
		})
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil), -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "anonymous", string(raw))
}
