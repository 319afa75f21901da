package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"carrental/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		err         error
		wantStatus  int
		wantMessage string
	}{
		{&services.ValidationError{Fields: map[string]string{"name": "is required"}}, fiber.StatusUnprocessableEntity, services.ErrValidation.Error()},
		{fmt.Errorf("wrapped: %w", services.ErrUnauthenticated), fiber.StatusUnauthorized, services.ErrUnauthenticated.Error()},
		{services.ErrInvalidCredentials, fiber.StatusUnauthorized, services.ErrInvalidCredentials.Error()},
		{fmt.Errorf("role CUSTOMER: %w", services.ErrForbidden), fiber.StatusForbidden, services.ErrForbidden.Error()},
		{fmt.Errorf("car 9: %w", services.ErrCarNotFound), fiber.StatusNotFound, services.ErrCarNotFound.Error()},
		{fmt.Errorf("car 5 overlaps rental 1: %w", services.ErrCarUnavailable), fiber.StatusConflict, services.ErrCarUnavailable.Error()},
		{fmt.Errorf("rental 3: %w", services.ErrRentalNotFound), fiber.StatusNotFound, services.ErrRentalNotFound.Error()},
		{services.ErrEmailTaken, fiber.StatusConflict, services.ErrEmailTaken.Error()},
		{errors.New("connection reset"), fiber.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			status, message := classify(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMessage, message)
		})
	}
}

func TestWriteError_hidesWrappingContext(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return writeError(c, zap.NewNop(), fmt.Errorf("car 5 overlaps rental 1: %w", services.ErrCarUnavailable))
	})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, services.ErrCarUnavailable.Error(), body["message"])
	assert.NotContains(t, string(raw), "rental 1")
}
