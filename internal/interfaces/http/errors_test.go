package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almazgeobur/etp-api/internal/application/dto"
	"github.com/almazgeobur/etp-api/internal/domain"
)

func responseFor(t *testing.T, err error) (int, dto.ErrorResponse, string) {
	t.Helper()
	app := fiber.New()
	app.Get("/boom", func(c *fiber.Ctx) error {
		return respondError(c, err)
	})

	resp, testErr := app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil), -1)
	require.NoError(t, testErr)
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body, string(raw)
}

func TestRespondError_UnknownErrorHidesDetail(t *testing.T) {
	driverErr := errors.New(`ERROR: null value in column "created_by" violates not-null constraint (SQLSTATE 23502)`)
	status, body, raw := responseFor(t, fmt.Errorf("insert tender: %w", driverErr))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Equal(t, "internal server error", body.Message,
		"unexpected errors must answer with a fixed message")
	assert.NotContains(t, raw, "SQLSTATE",
		"driver detail must never reach the client")
	assert.NotContains(t, raw, "created_by")
}

func TestRespondError_SentinelMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"wrapped forbidden", fmt.Errorf("review application: %w", domain.ErrForbidden), http.StatusForbidden, "FORBIDDEN"},
		{"conflict", domain.ErrConflict, http.StatusConflict, "CONFLICT"},
		{"validation", domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{"file too large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body, _ := responseFor(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, body.Code)
		})
	}
}
