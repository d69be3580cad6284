package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dtelecom/channel-auth/version"
)

var errConnRefused = errors.New("connection refused")

func TestHealthCheck(t *testing.T) {
	rec := httptest.NewRecorder()
	healthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "up", body["status"])
	require.Equal(t, version.Version, body["version"])
}

func TestTokenServiceStop(t *testing.T) {
	svc := NewTokenService(nil, nil, nil, nil, time.Second)
	svc.Stop()
	require.True(t, svc.mintPool.Stopped())
}

func TestHandleError(t *testing.T) {
	t.Run("details are included for server errors", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/node/token", nil)
		handleError(rec, req, http.StatusInternalServerError, ErrDirectoryUnavailable, errConnRefused)

		body := ErrorResponse{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Equal(t, ErrDirectoryUnavailable.Error(), body.Error)
		require.Equal(t, errConnRefused.Error(), body.Details)
	})

	t.Run("auth failures stay generic", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/node/token", nil)
		handleError(rec, req, http.StatusUnauthorized, ErrAuthenticationFailed, errConnRefused)

		body := ErrorResponse{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Empty(t, body.Details)
	})
}
