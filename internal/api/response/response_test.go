package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saferoute/saferoute/internal/api/response"
)

func TestJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	rec := httptest.NewRecorder()

	response.JSON(rec, req, http.StatusOK, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestJSON_NilBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	rec := httptest.NewRecorder()

	response.JSON(rec, req, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestBadRequest_SetsInstance(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/routes:compare", http.NoBody)
	rec := httptest.NewRecorder()

	response.BadRequest(rec, req, "origin is required", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "/v1/routes:compare")
	assert.Contains(t, rec.Body.String(), "origin is required")
}

func TestServiceUnavailable(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/routes:compare", http.NoBody)
	rec := httptest.NewRecorder()

	response.ServiceUnavailable(rec, req, "routing provider unavailable")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "service-unavailable")
}
