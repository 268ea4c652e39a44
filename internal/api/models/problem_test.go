package models_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saferoute/saferoute/internal/api/models"
)

func TestProblem_Write(t *testing.T) {
	p := models.NewBadRequest("req_123", "origin is required", []models.FieldError{
		{Field: "origin", Message: "must not be empty", Code: "required"},
	}).WithInstance("/v1/routes:compare")

	rec := httptest.NewRecorder()
	p.Write(rec)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "req_123", rec.Header().Get("X-Request-Id"))

	var decoded models.Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	assert.Equal(t, models.ProblemTypeValidation, decoded.Type)
	assert.Equal(t, "Validation error", decoded.Title)
	assert.Equal(t, http.StatusBadRequest, decoded.Status)
	assert.Equal(t, "origin is required", decoded.Detail)
	assert.Equal(t, "/v1/routes:compare", decoded.Instance)
	assert.Equal(t, "req_123", decoded.TraceID)
	require.Len(t, decoded.Errors, 1)
	assert.Equal(t, "origin", decoded.Errors[0].Field)
}

func TestProblem_Constructors(t *testing.T) {
	cases := []struct {
		problem    *models.Problem
		wantType   string
		wantStatus int
	}{
		{models.NewNotFound("t", "d"), models.ProblemTypeNotFound, http.StatusNotFound},
		{models.NewTooManyRequests("t", "d"), models.ProblemTypeTooManyRequests, http.StatusTooManyRequests},
		{models.NewInternalError("t", "d"), models.ProblemTypeInternal, http.StatusInternalServerError},
		{models.NewServiceUnavailable("t", "d"), models.ProblemTypeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.wantType, tc.problem.Type)
		assert.Equal(t, tc.wantStatus, tc.problem.Status)
		assert.Equal(t, "d", tc.problem.Detail)
		assert.Equal(t, "t", tc.problem.TraceID)
	}
}
