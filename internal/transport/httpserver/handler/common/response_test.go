package common

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"daily-planner-go/internal/apierr"
	"daily-planner-go/internal/domain/session"
	"daily-planner-go/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestErrorStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apierr.Invalid("content", "required"), http.StatusBadRequest, "invalid_request"},
		{"joined validation", errors.Join(apierr.Invalid("a", "x"), apierr.Invalid("b", "y")), http.StatusBadRequest, "invalid_request"},
		{"expired", fmt.Errorf("load: %w", apierr.ErrUnauthorized), http.StatusUnauthorized, "session_expired"},
		{"not logged in", session.ErrNotLoggedIn, http.StatusUnauthorized, "not_logged_in"},
		{"upstream 404", &apierr.ServerError{Status: 404, Message: "plan not found"}, http.StatusNotFound, "upstream_rejected"},
		{"upstream 500", &apierr.ServerError{Status: 500}, http.StatusBadGateway, "upstream_error"},
		{"decoding", &apierr.DecodingError{Target: "plans.Plan", Cause: errors.New("eof")}, http.StatusBadGateway, "upstream_invalid_response"},
		{"network", &apierr.NetworkError{Cause: errors.New("refused")}, http.StatusServiceUnavailable, "upstream_unavailable"},
		{"other", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, code := ErrorStatus(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestWriteDomainErrorHidesInternalMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteDomainError(rec, logger.Nop(), "plans.list", errors.New("db password leaked"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"internal_error","message":"internal error"}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	WriteDomainError(rec, logger.Nop(), "plans.create", &apierr.ServerError{Status: 409, Message: "duplicate"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"upstream_rejected","message":"duplicate"}}`, rec.Body.String())
}

func TestParseHelpers(t *testing.T) {
	id, err := ParseID("42")
	assert.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseID("0")
	assert.Error(t, err)

	date, err := ParseDateParam(" ")
	assert.NoError(t, err)
	assert.Nil(t, date)

	date, err = ParseDateParam("2024-03-05")
	assert.NoError(t, err)
	if assert.NotNil(t, date) {
		assert.Equal(t, "2024-03-05", date.String())
	}

	month, err := ParseOptionalInt("7")
	assert.NoError(t, err)
	if assert.NotNil(t, month) {
		assert.Equal(t, 7, *month)
	}
	_, err = ParseOptionalInt("july")
	assert.Error(t, err)
}
