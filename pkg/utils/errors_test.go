package utils

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "service-desk/pkg/errors"
)

func TestResolveError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"not found", fmt.Errorf("find: %w", apperrors.ErrNotFound), http.StatusNotFound},
		{"invalid transition", fmt.Errorf("%w: completed -> pending", apperrors.ErrInvalidTransition), http.StatusConflict},
		{"duplicate", apperrors.ErrConflictDuplicate, http.StatusConflict},
		{"incomplete", apperrors.ErrIncompleteTransition, http.StatusBadRequest},
		{"forbidden", apperrors.ErrForbidden, http.StatusForbidden},
		{"no actor", apperrors.ErrActorNotFoundInContext, http.StatusUnauthorized},
		{"expired", apperrors.ErrTokenExpired, http.StatusUnauthorized},
		{"input", apperrors.NewInvalidInputError("bad %s", "field"), http.StatusBadRequest},
		{"http error", apperrors.NewHttpError(http.StatusTeapot, "teapot", nil, nil), http.StatusTeapot},
		{"echo error", echo.NewHTTPError(http.StatusRequestEntityTooLarge, "too big"), http.StatusRequestEntityTooLarge},
		{"unknown", fmt.Errorf("dial tcp: refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _ := ResolveError(tt.err)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestResolveError_HidesInternalMessage(t *testing.T) {
	_, msg := ResolveError(fmt.Errorf("pq: password authentication failed"))
	assert.Equal(t, "internal server error", msg)
}

func TestErrorResponse_Envelope(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/requests/x", nil), rec)

	require.NoError(t, ErrorResponse(c, apperrors.ErrNotFound, zap.NewNop()))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":false,"body":{},"message":"record not found"}`, rec.Body.String())
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "defect_type", Slug(" Defect Type "))
	assert.Equal(t, "area", Slug("AREA!"))
}

func TestParseQuery(t *testing.T) {
	q := ParseQuery(url.Values{"scope": {" Pool "}, "status": {"approved"}, "search": {" pump "}})
	assert.Equal(t, ListQuery{Scope: "pool", Status: "approved", Search: "pump"}, q)
}
