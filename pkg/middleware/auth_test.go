package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"service-desk/internal/entities"
	"service-desk/pkg/constants"
	"service-desk/pkg/service"
	"service-desk/pkg/utils"
)

func serve(t *testing.T, jwtSvc service.JWTService, header string) (*httptest.ResponseRecorder, entities.Actor) {
	t.Helper()
	e := echo.New()
	var seen entities.Actor
	handler := NewAuthMiddleware(jwtSvc, zap.NewNop()).Auth(func(c echo.Context) error {
		actor, err := utils.GetActorFromCtx(c.Request().Context())
		require.NoError(t, err)
		seen = actor
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	require.NoError(t, handler(e.NewContext(req, rec)))
	return rec, seen
}

func TestAuthMiddleware(t *testing.T) {
	jwtSvc := service.NewJWTService("secret", time.Hour, time.Hour)
	actor := entities.Actor{ID: 3, Name: "tech1", Role: constants.RoleTechnician}
	access, refresh, err := jwtSvc.GenerateTokens(actor)
	require.NoError(t, err)

	rec, seen := serve(t, jwtSvc, "Bearer "+access)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, actor, seen)

	rec, _ = serve(t, jwtSvc, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serve(t, jwtSvc, "Token "+access)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serve(t, jwtSvc, "Bearer "+refresh)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = serve(t, jwtSvc, "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
