package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"service-desk/internal/entities"
	apperrors "service-desk/pkg/errors"
	"service-desk/pkg/utils"
)

// decodeStrict reads one JSON object from r and rejects unknown fields.
func decodeStrict(r io.Reader, v interface{}) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, fmt.Sprintf("invalid JSON body: %v", err), apperrors.ErrBadRequest, nil)
	}
	return nil
}

func decodeStrictString(s string, v interface{}) error {
	return decodeStrict(strings.NewReader(s), v)
}

func actorFrom(ctx echo.Context) (entities.Actor, error) {
	return utils.GetActorFromCtx(ctx.Request().Context())
}
