package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	apperrors "service-desk/pkg/errors"
)

// ErrorList maps sentinel errors to HTTP status codes. Order matters only
// for errors wrapping more than one sentinel.
var ErrorList = []struct {
	Err  error
	Code int
}{
	{apperrors.ErrNotFound, http.StatusNotFound},
	{apperrors.ErrInvalidTransition, http.StatusConflict},
	{apperrors.ErrConflictDuplicate, http.StatusConflict},
	{apperrors.ErrIncompleteTransition, http.StatusBadRequest},
	{apperrors.ErrBadRequest, http.StatusBadRequest},
	{apperrors.ErrForbidden, http.StatusForbidden},
	{apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized},
	{apperrors.ErrActorNotFoundInContext, http.StatusUnauthorized},
	{apperrors.ErrEmptyAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidAuthHeader, http.StatusUnauthorized},
	{apperrors.ErrInvalidToken, http.StatusUnauthorized},
	{apperrors.ErrTokenExpired, http.StatusUnauthorized},
	{apperrors.ErrInvalidSigningMethod, http.StatusUnauthorized},
	{apperrors.ErrTokenIsNotAccess, http.StatusUnauthorized},
	{apperrors.ErrTokenIsNotRefresh, http.StatusUnauthorized},
}

// ResolveError returns the status code and client message for err. Unknown
// errors become a generic 500 so internals never leak.
func ResolveError(err error) (int, string) {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code, httpErr.Message
	}

	var inputErr *apperrors.InvalidInputError
	if errors.As(err, &inputErr) {
		return http.StatusBadRequest, inputErr.Message
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return http.StatusBadRequest, ValidationMessage(validationErrs)
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return echoErr.Code, fmt.Sprint(echoErr.Message)
	}

	for _, e := range ErrorList {
		if errors.Is(err, e.Err) {
			return e.Code, err.Error()
		}
	}
	return http.StatusInternalServerError, "internal server error"
}

func ValidationMessage(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s: failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s: failed %s", fe.Field(), fe.Tag()))
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
