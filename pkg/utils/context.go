package utils

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"machinery-registry/pkg/contextkeys"
	apperrors "machinery-registry/pkg/errors"
)

// ContextWithTimeout derives a request context that ends after timeout seconds.
func ContextWithTimeout(ctx echo.Context, timeout int) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx.Request().Context(), time.Duration(timeout)*time.Second)
}

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || userID == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

// GetUsernameFromCtx returns the username the auth middleware took from the token.
func GetUsernameFromCtx(ctx context.Context) (string, error) {
	username, ok := ctx.Value(contextkeys.UsernameKey).(string)
	if !ok || username == "" {
		return "", apperrors.ErrUnauthorized
	}
	return username, nil
}

// ParseIDParam reads a positive integer path parameter.
func ParseIDParam(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewBadRequestError("Invalid " + name)
	}
	return id, nil
}

// ParseOptionalUint reads an optional positive integer query parameter.
func ParseOptionalUint(c echo.Context, name string) (*uint64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, apperrors.NewBadRequestError("Invalid " + name)
	}
	return &v, nil
}
