package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "machinery-registry/pkg/errors"
)

type HttpResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorBody struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HttpResponse{
		Success: true,
		Data:    body,
		Message: message,
	})
}

// ErrorResponse is the single place where errors become HTTP responses.
// Internal causes are logged; only the public message is sent.
func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil && httpErr.Code >= http.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
				zap.Any("context", httpErr.Context),
			)
		}
		return c.JSON(httpErr.Code, ErrorBody{Error: httpErr.Message})
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, validationMessage(e))
		}
		return c.JSON(http.StatusBadRequest, ErrorBody{Error: msgs[0], Details: msgs})
	}

	if code, ok := apperrors.StatusFor(err); ok {
		return c.JSON(code, ErrorBody{Error: err.Error()})
	}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		return c.JSON(echoErr.Code, ErrorBody{Error: fmt.Sprint(echoErr.Message)})
	}

	logger.Error("Unexpected Error", zap.Error(err), zap.String("path", c.Path()))
	return c.JSON(http.StatusInternalServerError, ErrorBody{Error: "Internal server error"})
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "date_ymd":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", e.Field())
	case "project_status", "machinery_status", "assignment_status":
		return fmt.Sprintf("%s has an unknown status %q", e.Field(), e.Value())
	case "min", "max", "gte", "lte":
		return fmt.Sprintf("%s must satisfy %s=%s", e.Field(), e.Tag(), e.Param())
	}
	return fmt.Sprintf("%s failed %s validation", e.Field(), strings.TrimSpace(e.Tag()))
}
