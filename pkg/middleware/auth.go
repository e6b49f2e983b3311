package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"machinery-registry/pkg/contextkeys"
	apperrors "machinery-registry/pkg/errors"
	"machinery-registry/pkg/service"
	"machinery-registry/pkg/utils"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth requires an "Authorization: Bearer <token>" header.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader, m.logger)
		}

		return m.authenticate(c, next, parts[1])
	}
}

// QueryAuth reads the token from ?token=, for browser websocket clients that cannot set headers.
func (m *AuthMiddleware) QueryAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := c.QueryParam("token")
		if token == "" {
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader, m.logger)
		}
		return m.authenticate(c, next, token)
	}
}

func (m *AuthMiddleware) authenticate(c echo.Context, next echo.HandlerFunc, token string) error {
	claims, err := m.jwtService.ValidateToken(token)
	if err != nil {
		m.logger.Warn("AuthMiddleware: token rejected", zap.Error(err), zap.String("path", c.Path()))
		return utils.ErrorResponse(c, err, m.logger)
	}

	ctx := context.WithValue(c.Request().Context(), contextkeys.UserIDKey, claims.UserID)
	ctx = context.WithValue(ctx, contextkeys.UsernameKey, claims.Username)
	c.SetRequest(c.Request().WithContext(ctx))

	return next(c)
}
