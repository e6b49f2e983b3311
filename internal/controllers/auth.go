package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"machinery-registry/internal/dto"
	"machinery-registry/internal/entities"
	"machinery-registry/internal/services"
	apperrors "machinery-registry/pkg/errors"
	"machinery-registry/pkg/service"
	"machinery-registry/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
	jwtSvc      service.JWTService
	logger      *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	jwtSvc service.JWTService,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService: authService,
		jwtSvc:      jwtSvc,
		logger:      logger,
	}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO
	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Warn("Login: could not bind body", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewBadRequestError("Invalid login payload"))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	user, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Warn("Login: rejected", zap.String("username", payload.Username), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	token, err := ctrl.jwtSvc.GenerateToken(user.ID, user.Username, user.FullName)
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusInternalServerError, "Could not issue token", err, nil))
	}

	return c.JSON(http.StatusOK, dto.LoginResponseDTO{
		Success:   true,
		Token:     token,
		ExpiresIn: int64(ctrl.jwtSvc.GetTokenTTL().Seconds()),
		User:      publicUser(user),
	})
}

// Me answers who the bearer token belongs to, reading the user again so a
// deleted account stops resolving.
func (ctrl *AuthController) Me(c echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	user, err := ctrl.authService.GetUserByID(c.Request().Context(), userID)
	if err != nil {
		username, _ := utils.GetUsernameFromCtx(c.Request().Context())
		ctrl.logger.Warn("Me: token owner not found",
			zap.Uint64("userID", userID),
			zap.String("username", username),
			zap.Error(err),
		)
		return ctrl.errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, dto.MeResponseDTO{Success: true, User: publicUser(user)})
}

func publicUser(u *entities.User) dto.UserPublicDTO {
	return dto.UserPublicDTO{ID: u.ID, Username: u.Username, FullName: u.FullName}
}
