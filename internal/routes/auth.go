package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"machinery-registry/internal/controllers"
	"machinery-registry/internal/services"
	"machinery-registry/pkg/middleware"
	"machinery-registry/pkg/service"
)

func runAuthRouter(api *echo.Group, authService services.AuthServiceInterface, jwtSvc service.JWTService, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	authCtrl := controllers.NewAuthController(authService, jwtSvc, logger)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
		authGroup.GET("/me", authCtrl.Me, authMW.Auth)
	}
}
