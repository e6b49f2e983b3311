package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"machinery-registry/internal/controllers"
	"machinery-registry/internal/services"
	"machinery-registry/pkg/middleware"
	"machinery-registry/pkg/websocket"
)

func runDashboardRouter(secureGroup *echo.Group, dashboardService services.DashboardServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewDashboardController(dashboardService, logger)
	secureGroup.GET("/dashboard", ctrl.GetDashboardStats)
}

func runReportRouter(secureGroup *echo.Group, reportService services.ReportServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewReportController(reportService, logger)
	secureGroup.GET("/reports/machinery.xlsx", ctrl.MachineryReport)
}

// the websocket route takes its token from the query string
func runWebSocketRouter(api *echo.Group, hub *websocket.Hub, logger *zap.Logger, authMW *middleware.AuthMiddleware) {
	ctrl := controllers.NewWebSocketController(hub, logger)
	api.GET("/ws", ctrl.ServeWs, authMW.QueryAuth)
}
