package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"machinery-registry/internal/controllers"
	"machinery-registry/internal/services"
)

func runTeamRouter(secureGroup *echo.Group, teamService services.TeamServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewTeamController(teamService, logger)

	teams := secureGroup.Group("/teams")
	teams.GET("", ctrl.GetTeams)
	teams.POST("", ctrl.CreateTeam)
	teams.GET("/:id", ctrl.GetTeam)
	teams.PUT("/:id", ctrl.UpdateTeam)
	teams.DELETE("/:id", ctrl.DeleteTeam)
}
