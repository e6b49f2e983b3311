package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"machinery-registry/internal/controllers"
	"machinery-registry/internal/services"
)

func runProjectRouter(secureGroup *echo.Group, projectService services.ProjectServiceInterface, logger *zap.Logger) {
	ctrl := controllers.NewProjectController(projectService, logger)

	projects := secureGroup.Group("/projects")
	projects.GET("", ctrl.GetProjects)
	projects.POST("", ctrl.CreateProject)
	projects.GET("/locations", ctrl.GetLocations)
	projects.GET("/:id", ctrl.GetProject)
	projects.PUT("/:id", ctrl.UpdateProject)
	projects.DELETE("/:id", ctrl.DeleteProject)
}
