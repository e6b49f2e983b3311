package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"machinery-registry/internal/controllers"
	"machinery-registry/internal/services"
	"machinery-registry/pkg/filestorage"
)

func runMachineryRouter(
	secureGroup *echo.Group,
	machineryService services.MachineryServiceInterface,
	assignmentService services.AssignmentServiceInterface,
	logger *zap.Logger,
) {
	ctrl := controllers.NewMachineryController(machineryService, assignmentService, logger)

	machinery := secureGroup.Group("/machinery")
	machinery.GET("", ctrl.GetMachinery)
	machinery.POST("", ctrl.CreateMachine)
	machinery.GET("/:id", ctrl.GetMachine)
	machinery.PUT("/:id", ctrl.UpdateMachine)
	machinery.DELETE("/:id", ctrl.DeleteMachine)

	machinery.POST("/:id/assign", ctrl.Assign)
	machinery.PUT("/:id/assign", ctrl.UpdateAssignment)
	machinery.DELETE("/:id/assign/:assignmentId", ctrl.DeleteAssignment)
}

func runImportRouter(
	secureGroup *echo.Group,
	importer *services.MachineryImporter,
	dashboardService services.DashboardServiceInterface,
	storage filestorage.FileStorageInterface,
	maxSizeMB int,
	logger *zap.Logger,
) {
	ctrl := controllers.NewImportController(importer, dashboardService, storage, maxSizeMB, logger)
	secureGroup.POST("/machinery/import", ctrl.ImportMachinery)
}
