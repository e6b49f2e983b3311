package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"machinery-registry/internal/listeners"
	"machinery-registry/internal/repositories"
	"machinery-registry/internal/services"
	"machinery-registry/pkg/config"
	"machinery-registry/pkg/database"
	"machinery-registry/pkg/eventbus"
	"machinery-registry/pkg/filestorage"
	"machinery-registry/pkg/middleware"
	"machinery-registry/pkg/service"
	"machinery-registry/pkg/websocket"
)

type Loggers struct {
	Main       *zap.Logger
	Auth       *zap.Logger
	Assignment *zap.Logger
}

// Dependencies are the process-wide handles built in main.
// Bus, Hub and Storage are optional; their routes and listeners are skipped when nil.
type Dependencies struct {
	DB      *database.DB
	Cache   repositories.CacheRepositoryInterface
	JWT     service.JWTService
	Bus     *eventbus.Bus
	Hub     *websocket.Hub
	Storage filestorage.FileStorageInterface
	Config  *config.Config
}

func InitRouter(e *echo.Echo, deps Dependencies, loggers *Loggers) {
	loggers.Main.Info("InitRouter: registering routes")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(deps.JWT, loggers.Auth)
	txManager := repositories.NewTxManager(deps.DB)

	var publisher services.EventPublisher
	if deps.Bus != nil {
		publisher = deps.Bus
	}

	// --- repositories ---
	userRepo := repositories.NewUserRepository(deps.DB, loggers.Auth)
	projectRepo := repositories.NewProjectRepository(deps.DB, loggers.Main)
	machineryRepo := repositories.NewMachineryRepository(deps.DB, loggers.Main)
	teamRepo := repositories.NewTeamRepository(deps.DB, loggers.Main)
	employeeRepo := repositories.NewEmployeeRepository(deps.DB, loggers.Main)
	assignmentRepo := repositories.NewAssignmentRepository(deps.DB, loggers.Assignment)
	dashboardRepo := repositories.NewDashboardRepository(deps.DB, loggers.Main)

	// --- services ---
	authService := services.NewAuthService(userRepo, deps.Cache, loggers.Auth, deps.Config.Auth)
	assignmentService := services.NewAssignmentService(
		txManager, assignmentRepo, machineryRepo, projectRepo, publisher,
		services.AssignmentOptions{SingleActive: deps.Config.Assignment.SingleActive},
		loggers.Assignment,
	)
	projectService := services.NewProjectService(projectRepo, assignmentRepo, publisher, loggers.Main)
	machineryService := services.NewMachineryService(machineryRepo, assignmentRepo, publisher, loggers.Main)
	teamService := services.NewTeamService(teamRepo, employeeRepo, publisher, loggers.Main)
	employeeService := services.NewEmployeeService(employeeRepo, teamRepo, publisher, loggers.Main)
	dashboardService := services.NewDashboardService(dashboardRepo, deps.Cache, deps.Config.Dashboard.CacheTTL, loggers.Main)
	reportService := services.NewReportService(machineryRepo, assignmentRepo, loggers.Main)

	// --- listeners ---
	if deps.Bus != nil {
		listeners.NewDashboardListener(dashboardService, loggers.Main).Register(deps.Bus)
		if deps.Hub != nil {
			listeners.NewLiveFeedListener(deps.Hub, loggers.Main).Register(deps.Bus)
		}
	}

	// --- routers ---
	runAuthRouter(api, authService, deps.JWT, loggers.Auth, authMW)

	secureGroup := api.Group("", authMW.Auth)
	runProjectRouter(secureGroup, projectService, loggers.Main)
	runMachineryRouter(secureGroup, machineryService, assignmentService, loggers.Assignment)
	runTeamRouter(secureGroup, teamService, loggers.Main)
	runEmployeeRouter(secureGroup, employeeService, loggers.Main)
	runDashboardRouter(secureGroup, dashboardService, loggers.Main)
	runReportRouter(secureGroup, reportService, loggers.Main)

	if deps.Storage != nil {
		importer := services.NewMachineryImporter(machineryRepo, loggers.Main)
		runImportRouter(secureGroup, importer, dashboardService, deps.Storage, deps.Config.Server.MaxUploadMB, loggers.Main)
	}

	if deps.Hub != nil {
		runWebSocketRouter(api, deps.Hub, loggers.Main, authMW)
	}

	loggers.Main.Info("InitRouter: routes registered")
}
