package seeders

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"machinery-registry/internal/dto"
	"machinery-registry/internal/repositories"
	"machinery-registry/internal/services"
	"machinery-registry/pkg/constants"
	"machinery-registry/pkg/database"
	"machinery-registry/pkg/utils"
)

var sampleProjects = []dto.CreateProjectDTO{
	{Name: "Road Repair", Location: utils.ToPtr("Route 12, km 40-52"), Latitude: utils.ToPtr(13.7563), Longitude: utils.ToPtr(100.5018), StartDate: utils.ToPtr("2025-01-05"), Status: constants.ProjectStatusInProgress},
	{Name: "Canal Dredging", Location: utils.ToPtr("North district"), Latitude: utils.ToPtr(14.0208), Longitude: utils.ToPtr(100.5250), StartDate: utils.ToPtr("2025-03-01")},
	{Name: "School Extension", Description: utils.ToPtr("Two new classrooms"), Status: constants.ProjectStatusPlanning},
}

var sampleMachinery = []dto.CreateMachineryDTO{
	{Code: "BH-001", Name: "Backhoe loader", Type: "Backhoe", Brand: utils.ToPtr("JCB"), Model: utils.ToPtr("3CX"), Year: utils.ToPtr(2019)},
	{Code: "EX-001", Name: "Crawler excavator", Type: "Excavator", Brand: utils.ToPtr("Komatsu"), Model: utils.ToPtr("PC200"), Year: utils.ToPtr(2017)},
	{Code: "GR-001", Name: "Motor grader", Type: "Grader", Brand: utils.ToPtr("Caterpillar"), Year: utils.ToPtr(2015)},
	{Code: "TR-001", Name: "Dump truck", Type: "Truck", Brand: utils.ToPtr("Isuzu"), Status: constants.MachineryStatusMaintenance},
}

var sampleTeams = []dto.CreateTeamDTO{
	{Name: "Road crew", Description: utils.ToPtr("Paving and resurfacing")},
	{Name: "Water works"},
}

// SeedSampleData fills an empty database with a few records of every kind,
// going through the services so machinery status follows the assignment.
// It does nothing when machinery already exists.
func SeedSampleData(ctx context.Context, db *database.DB, logger *zap.Logger) error {
	projectRepo := repositories.NewProjectRepository(db, logger)
	machineryRepo := repositories.NewMachineryRepository(db, logger)
	teamRepo := repositories.NewTeamRepository(db, logger)
	employeeRepo := repositories.NewEmployeeRepository(db, logger)
	assignmentRepo := repositories.NewAssignmentRepository(db, logger)

	existing, err := machineryRepo.GetAll(ctx, "")
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("sample data skipped, machinery already present", zap.Int("machinery", len(existing)))
		return nil
	}

	projectSvc := services.NewProjectService(projectRepo, assignmentRepo, nil, logger)
	machinerySvc := services.NewMachineryService(machineryRepo, assignmentRepo, nil, logger)
	teamSvc := services.NewTeamService(teamRepo, employeeRepo, nil, logger)
	employeeSvc := services.NewEmployeeService(employeeRepo, teamRepo, nil, logger)
	assignmentSvc := services.NewAssignmentService(
		repositories.NewTxManager(db), assignmentRepo, machineryRepo, projectRepo, nil, services.AssignmentOptions{}, logger,
	)

	projectIDs := make([]uint64, 0, len(sampleProjects))
	for _, p := range sampleProjects {
		created, err := projectSvc.CreateProject(ctx, p)
		if err != nil {
			return fmt.Errorf("project %s: %w", p.Name, err)
		}
		projectIDs = append(projectIDs, created.ID)
	}

	machineIDs := make([]uint64, 0, len(sampleMachinery))
	for _, m := range sampleMachinery {
		created, err := machinerySvc.CreateMachine(ctx, m)
		if err != nil {
			return fmt.Errorf("machinery %s: %w", m.Code, err)
		}
		machineIDs = append(machineIDs, created.ID)
	}

	teamIDs := make([]uint64, 0, len(sampleTeams))
	for _, t := range sampleTeams {
		created, err := teamSvc.CreateTeam(ctx, t)
		if err != nil {
			return fmt.Errorf("team %s: %w", t.Name, err)
		}
		teamIDs = append(teamIDs, created.ID)
	}

	employees := []dto.CreateEmployeeDTO{
		{Code: "EMP-001", FirstName: "Somchai", LastName: "Prasert", Position: utils.ToPtr("Operator"), TeamID: &teamIDs[0]},
		{Code: "EMP-002", FirstName: "Malee", LastName: "Suksan", Position: utils.ToPtr("Foreman"), TeamID: &teamIDs[0]},
		{Code: "EMP-003", FirstName: "Anan", LastName: "Wongsa", Position: utils.ToPtr("Driver"), TeamID: &teamIDs[1]},
		{Code: "EMP-004", FirstName: "Niran", LastName: "Chai", Phone: utils.ToPtr("081-000-0004")},
	}
	for _, e := range employees {
		if _, err := employeeSvc.CreateEmployee(ctx, e); err != nil {
			return fmt.Errorf("employee %s: %w", e.Code, err)
		}
	}

	if _, err := assignmentSvc.CreateAssignment(ctx, machineIDs[0], dto.CreateAssignmentDTO{
		ProjectID:    projectIDs[0],
		AssignedDate: "2025-01-05",
		Notes:        utils.ToPtr("Resurfacing, phase one"),
	}); err != nil {
		return fmt.Errorf("assignment: %w", err)
	}

	logger.Info("sample data loaded",
		zap.Int("projects", len(projectIDs)),
		zap.Int("machinery", len(machineIDs)),
		zap.Int("teams", len(teamIDs)),
		zap.Int("employees", len(employees)),
	)
	return nil
}
