package services

import (
	"context"

	"go.uber.org/zap"

	"machinery-registry/internal/dto"
	"machinery-registry/internal/entities"
	"machinery-registry/internal/events"
	"machinery-registry/internal/repositories"
)

const employeeNotFound = "Employee not found"

type EmployeeServiceInterface interface {
	GetEmployees(ctx context.Context, filter dto.EmployeeFilter) ([]entities.Employee, error)
	GetEmployee(ctx context.Context, id uint64) (*entities.Employee, error)
	CreateEmployee(ctx context.Context, payload dto.CreateEmployeeDTO) (*entities.Employee, error)
	UpdateEmployee(ctx context.Context, id uint64, payload dto.UpdateEmployeeDTO) (*entities.Employee, error)
	DeleteEmployee(ctx context.Context, id uint64) error
}

type EmployeeService struct {
	employeeRepo repositories.EmployeeRepositoryInterface
	teamRepo     repositories.TeamRepositoryInterface
	publisher    EventPublisher
	logger       *zap.Logger
}

func NewEmployeeService(
	employeeRepo repositories.EmployeeRepositoryInterface,
	teamRepo repositories.TeamRepositoryInterface,
	publisher EventPublisher,
	logger *zap.Logger,
) EmployeeServiceInterface {
	return &EmployeeService{
		employeeRepo: employeeRepo,
		teamRepo:     teamRepo,
		publisher:    publisherOrNop(publisher),
		logger:       logger,
	}
}

func (s *EmployeeService) GetEmployees(ctx context.Context, filter dto.EmployeeFilter) ([]entities.Employee, error) {
	return s.employeeRepo.GetAll(ctx, filter.TeamID)
}

func (s *EmployeeService) GetEmployee(ctx context.Context, id uint64) (*entities.Employee, error) {
	e, err := s.employeeRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, notFound(err, employeeNotFound)
	}
	return e, nil
}

func (s *EmployeeService) checkTeam(ctx context.Context, teamID *uint64) error {
	if teamID == nil || *teamID == 0 {
		return nil
	}
	_, err := s.teamRepo.FindByID(ctx, nil, *teamID)
	return notFound(err, teamNotFound)
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, payload dto.CreateEmployeeDTO) (*entities.Employee, error) {
	if err := s.checkTeam(ctx, payload.TeamID); err != nil {
		return nil, err
	}
	id, err := s.employeeRepo.Create(ctx, nil, payload.ToEntity())
	if err != nil {
		return nil, conflict(err, "Employee code already exists")
	}
	s.publisher.Publish(ctx, events.RecordChangedEvent{Entity: "employee", ID: id, Action: events.ActionCreated})
	return s.employeeRepo.FindByID(ctx, nil, id)
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, id uint64, payload dto.UpdateEmployeeDTO) (*entities.Employee, error) {
	if _, err := s.employeeRepo.FindByID(ctx, nil, id); err != nil {
		return nil, notFound(err, employeeNotFound)
	}
	if err := s.checkTeam(ctx, payload.TeamID); err != nil {
		return nil, err
	}
	if err := s.employeeRepo.Update(ctx, nil, id, payload.Changes()); err != nil {
		return nil, conflict(notFound(err, employeeNotFound), "Employee code already exists")
	}
	s.publisher.Publish(ctx, events.RecordChangedEvent{Entity: "employee", ID: id, Action: events.ActionUpdated})
	return s.employeeRepo.FindByID(ctx, nil, id)
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, id uint64) error {
	if err := s.employeeRepo.Delete(ctx, nil, id); err != nil {
		return notFound(err, employeeNotFound)
	}
	s.publisher.Publish(ctx, events.RecordChangedEvent{Entity: "employee", ID: id, Action: events.ActionDeleted})
	return nil
}
