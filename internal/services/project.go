package services

import (
	"context"

	"go.uber.org/zap"

	"machinery-registry/internal/dto"
	"machinery-registry/internal/entities"
	"machinery-registry/internal/events"
	"machinery-registry/internal/repositories"
)

const projectNotFound = "Project not found"

type ProjectServiceInterface interface {
	GetProjects(ctx context.Context) ([]entities.Project, error)
	GetProject(ctx context.Context, id uint64) (*dto.ProjectDetailDTO, error)
	GetLocations(ctx context.Context) ([]entities.ProjectLocation, error)
	CreateProject(ctx context.Context, payload dto.CreateProjectDTO) (*entities.Project, error)
	UpdateProject(ctx context.Context, id uint64, payload dto.UpdateProjectDTO) (*entities.Project, error)
	DeleteProject(ctx context.Context, id uint64) error
}

type ProjectService struct {
	projectRepo    repositories.ProjectRepositoryInterface
	assignmentRepo repositories.AssignmentRepositoryInterface
	publisher      EventPublisher
	logger         *zap.Logger
}

func NewProjectService(
	projectRepo repositories.ProjectRepositoryInterface,
	assignmentRepo repositories.AssignmentRepositoryInterface,
	publisher EventPublisher,
	logger *zap.Logger,
) ProjectServiceInterface {
	return &ProjectService{
		projectRepo:    projectRepo,
		assignmentRepo: assignmentRepo,
		publisher:      publisherOrNop(publisher),
		logger:         logger,
	}
}

func (s *ProjectService) GetProjects(ctx context.Context) ([]entities.Project, error) {
	return s.projectRepo.GetAll(ctx)
}

func (s *ProjectService) GetProject(ctx context.Context, id uint64) (*dto.ProjectDetailDTO, error) {
	project, err := s.projectRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, notFound(err, projectNotFound)
	}
	assignments, err := s.assignmentRepo.GetByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ProjectDetailDTO{Project: *project, Assignments: assignments}, nil
}

func (s *ProjectService) GetLocations(ctx context.Context) ([]entities.ProjectLocation, error) {
	return s.projectRepo.GetLocations(ctx)
}

func (s *ProjectService) CreateProject(ctx context.Context, payload dto.CreateProjectDTO) (*entities.Project, error) {
	id, err := s.projectRepo.Create(ctx, nil, payload.ToEntity())
	if err != nil {
		return nil, err
	}
	s.logger.Info("project created", zap.Uint64("id", id), zap.String("name", payload.Name))
	s.publisher.Publish(ctx, events.RecordChangedEvent{Entity: "project", ID: id, Action: events.ActionCreated})
	return s.projectRepo.FindByID(ctx, nil, id)
}

func (s *ProjectService) UpdateProject(ctx context.Context, id uint64, payload dto.UpdateProjectDTO) (*entities.Project, error) {
	if err := s.projectRepo.Update(ctx, nil, id, payload.Changes()); err != nil {
		return nil, notFound(err, projectNotFound)
	}
	s.publisher.Publish(ctx, events.RecordChangedEvent{Entity: "project", ID: id, Action: events.ActionUpdated})
	return s.projectRepo.FindByID(ctx, nil, id)
}

func (s *ProjectService) DeleteProject(ctx context.Context, id uint64) error {
	if err := s.projectRepo.Delete(ctx, nil, id); err != nil {
		return conflict(notFound(err, projectNotFound), "Project still has machinery assignments")
	}
	s.logger.Info("project deleted", zap.Uint64("id", id))
	s.publisher.Publish(ctx, events.RecordChangedEvent{Entity: "project", ID: id, Action: events.ActionDeleted})
	return nil
}
