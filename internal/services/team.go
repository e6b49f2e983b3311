package services

import (
	"context"

	"go.uber.org/zap"

	"machinery-registry/internal/dto"
	"machinery-registry/internal/entities"
	"machinery-registry/internal/events"
	"machinery-registry/internal/repositories"
)

const teamNotFound = "Team not found"

type TeamServiceInterface interface {
	GetTeams(ctx context.Context) ([]entities.Team, error)
	GetTeam(ctx context.Context, id uint64) (*dto.TeamDetailDTO, error)
	CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error)
	UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*entities.Team, error)
	DeleteTeam(ctx context.Context, id uint64) error
}

type TeamService struct {
	teamRepo     repositories.TeamRepositoryInterface
	employeeRepo repositories.EmployeeRepositoryInterface
	publisher    EventPublisher
	logger       *zap.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepositoryInterface,
	employeeRepo repositories.EmployeeRepositoryInterface,
	publisher EventPublisher,
	logger *zap.Logger,
) TeamServiceInterface {
	return &TeamService{
		teamRepo:     teamRepo,
		employeeRepo: employeeRepo,
		publisher:    publisherOrNop(publisher),
		logger:       logger,
	}
}

func (s *TeamService) GetTeams(ctx context.Context) ([]entities.Team, error) {
	return s.teamRepo.GetAll(ctx)
}

func (s *TeamService) GetTeam(ctx context.Context, id uint64) (*dto.TeamDetailDTO, error) {
	team, err := s.teamRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, notFound(err, teamNotFound)
	}
	members, err := s.employeeRepo.GetAll(ctx, &id)
	if err != nil {
		return nil, err
	}
	return &dto.TeamDetailDTO{Team: *team, Employees: members}, nil
}

func (s *TeamService) CreateTeam(ctx context.Context, payload dto.CreateTeamDTO) (*entities.Team, error) {
	id, err := s.teamRepo.Create(ctx, nil, payload.ToEntity())
	if err != nil {
		return nil, err
	}
	s.publisher.Publish(ctx, events.RecordChangedEvent{Entity: "team", ID: id, Action: events.ActionCreated})
	return s.teamRepo.FindByID(ctx, nil, id)
}

func (s *TeamService) UpdateTeam(ctx context.Context, id uint64, payload dto.UpdateTeamDTO) (*entities.Team, error) {
	if err := s.teamRepo.Update(ctx, nil, id, payload.Changes()); err != nil {
		return nil, notFound(err, teamNotFound)
	}
	s.publisher.Publish(ctx, events.RecordChangedEvent{Entity: "team", ID: id, Action: events.ActionUpdated})
	return s.teamRepo.FindByID(ctx, nil, id)
}

// DeleteTeam keeps the members; they lose their team.
func (s *TeamService) DeleteTeam(ctx context.Context, id uint64) error {
	if err := s.teamRepo.Delete(ctx, nil, id); err != nil {
		return notFound(err, teamNotFound)
	}
	s.logger.Info("team deleted", zap.Uint64("id", id))
	s.publisher.Publish(ctx, events.RecordChangedEvent{Entity: "team", ID: id, Action: events.ActionDeleted})
	return nil
}
