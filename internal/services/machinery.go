package services

import (
	"context"

	"go.uber.org/zap"

	"machinery-registry/internal/dto"
	"machinery-registry/internal/entities"
	"machinery-registry/internal/events"
	"machinery-registry/internal/repositories"
)

const machineryNotFound = "Machinery not found"

type MachineryServiceInterface interface {
	GetMachinery(ctx context.Context, filter dto.MachineryFilter) ([]entities.Machinery, error)
	GetMachine(ctx context.Context, id uint64) (*dto.MachineryDetailDTO, error)
	CreateMachine(ctx context.Context, payload dto.CreateMachineryDTO) (*entities.Machinery, error)
	UpdateMachine(ctx context.Context, id uint64, payload dto.UpdateMachineryDTO) (*entities.Machinery, error)
	DeleteMachine(ctx context.Context, id uint64) error
}

type MachineryService struct {
	machineryRepo  repositories.MachineryRepositoryInterface
	assignmentRepo repositories.AssignmentRepositoryInterface
	publisher      EventPublisher
	logger         *zap.Logger
}

func NewMachineryService(
	machineryRepo repositories.MachineryRepositoryInterface,
	assignmentRepo repositories.AssignmentRepositoryInterface,
	publisher EventPublisher,
	logger *zap.Logger,
) MachineryServiceInterface {
	return &MachineryService{
		machineryRepo:  machineryRepo,
		assignmentRepo: assignmentRepo,
		publisher:      publisherOrNop(publisher),
		logger:         logger,
	}
}

func (s *MachineryService) GetMachinery(ctx context.Context, filter dto.MachineryFilter) ([]entities.Machinery, error) {
	return s.machineryRepo.GetAll(ctx, filter.Status)
}

func (s *MachineryService) GetMachine(ctx context.Context, id uint64) (*dto.MachineryDetailDTO, error) {
	machine, err := s.machineryRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, notFound(err, machineryNotFound)
	}
	assignments, err := s.assignmentRepo.GetByMachinery(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.MachineryDetailDTO{Machinery: *machine, Assignments: assignments}, nil
}

func (s *MachineryService) CreateMachine(ctx context.Context, payload dto.CreateMachineryDTO) (*entities.Machinery, error) {
	id, err := s.machineryRepo.Create(ctx, nil, payload.ToEntity())
	if err != nil {
		return nil, conflict(err, "Machinery code already exists")
	}
	s.logger.Info("machinery created", zap.Uint64("id", id), zap.String("code", payload.Code))
	s.publisher.Publish(ctx, events.RecordChangedEvent{Entity: "machinery", ID: id, Action: events.ActionCreated})
	return s.machineryRepo.FindByID(ctx, nil, id)
}

// UpdateMachine edits the record directly, status included; it does not touch assignments.
func (s *MachineryService) UpdateMachine(ctx context.Context, id uint64, payload dto.UpdateMachineryDTO) (*entities.Machinery, error) {
	if err := s.machineryRepo.Update(ctx, nil, id, payload.Changes()); err != nil {
		return nil, conflict(notFound(err, machineryNotFound), "Machinery code already exists")
	}
	s.publisher.Publish(ctx, events.RecordChangedEvent{Entity: "machinery", ID: id, Action: events.ActionUpdated})
	return s.machineryRepo.FindByID(ctx, nil, id)
}

func (s *MachineryService) DeleteMachine(ctx context.Context, id uint64) error {
	if err := s.machineryRepo.Delete(ctx, nil, id); err != nil {
		return conflict(notFound(err, machineryNotFound), "Machinery still has assignments")
	}
	s.logger.Info("machinery deleted", zap.Uint64("id", id))
	s.publisher.Publish(ctx, events.RecordChangedEvent{Entity: "machinery", ID: id, Action: events.ActionDeleted})
	return nil
}
