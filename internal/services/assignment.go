package services

import (
	"context"
	"database/sql"

	"go.uber.org/zap"

	"machinery-registry/internal/dto"
	"machinery-registry/internal/events"
	"machinery-registry/internal/repositories"
	"machinery-registry/pkg/constants"
	apperrors "machinery-registry/pkg/errors"
)

type AssignmentServiceInterface interface {
	CreateAssignment(ctx context.Context, machineryID uint64, payload dto.CreateAssignmentDTO) (uint64, error)
	UpdateAssignment(ctx context.Context, machineryID uint64, payload dto.UpdateAssignmentDTO) error
	DeleteAssignment(ctx context.Context, machineryID, assignmentID uint64) error
}

type AssignmentOptions struct {
	// SingleActive refuses a second ASSIGNED row for the same machine.
	SingleActive bool
}

// AssignmentService keeps machinery.status in step with its assignments:
// creating an assignment puts the machine IN_USE, returning or cancelling one
// makes it AVAILABLE again. Deleting an assignment leaves the machine as it is.
type AssignmentService struct {
	txManager      repositories.TxManagerInterface
	assignmentRepo repositories.AssignmentRepositoryInterface
	machineryRepo  repositories.MachineryRepositoryInterface
	projectRepo    repositories.ProjectRepositoryInterface
	publisher      EventPublisher
	opts           AssignmentOptions
	logger         *zap.Logger
}

func NewAssignmentService(
	txManager repositories.TxManagerInterface,
	assignmentRepo repositories.AssignmentRepositoryInterface,
	machineryRepo repositories.MachineryRepositoryInterface,
	projectRepo repositories.ProjectRepositoryInterface,
	publisher EventPublisher,
	opts AssignmentOptions,
	logger *zap.Logger,
) AssignmentServiceInterface {
	return &AssignmentService{
		txManager:      txManager,
		assignmentRepo: assignmentRepo,
		machineryRepo:  machineryRepo,
		projectRepo:    projectRepo,
		publisher:      publisherOrNop(publisher),
		opts:           opts,
		logger:         logger,
	}
}

func (s *AssignmentService) CreateAssignment(ctx context.Context, machineryID uint64, payload dto.CreateAssignmentDTO) (uint64, error) {
	var id uint64
	err := s.txManager.RunInTransaction(ctx, func(tx *sql.Tx) error {
		if _, err := s.machineryRepo.LockByID(ctx, tx, machineryID); err != nil {
			return notFound(err, "Machinery not found")
		}
		if _, err := s.projectRepo.FindByID(ctx, tx, payload.ProjectID); err != nil {
			return notFound(err, "Project not found")
		}

		if s.opts.SingleActive {
			active, err := s.assignmentRepo.CountActiveByMachinery(ctx, tx, machineryID)
			if err != nil {
				return err
			}
			if active > 0 {
				return apperrors.NewConflictError("Machinery is already assigned to a project", apperrors.ErrConflict)
			}
		}

		var err error
		id, err = s.assignmentRepo.Create(ctx, tx, payload.ToEntity(machineryID))
		if err != nil {
			return err
		}
		return s.machineryRepo.SetStatus(ctx, tx, machineryID, constants.MachineryStatusInUse)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("machinery assigned",
		zap.Uint64("assignmentID", id),
		zap.Uint64("machineryID", machineryID),
		zap.Uint64("projectID", payload.ProjectID),
	)
	s.publisher.Publish(ctx, events.AssignmentEvent{
		Kind:             events.AssignmentCreated,
		AssignmentID:     id,
		MachineryID:      machineryID,
		ProjectID:        payload.ProjectID,
		AssignmentStatus: constants.AssignmentStatusAssigned,
		MachineryStatus:  constants.MachineryStatusInUse,
	})
	return id, nil
}

// UpdateAssignment applies the changeset. A RETURNED or CANCELLED status frees
// the machine even when other ASSIGNED rows still point at it.
func (s *AssignmentService) UpdateAssignment(ctx context.Context, machineryID uint64, payload dto.UpdateAssignmentDTO) error {
	var event events.AssignmentEvent
	err := s.txManager.RunInTransaction(ctx, func(tx *sql.Tx) error {
		machine, err := s.machineryRepo.LockByID(ctx, tx, machineryID)
		if err != nil {
			return notFound(err, "Machinery not found")
		}

		current, err := s.assignmentRepo.FindByID(ctx, tx, payload.AssignmentID)
		if err != nil {
			return notFound(err, "Assignment not found")
		}
		if current.MachineryID != machineryID {
			return apperrors.NewNotFoundError("Assignment not found")
		}

		projectID := current.ProjectID
		if payload.ProjectID != nil {
			if _, err := s.projectRepo.FindByID(ctx, tx, *payload.ProjectID); err != nil {
				return notFound(err, "Project not found")
			}
			projectID = *payload.ProjectID
		}

		if err := s.assignmentRepo.Update(ctx, tx, current.ID, payload.Changes()); err != nil {
			return notFound(err, "Assignment not found")
		}

		machineStatus := machine.Status
		if payload.ReleasesMachine() {
			if err := s.machineryRepo.SetStatus(ctx, tx, current.MachineryID, constants.MachineryStatusAvailable); err != nil {
				return err
			}
			machineStatus = constants.MachineryStatusAvailable
		}

		assignmentStatus := current.Status
		if payload.Status != nil {
			assignmentStatus = *payload.Status
		}
		event = events.AssignmentEvent{
			Kind:             events.AssignmentUpdated,
			AssignmentID:     current.ID,
			MachineryID:      current.MachineryID,
			ProjectID:        projectID,
			AssignmentStatus: assignmentStatus,
			MachineryStatus:  machineStatus,
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("assignment updated",
		zap.Uint64("assignmentID", event.AssignmentID),
		zap.String("status", event.AssignmentStatus),
		zap.String("machineryStatus", event.MachineryStatus),
	)
	s.publisher.Publish(ctx, event)
	return nil
}

// DeleteAssignment removes the row only; machinery.status is not recomputed.
func (s *AssignmentService) DeleteAssignment(ctx context.Context, machineryID, assignmentID uint64) error {
	var event events.AssignmentEvent
	err := s.txManager.RunInTransaction(ctx, func(tx *sql.Tx) error {
		machine, err := s.machineryRepo.FindByID(ctx, tx, machineryID)
		if err != nil {
			return notFound(err, "Machinery not found")
		}

		current, err := s.assignmentRepo.FindByID(ctx, tx, assignmentID)
		if err != nil {
			return notFound(err, "Assignment not found")
		}
		if current.MachineryID != machineryID {
			return apperrors.NewNotFoundError("Assignment not found")
		}

		if err := s.assignmentRepo.Delete(ctx, tx, assignmentID); err != nil {
			return notFound(err, "Assignment not found")
		}

		event = events.AssignmentEvent{
			Kind:             events.AssignmentDeleted,
			AssignmentID:     assignmentID,
			MachineryID:      machineryID,
			ProjectID:        current.ProjectID,
			AssignmentStatus: current.Status,
			MachineryStatus:  machine.Status,
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("assignment deleted", zap.Uint64("assignmentID", assignmentID), zap.Uint64("machineryID", machineryID))
	s.publisher.Publish(ctx, event)
	return nil
}
