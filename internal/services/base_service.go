package services

import (
	"context"
	"errors"

	"machinery-registry/pkg/eventbus"
	apperrors "machinery-registry/pkg/errors"
)

// EventPublisher is the part of the event bus the services need.
type EventPublisher interface {
	Publish(ctx context.Context, event eventbus.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, eventbus.Event) {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}

// notFound swaps ErrNotFound for a 404 carrying message; other errors pass through.
func notFound(err error, message string) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NewNotFoundError(message)
	}
	return err
}

// conflict swaps ErrConflict for a 409 carrying message; other errors pass through.
func conflict(err error, message string) error {
	if errors.Is(err, apperrors.ErrConflict) {
		return apperrors.NewConflictError(message, err)
	}
	return err
}
