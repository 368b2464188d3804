package services

import (
	"context"
	"errors"

	"friend-service/internal/models"
)

// EventPublisher delivers friend request events to an outside system.
type EventPublisher interface {
	Publish(ctx context.Context, event models.FriendRequestEvent) error
}

// MultiPublisher publishes to every member and joins their errors.
type MultiPublisher []EventPublisher

func (m MultiPublisher) Publish(ctx context.Context, event models.FriendRequestEvent) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
