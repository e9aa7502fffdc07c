package service

import (
	"context"

	"foodcart-service/internal/repository"
)

// Store hands out repositories, optionally bound to one transaction.
// *repository.Repository satisfies it.
type Store interface {
	Repos() *repository.Repository
	WithTx(ctx context.Context, fn func(tx *repository.Repository) error) error
}

type EventBus interface {
	PublishOrderCreated(ctx context.Context, e OrderCreatedEvent) error
	PublishRestaurantAssigned(ctx context.Context, e RestaurantAssignedEvent) error
	PublishStatusChanged(ctx context.Context, e StatusChangedEvent) error
}
