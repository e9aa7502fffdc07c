package service

import (
	"context"
	"fmt"

	"foodcart-service/internal/models"
	"foodcart-service/internal/repository"

	"github.com/google/uuid"
)

// Covers reports whether every required product is in available.
func Covers(required []uuid.UUID, available map[uuid.UUID]struct{}) bool {
	for _, id := range required {
		if _, ok := available[id]; !ok {
			return false
		}
	}
	return true
}

// isVerified checks the live predicate: a candidate row exists and the
// restaurant's current menu covers the order.
func isVerified(ctx context.Context, repos *repository.Repository, order *models.Order, restaurantID uuid.UUID) (bool, error) {
	cand, err := repos.Candidates.Get(ctx, order.ID, restaurantID)
	if err != nil {
		return false, fmt.Errorf("get candidate: %w", err)
	}
	if cand == nil {
		return false, nil
	}
	available, err := repos.Menu.AvailableProductIDs(ctx, restaurantID)
	if err != nil {
		return false, fmt.Errorf("menu availability: %w", err)
	}
	return Covers(order.ProductIDs(), available), nil
}
