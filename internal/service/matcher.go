package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"foodcart-service/internal/geo"
	"foodcart-service/internal/geocoder"
	"foodcart-service/internal/models"
	"foodcart-service/internal/repository"

	"go.uber.org/zap"
)

const DefaultMaxRadiusMeters = 50000

// CandidateMatcher rebuilds the candidate distances of an order.
type CandidateMatcher struct {
	geocoder  geocoder.Geocoder
	locator   *RestaurantLocator
	maxRadius float64
	log       *zap.Logger
}

func NewCandidateMatcher(g geocoder.Geocoder, locator *RestaurantLocator, maxRadiusMeters float64, log *zap.Logger) *CandidateMatcher {
	if maxRadiusMeters <= 0 {
		maxRadiusMeters = DefaultMaxRadiusMeters
	}
	return &CandidateMatcher{geocoder: g, locator: locator, maxRadius: maxRadiusMeters, log: log}
}

// Recompute replaces every candidate row of the order with one row per
// restaurant. It must run inside the caller's transaction: an unresolvable
// order address returns ErrAddressUnresolvable before anything is written.
func (m *CandidateMatcher) Recompute(ctx context.Context, repos *repository.Repository, order *models.Order) ([]models.CandidateDistance, error) {
	client, err := m.geocoder.Resolve(ctx, order.Address)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAddressUnresolvable, err)
	}

	rests, err := repos.Restaurants.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}

	coords, err := m.locator.LocateAll(ctx, repos, rests)
	if err != nil {
		return nil, err
	}

	rows := make([]models.CandidateDistance, 0, len(rests))
	for i := range rests {
		row := models.CandidateDistance{OrderID: order.ID, RestaurantID: rests[i].ID}
		if c, ok := coords[rests[i].ID]; ok {
			if d := geo.Distance(client, c); d <= m.maxRadius {
				row.DistanceMeters = &d
			}
		}
		rows = append(rows, row)
	}

	if _, err := repos.Candidates.DeleteByOrderID(ctx, order.ID); err != nil {
		return nil, fmt.Errorf("delete candidates: %w", err)
	}
	if err := repos.Candidates.BulkCreate(ctx, rows); err != nil {
		return nil, fmt.Errorf("create candidates: %w", err)
	}

	for i := range rows {
		rows[i].Restaurant = &rests[i]
	}
	sortCandidates(rows)
	return rows, nil
}

// sortCandidates orders by distance ascending with nulls last, then by name.
func sortCandidates(rows []models.CandidateDistance) {
	slices.SortStableFunc(rows, func(a, b models.CandidateDistance) int {
		switch {
		case a.DistanceMeters == nil && b.DistanceMeters != nil:
			return 1
		case a.DistanceMeters != nil && b.DistanceMeters == nil:
			return -1
		case a.DistanceMeters != nil && b.DistanceMeters != nil:
			if c := cmp.Compare(*a.DistanceMeters, *b.DistanceMeters); c != 0 {
				return c
			}
		}
		return cmp.Compare(restaurantName(a), restaurantName(b))
	})
}

func restaurantName(c models.CandidateDistance) string {
	if c.Restaurant == nil {
		return ""
	}
	return c.Restaurant.Name
}
