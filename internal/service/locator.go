package service

import (
	"context"
	"errors"
	"fmt"

	"foodcart-service/internal/geo"
	"foodcart-service/internal/geocoder"
	"foodcart-service/internal/models"
	"foodcart-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultGeocodeConcurrency = 4

// RestaurantLocator resolves restaurant coordinates, geocoding only when the
// row has none and writing the result back.
type RestaurantLocator struct {
	geocoder    geocoder.Geocoder
	concurrency int
	log         *zap.Logger
}

func NewRestaurantLocator(g geocoder.Geocoder, concurrency int, log *zap.Logger) *RestaurantLocator {
	if concurrency <= 0 {
		concurrency = defaultGeocodeConcurrency
	}
	return &RestaurantLocator{geocoder: g, concurrency: concurrency, log: log}
}

func coordinatesOf(r *models.Restaurant) geo.Coordinates {
	return geo.Coordinates{Lon: *r.Lon, Lat: *r.Lat}
}

func setCoordinates(r *models.Restaurant, c geo.Coordinates) {
	lon, lat := c.Lon, c.Lat
	r.Lon, r.Lat = &lon, &lat
}

// remember persists c and caches it on the entity.
func remember(ctx context.Context, repos *repository.Repository, r *models.Restaurant, c geo.Coordinates) error {
	if err := repos.Restaurants.SetCoordinates(ctx, r.ID, c); err != nil {
		return fmt.Errorf("save restaurant coordinates: %w", err)
	}
	setCoordinates(r, c)
	return nil
}

// LocateAll resolves coordinates for every restaurant. Missing ones are
// geocoded concurrently and persisted sequentially on repos, so a
// transaction handle is never shared between goroutines. Unresolvable
// restaurants are absent from the result.
func (l *RestaurantLocator) LocateAll(ctx context.Context, repos *repository.Repository, rests []models.Restaurant) (map[uuid.UUID]geo.Coordinates, error) {
	out := make(map[uuid.UUID]geo.Coordinates, len(rests))

	var missing []int
	for i := range rests {
		if rests[i].HasCoordinates() {
			out[rests[i].ID] = coordinatesOf(&rests[i])
			continue
		}
		missing = append(missing, i)
	}
	if len(missing) == 0 {
		return out, nil
	}

	resolved := make([]*geo.Coordinates, len(missing))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for slot, idx := range missing {
		r := &rests[idx]
		g.Go(func() error {
			c, err := l.geocoder.Resolve(gctx, r.Address)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				l.log.Warn("restaurant address unresolvable",
					zap.String("restaurant_id", r.ID.String()),
					zap.String("address", r.Address),
					zap.Error(errors.Join(ErrRestaurantUnresolvable, err)))
				return nil
			}
			resolved[slot] = &c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for slot, idx := range missing {
		c := resolved[slot]
		if c == nil {
			continue
		}
		r := &rests[idx]
		if err := remember(ctx, repos, r, *c); err != nil {
			return nil, err
		}
		out[r.ID] = *c
	}
	return out, nil
}
