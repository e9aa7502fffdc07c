package geocoder

import (
	"context"
	"time"

	"foodcart-service/internal/geo"

	"go.uber.org/zap"
)

type CoordinatesCache interface {
	GetCoordinates(ctx context.Context, address string) (geo.Coordinates, bool, error)
	SetCoordinates(ctx context.Context, address string, c geo.Coordinates, ttl time.Duration) error
}

// CachedGeocoder remembers successful lookups. Cache failures never fail the lookup.
type CachedGeocoder struct {
	next  Geocoder
	cache CoordinatesCache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedGeocoder(next Geocoder, cache CoordinatesCache, ttl time.Duration, log *zap.Logger) *CachedGeocoder {
	return &CachedGeocoder{next: next, cache: cache, ttl: ttl, log: log}
}

func (g *CachedGeocoder) Resolve(ctx context.Context, address string) (geo.Coordinates, error) {
	if c, ok, err := g.cache.GetCoordinates(ctx, address); err != nil {
		g.log.Warn("geocode cache read failed", zap.String("address", address), zap.Error(err))
	} else if ok {
		return c, nil
	}

	c, err := g.next.Resolve(ctx, address)
	if err != nil {
		return geo.Coordinates{}, err
	}

	if err := g.cache.SetCoordinates(ctx, address, c, g.ttl); err != nil {
		g.log.Warn("geocode cache write failed", zap.String("address", address), zap.Error(err))
	}
	return c, nil
}
