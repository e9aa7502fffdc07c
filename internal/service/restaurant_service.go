package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"foodcart-service/internal/models"
	"foodcart-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type RestaurantInput struct {
	Name         string
	Address      string
	ContactPhone string
}

// RestaurantPatch carries optional fields; nil means unchanged.
type RestaurantPatch struct {
	Name         *string
	Address      *string
	ContactPhone *string
}

type RestaurantService interface {
	CreateRestaurant(ctx context.Context, in RestaurantInput) (*models.Restaurant, error)
	// GetOrCreateRestaurant matches by name. created is false for an existing row.
	GetOrCreateRestaurant(ctx context.Context, in RestaurantInput) (r *models.Restaurant, created bool, err error)
	UpdateRestaurant(ctx context.Context, id uuid.UUID, p RestaurantPatch) (*models.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]models.Restaurant, error)
	SetMenuAvailability(ctx context.Context, restaurantID, productID uuid.UUID, available bool) error
	// ListMenu returns every menu row of the restaurant, available or not, by product name.
	ListMenu(ctx context.Context, restaurantID uuid.UUID) ([]models.RestaurantMenuItem, error)
}

type restaurantService struct {
	store Store
	log   *zap.Logger
}

func NewRestaurantService(store Store, log *zap.Logger) RestaurantService {
	return &restaurantService{store: store, log: log}
}

func (s *restaurantService) CreateRestaurant(ctx context.Context, in RestaurantInput) (*models.Restaurant, error) {
	name, err := required("name", in.Name)
	if err != nil {
		return nil, err
	}
	r := &models.Restaurant{
		Name:         name,
		Address:      strings.TrimSpace(in.Address),
		ContactPhone: strings.TrimSpace(in.ContactPhone),
	}
	if err := s.store.Repos().Restaurants.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *restaurantService) GetOrCreateRestaurant(ctx context.Context, in RestaurantInput) (*models.Restaurant, bool, error) {
	name, err := required("name", in.Name)
	if err != nil {
		return nil, false, err
	}
	existing, err := s.store.Repos().Restaurants.GetByName(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	r, err := s.CreateRestaurant(ctx, in)
	if err != nil {
		return nil, false, err
	}
	return r, true, nil
}

func (s *restaurantService) UpdateRestaurant(ctx context.Context, id uuid.UUID, p RestaurantPatch) (*models.Restaurant, error) {
	var out *models.Restaurant
	err := s.store.WithTx(ctx, func(tx *repository.Repository) error {
		r, err := tx.Restaurants.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if r == nil {
			return ErrRestaurantNotFound
		}

		if p.Name != nil {
			if r.Name, err = required("name", *p.Name); err != nil {
				return err
			}
		}
		if p.ContactPhone != nil {
			r.ContactPhone = strings.TrimSpace(*p.ContactPhone)
		}
		if p.Address != nil {
			addr := strings.TrimSpace(*p.Address)
			if addr != r.Address {
				// закэшированные координаты относятся к старому адресу
				r.Address = addr
				r.Lon, r.Lat = nil, nil
			}
		}

		if err := tx.Restaurants.Update(ctx, r); err != nil {
			return err
		}
		out = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *restaurantService) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	return s.store.Repos().Restaurants.List(ctx)
}

func (s *restaurantService) SetMenuAvailability(ctx context.Context, restaurantID, productID uuid.UUID, available bool) error {
	return s.store.WithTx(ctx, func(tx *repository.Repository) error {
		r, err := tx.Restaurants.GetByID(ctx, restaurantID)
		if err != nil {
			return err
		}
		if r == nil {
			return ErrRestaurantNotFound
		}
		p, err := tx.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return ErrProductNotFound
		}
		return tx.Menu.Upsert(ctx, restaurantID, productID, available)
	})
}

func (s *restaurantService) ListMenu(ctx context.Context, restaurantID uuid.UUID) ([]models.RestaurantMenuItem, error) {
	repos := s.store.Repos()
	r, err := repos.Restaurants.GetByID(ctx, restaurantID)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrRestaurantNotFound
	}

	items, err := repos.Menu.ListByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list menu: %w", err)
	}
	slices.SortStableFunc(items, func(a, b models.RestaurantMenuItem) int {
		return cmp.Compare(menuProductName(a), menuProductName(b))
	})
	return items, nil
}

func menuProductName(it models.RestaurantMenuItem) string {
	if it.Product == nil {
		return ""
	}
	return it.Product.Name
}
