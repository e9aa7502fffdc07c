package repository

import (
	"context"
	"errors"

	"foodcart-service/internal/geo"
	"foodcart-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RestaurantRepo interface {
	Create(ctx context.Context, r *models.Restaurant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error)
	GetByName(ctx context.Context, name string) (*models.Restaurant, error)
	List(ctx context.Context) ([]models.Restaurant, error)
	Update(ctx context.Context, r *models.Restaurant) error
	SetCoordinates(ctx context.Context, id uuid.UUID, c geo.Coordinates) error

	// ListCoveringProducts returns restaurants with an available menu row for
	// every product in the set. An empty set matches every restaurant.
	ListCoveringProducts(ctx context.Context, productIDs []uuid.UUID) ([]models.Restaurant, error)
}

type restaurantRepo struct{ db *gorm.DB }

func NewRestaurantRepo(db *gorm.DB) RestaurantRepo { return &restaurantRepo{db: db} }

func (r *restaurantRepo) Create(ctx context.Context, rest *models.Restaurant) error {
	return r.db.WithContext(ctx).Create(rest).Error
}

func (r *restaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var rest models.Restaurant
	err := r.db.WithContext(ctx).First(&rest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rest, err
}

func (r *restaurantRepo) GetByName(ctx context.Context, name string) (*models.Restaurant, error) {
	var rest models.Restaurant
	err := r.db.WithContext(ctx).Where("name = ?", name).Order("created_at ASC").First(&rest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rest, err
}

func (r *restaurantRepo) List(ctx context.Context) ([]models.Restaurant, error) {
	var list []models.Restaurant
	err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error
	return list, err
}

func (r *restaurantRepo) Update(ctx context.Context, rest *models.Restaurant) error {
	return r.db.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", rest.ID).Updates(map[string]any{
		"name":          rest.Name,
		"address":       rest.Address,
		"contact_phone": rest.ContactPhone,
		"lon":           rest.Lon,
		"lat":           rest.Lat,
	}).Error
}

func (r *restaurantRepo) SetCoordinates(ctx context.Context, id uuid.UUID, c geo.Coordinates) error {
	return r.db.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", id).Updates(map[string]any{
		"lon": c.Lon,
		"lat": c.Lat,
	}).Error
}

func (r *restaurantRepo) ListCoveringProducts(ctx context.Context, productIDs []uuid.UUID) ([]models.Restaurant, error) {
	ids := distinctIDs(productIDs)
	if len(ids) == 0 {
		return r.List(ctx)
	}

	covering := r.db.Model(&models.RestaurantMenuItem{}).
		Select("restaurant_id").
		Where("availability = ? AND product_id IN ?", true, ids).
		Group("restaurant_id").
		Having("COUNT(DISTINCT product_id) = ?", len(ids))

	var list []models.Restaurant
	err := r.db.WithContext(ctx).Where("id IN (?)", covering).Order("name ASC").Find(&list).Error
	return list, err
}

func distinctIDs(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
