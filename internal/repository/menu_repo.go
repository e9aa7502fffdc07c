package repository

import (
	"context"

	"foodcart-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MenuRepo interface {
	// Upsert creates or updates the (restaurant, product) row.
	Upsert(ctx context.Context, restaurantID, productID uuid.UUID, available bool) error
	ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.RestaurantMenuItem, error)
	AvailableProductIDs(ctx context.Context, restaurantID uuid.UUID) (map[uuid.UUID]struct{}, error)
}

type menuRepo struct{ db *gorm.DB }

func NewMenuRepo(db *gorm.DB) MenuRepo { return &menuRepo{db: db} }

func (r *menuRepo) Upsert(ctx context.Context, restaurantID, productID uuid.UUID, available bool) error {
	item := models.RestaurantMenuItem{
		RestaurantID: restaurantID,
		ProductID:    productID,
		Availability: available,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "restaurant_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]any{"availability": available, "updated_at": gorm.Expr("now()")}),
	}).Create(&item).Error
}

func (r *menuRepo) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.RestaurantMenuItem, error) {
	var rows []models.RestaurantMenuItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("restaurant_id = ?", restaurantID).
		Find(&rows).Error
	return rows, err
}

func (r *menuRepo) AvailableProductIDs(ctx context.Context, restaurantID uuid.UUID) (map[uuid.UUID]struct{}, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&models.RestaurantMenuItem{}).
		Where("restaurant_id = ? AND availability = ?", restaurantID, true).
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}
