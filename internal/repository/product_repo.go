package repository

import (
	"context"
	"errors"

	"foodcart-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepo interface {
	Create(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	GetByName(ctx context.Context, name string) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
	UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error
	// ListAvailable returns products offered by at least one restaurant.
	ListAvailable(ctx context.Context) ([]models.Product, error)
}

type productRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) ProductRepo { return &productRepo{db: db} }

func (r *productRepo) Create(ctx context.Context, p *models.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) GetByName(ctx context.Context, name string) (*models.Product, error) {
	var p models.Product
	err := r.db.WithContext(ctx).Where("name = ?", name).Order("created_at ASC").First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *productRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var list []models.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error
	return list, err
}

func (r *productRepo) UpdatePrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Update("price", price).Error
}

func (r *productRepo) ListAvailable(ctx context.Context) ([]models.Product, error) {
	available := r.db.Model(&models.RestaurantMenuItem{}).
		Select("product_id").
		Where("availability = ?", true)

	var list []models.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("id IN (?)", available).
		Order("name ASC").
		Find(&list).Error
	return list, err
}
