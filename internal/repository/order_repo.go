package repository

import (
	"context"
	"errors"
	"time"

	"foodcart-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderListFilter struct {
	Status *models.OrderStatus
	Limit  int
	Offset int
}

// StatusUpdate sets the status and, when non-nil, the matching timestamps.
type StatusUpdate struct {
	Status      models.OrderStatus
	ProcessedAt *time.Time
	DeliveredAt *time.Time
}

type OrderRepo interface {
	Create(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// GetByIDForUpdate locks the order row until the transaction ends.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateAddress(ctx context.Context, id uuid.UUID, address string) error
	SetPreparingRestaurant(ctx context.Context, id uuid.UUID, restaurantID uuid.UUID) error
	UpdateStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) error
	List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error)
	ListAssignedUnprocessed(ctx context.Context, limit int) ([]*models.Order, error)
}

type orderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) OrderRepo { return &orderRepo{db: db} }

const statusRankSQL = `CASE status
  WHEN 'not_processed' THEN 0
  WHEN 'cooking' THEN 1
  WHEN 'on_way' THEN 2
  ELSE 3 END`

func (r *orderRepo) Create(ctx context.Context, o *models.Order) error {
	// позиции пишет OrderItemRepo
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(o).Error
}

func (r *orderRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Items.Product").
		Preload("PreparingRestaurant").
		First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ord, err
}

func (r *orderRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var ord models.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ord, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Where("order_id = ?", id).Order("created_at ASC").Find(&ord.Items).Error; err != nil {
		return nil, err
	}
	return &ord, nil
}

func (r *orderRepo) UpdateAddress(ctx context.Context, id uuid.UUID, address string) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("address", address).Error
}

func (r *orderRepo) SetPreparingRestaurant(ctx context.Context, id uuid.UUID, restaurantID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Update("preparing_restaurant_id", restaurantID).Error
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) error {
	fields := map[string]any{"status": upd.Status}
	if upd.ProcessedAt != nil {
		fields["processed_at"] = *upd.ProcessedAt
	}
	if upd.DeliveredAt != nil {
		fields["delivered_at"] = *upd.DeliveredAt
	}
	return r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(fields).Error
}

func (r *orderRepo) List(ctx context.Context, f OrderListFilter) ([]*models.Order, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})

	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if f.Limit <= 0 {
		f.Limit = 20
	}

	if f.Offset < 0 {
		f.Offset = 0
	}

	// незавершённые заказы первыми, внутри статуса свежие сверху
	var list []*models.Order
	err := q.Order(statusRankSQL + ", registered_at DESC").
		Limit(f.Limit).
		Offset(f.Offset).
		Preload("Items").
		Preload("Items.Product").
		Preload("PreparingRestaurant").
		Find(&list).Error
	return list, total, err
}

func (r *orderRepo) ListAssignedUnprocessed(ctx context.Context, limit int) ([]*models.Order, error) {
	if limit <= 0 {
		limit = 100
	}
	var list []*models.Order
	err := r.db.WithContext(ctx).
		Where("status = ? AND preparing_restaurant_id IS NOT NULL", models.OrderStatusNotProcessed).
		Order("registered_at ASC").
		Limit(limit).
		Find(&list).Error
	return list, err
}
