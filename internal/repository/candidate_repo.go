package repository

import (
	"context"
	"errors"

	"foodcart-service/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CandidateRepo interface {
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error)
	BulkCreate(ctx context.Context, rows []models.CandidateDistance) error
	// ListByOrderID returns rows with Restaurant loaded, nearest first, nulls last.
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.CandidateDistance, error)
	Get(ctx context.Context, orderID, restaurantID uuid.UUID) (*models.CandidateDistance, error)
}

type candidateRepo struct{ db *gorm.DB }

func NewCandidateRepo(db *gorm.DB) CandidateRepo { return &candidateRepo{db: db} }

func (r *candidateRepo) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error) {
	tx := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&models.CandidateDistance{})
	return tx.RowsAffected, tx.Error
}

func (r *candidateRepo) BulkCreate(ctx context.Context, rows []models.CandidateDistance) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(&rows).Error
}

func (r *candidateRepo) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]models.CandidateDistance, error) {
	var rows []models.CandidateDistance
	err := r.db.WithContext(ctx).
		Joins("Restaurant").
		Where("candidate_distances.order_id = ?", orderID).
		Order(`candidate_distances.distance_meters ASC NULLS LAST, "Restaurant".name ASC`).
		Find(&rows).Error
	return rows, err
}

func (r *candidateRepo) Get(ctx context.Context, orderID, restaurantID uuid.UUID) (*models.CandidateDistance, error) {
	var row models.CandidateDistance
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND restaurant_id = ?", orderID, restaurantID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &row, err
}
