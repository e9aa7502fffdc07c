package service

import (
	"context"

	"foodcart-service/internal/models"

	"github.com/google/uuid"
)

type CreateOrderItem struct {
	ProductID uuid.UUID
	Quantity  int32
}

type CreateOrderInput struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Address     string
	Payment     models.PaymentMethod
	Comment     string
	Items       []CreateOrderItem
}

type ListFilter struct {
	Status *models.OrderStatus
	Limit  int
	Offset int
}

// VerifiedCandidate is a restaurant able to prepare the whole order right now.
// DistanceMeters is nil when it is beyond the radius or unresolvable.
type VerifiedCandidate struct {
	Restaurant     models.Restaurant
	DistanceMeters *float64
	WithinRadius   bool
}

type OrderService interface {
	CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error)
	UpdateOrderAddress(ctx context.Context, id uuid.UUID, address string) (*models.Order, error)
	RecomputeCandidates(ctx context.Context, id uuid.UUID) ([]models.CandidateDistance, error)
	ListVerifiedCandidates(ctx context.Context, id uuid.UUID) ([]VerifiedCandidate, error)
	AssignPreparingRestaurant(ctx context.Context, orderID, restaurantID uuid.UUID) (*models.Order, error)
	AdvanceStatus(ctx context.Context, id uuid.UUID, target models.OrderStatus) (*models.Order, error)
	// PromoteAssignedOrders moves assigned, still verified not_processed orders to cooking.
	PromoteAssignedOrders(ctx context.Context) (int, error)
}
