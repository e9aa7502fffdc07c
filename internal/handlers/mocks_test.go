package handlers

import (
	"context"

	"foodcart-service/internal/models"
	"foodcart-service/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type MockOrderService struct {
	service.OrderService
	CreateOrderFunc            func(ctx context.Context, in service.CreateOrderInput) (*models.Order, error)
	GetOrderFunc               func(ctx context.Context, id uuid.UUID) (*models.Order, error)
	ListOrdersFunc             func(ctx context.Context, f service.ListFilter) ([]models.Order, int64, error)
	UpdateOrderAddressFunc     func(ctx context.Context, id uuid.UUID, address string) (*models.Order, error)
	ListVerifiedCandidatesFunc func(ctx context.Context, id uuid.UUID) ([]service.VerifiedCandidate, error)
	AssignFunc                 func(ctx context.Context, orderID, restaurantID uuid.UUID) (*models.Order, error)
	AdvanceStatusFunc          func(ctx context.Context, id uuid.UUID, target models.OrderStatus) (*models.Order, error)
}

func (m *MockOrderService) CreateOrder(ctx context.Context, in service.CreateOrderInput) (*models.Order, error) {
	return m.CreateOrderFunc(ctx, in)
}

func (m *MockOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	return m.GetOrderFunc(ctx, id)
}

func (m *MockOrderService) ListOrders(ctx context.Context, f service.ListFilter) ([]models.Order, int64, error) {
	return m.ListOrdersFunc(ctx, f)
}

func (m *MockOrderService) UpdateOrderAddress(ctx context.Context, id uuid.UUID, address string) (*models.Order, error) {
	return m.UpdateOrderAddressFunc(ctx, id, address)
}

func (m *MockOrderService) ListVerifiedCandidates(ctx context.Context, id uuid.UUID) ([]service.VerifiedCandidate, error) {
	return m.ListVerifiedCandidatesFunc(ctx, id)
}

func (m *MockOrderService) AssignPreparingRestaurant(ctx context.Context, orderID, restaurantID uuid.UUID) (*models.Order, error) {
	return m.AssignFunc(ctx, orderID, restaurantID)
}

func (m *MockOrderService) AdvanceStatus(ctx context.Context, id uuid.UUID, target models.OrderStatus) (*models.Order, error) {
	return m.AdvanceStatusFunc(ctx, id, target)
}

type MockCatalogService struct {
	service.CatalogService
	ListAvailableProductsFunc       func(ctx context.Context) ([]models.Product, error)
	UpdateProductPriceFunc          func(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*models.Product, error)
	RestaurantsCoveringProductsFunc func(ctx context.Context, ids []uuid.UUID) ([]models.Restaurant, error)
}

func (m *MockCatalogService) ListAvailableProducts(ctx context.Context) ([]models.Product, error) {
	return m.ListAvailableProductsFunc(ctx)
}

func (m *MockCatalogService) UpdateProductPrice(ctx context.Context, id uuid.UUID, price decimal.Decimal) (*models.Product, error) {
	return m.UpdateProductPriceFunc(ctx, id, price)
}

func (m *MockCatalogService) RestaurantsCoveringProducts(ctx context.Context, ids []uuid.UUID) ([]models.Restaurant, error) {
	return m.RestaurantsCoveringProductsFunc(ctx, ids)
}

type MockRestaurantService struct {
	service.RestaurantService
	ListRestaurantsFunc     func(ctx context.Context) ([]models.Restaurant, error)
	SetMenuAvailabilityFunc func(ctx context.Context, restaurantID, productID uuid.UUID, available bool) error
	ListMenuFunc            func(ctx context.Context, restaurantID uuid.UUID) ([]models.RestaurantMenuItem, error)
}

func (m *MockRestaurantService) ListMenu(ctx context.Context, restaurantID uuid.UUID) ([]models.RestaurantMenuItem, error) {
	return m.ListMenuFunc(ctx, restaurantID)
}

func (m *MockRestaurantService) ListRestaurants(ctx context.Context) ([]models.Restaurant, error) {
	return m.ListRestaurantsFunc(ctx)
}

func (m *MockRestaurantService) SetMenuAvailability(ctx context.Context, restaurantID, productID uuid.UUID, available bool) error {
	return m.SetMenuAvailabilityFunc(ctx, restaurantID, productID, available)
}
