package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodcart-service/internal/models"
	"foodcart-service/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const promoteBatchSize = 100

type orderService struct {
	store   Store
	matcher *CandidateMatcher
	events  EventBus
	log     *zap.Logger
	now     func() time.Time
}

func NewOrderService(store Store, matcher *CandidateMatcher, events EventBus, log *zap.Logger) OrderService {
	return &orderService{
		store:   store,
		matcher: matcher,
		events:  events,
		log:     log,
		now:     time.Now,
	}
}

func (s *orderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	in, err := validateCreateOrder(in)
	if err != nil {
		return nil, err
	}

	var (
		order      *models.Order
		candidates int
		now        = s.now().UTC()
	)

	err = s.store.WithTx(ctx, func(tx *repository.Repository) error {
		ids := make([]uuid.UUID, 0, len(in.Items))
		for _, it := range in.Items {
			ids = append(ids, it.ProductID)
		}
		products, err := tx.Products.GetByIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("load products: %w", err)
		}
		prices := make(map[uuid.UUID]models.Product, len(products))
		for _, p := range products {
			prices[p.ID] = p
		}

		items := make([]models.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			p, ok := prices[it.ProductID]
			if !ok {
				return fmt.Errorf("%w: %s", ErrProductNotFound, it.ProductID)
			}
			items = append(items, models.OrderItem{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: p.Price,
				CreatedAt: now,
			})
		}

		order = &models.Order{
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			PhoneNumber:  in.PhoneNumber,
			Address:      in.Address,
			Status:       models.OrderStatusNotProcessed,
			Payment:      in.Payment,
			Comment:      strings.TrimSpace(in.Comment),
			RegisteredAt: now,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.OrderItems.BulkCreate(ctx, items); err != nil {
			return err
		}
		order.Items = items

		rows, err := s.matcher.Recompute(ctx, tx, order)
		if err != nil {
			return err
		}
		candidates = len(rows)

		ordWith, err := tx.Orders.GetByID(ctx, order.ID)
		if err != nil {
			return err
		}
		order = ordWith
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		evItems := make([]OrderItemEvent, 0, len(order.Items))
		for _, it := range order.Items {
			evItems = append(evItems, OrderItemEvent{
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
				UnitPrice: it.UnitPrice,
			})
		}
		if err := s.events.PublishOrderCreated(ctx, OrderCreatedEvent{
			OrderID:      order.ID,
			Address:      order.Address,
			Items:        evItems,
			TotalPrice:   order.TotalPrice(),
			Candidates:   candidates,
			RegisteredAt: order.RegisteredAt,
		}); err != nil {
			s.log.Warn("publish order.created failed", zap.String("order_id", order.ID.String()), zap.Error(err))
		}
	}

	return order, nil
}

func (s *orderService) GetOrder(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	ord, err := s.store.Repos().Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) ListOrders(ctx context.Context, f ListFilter) ([]models.Order, int64, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, 0, fmt.Errorf("%w: %q", ErrInvalidStatus, *f.Status)
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	ordersPtr, total, err := s.store.Repos().Orders.List(ctx, repository.OrderListFilter{
		Status: f.Status,
		Limit:  f.Limit,
		Offset: f.Offset,
	})
	if err != nil {
		return nil, 0, err
	}

	orders := make([]models.Order, len(ordersPtr))
	for i, o := range ordersPtr {
		orders[i] = *o
	}
	return orders, total, nil
}

// lockOrder loads the order with a row lock inside tx.
func lockOrder(ctx context.Context, tx *repository.Repository, id uuid.UUID) (*models.Order, error) {
	ord, err := tx.Orders.GetByIDForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}
	return ord, nil
}

func (s *orderService) UpdateOrderAddress(ctx context.Context, id uuid.UUID, address string) (*models.Order, error) {
	address, err := required("address", address)
	if err != nil {
		return nil, err
	}

	var order *models.Order
	err = s.store.WithTx(ctx, func(tx *repository.Repository) error {
		ord, err := lockOrder(ctx, tx, id)
		if err != nil {
			return err
		}

		ord.Address = address
		if _, err := s.matcher.Recompute(ctx, tx, ord); err != nil {
			return err
		}
		if err := tx.Orders.UpdateAddress(ctx, id, address); err != nil {
			return err
		}

		order, err = tx.Orders.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) RecomputeCandidates(ctx context.Context, id uuid.UUID) ([]models.CandidateDistance, error) {
	var rows []models.CandidateDistance
	err := s.store.WithTx(ctx, func(tx *repository.Repository) error {
		ord, err := lockOrder(ctx, tx, id)
		if err != nil {
			return err
		}
		rows, err = s.matcher.Recompute(ctx, tx, ord)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *orderService) ListVerifiedCandidates(ctx context.Context, id uuid.UUID) ([]VerifiedCandidate, error) {
	repos := s.store.Repos()

	ord, err := repos.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ord == nil {
		return nil, ErrOrderNotFound
	}

	rows, err := repos.Candidates.ListByOrderID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list candidates: %w", err)
	}

	covering, err := repos.Restaurants.ListCoveringProducts(ctx, ord.ProductIDs())
	if err != nil {
		return nil, fmt.Errorf("covering restaurants: %w", err)
	}
	verified := make(map[uuid.UUID]struct{}, len(covering))
	for _, r := range covering {
		verified[r.ID] = struct{}{}
	}

	sortCandidates(rows)
	out := make([]VerifiedCandidate, 0, len(rows))
	for _, row := range rows {
		if _, ok := verified[row.RestaurantID]; !ok || row.Restaurant == nil {
			continue
		}
		out = append(out, VerifiedCandidate{
			Restaurant:     *row.Restaurant,
			DistanceMeters: row.DistanceMeters,
			WithinRadius:   row.WithinRadius(),
		})
	}
	return out, nil
}

func (s *orderService) AssignPreparingRestaurant(ctx context.Context, orderID, restaurantID uuid.UUID) (*models.Order, error) {
	var (
		order *models.Order
		from  models.OrderStatus
		now   = s.now().UTC()
	)

	err := s.store.WithTx(ctx, func(tx *repository.Repository) error {
		ord, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if ord.Status == models.OrderStatusDelivered {
			return fmt.Errorf("%w: order already delivered", ErrInvalidTransition)
		}

		rest, err := tx.Restaurants.GetByID(ctx, restaurantID)
		if err != nil {
			return err
		}
		if rest == nil {
			return ErrRestaurantNotFound
		}

		ok, err := isVerified(ctx, tx, ord, restaurantID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotVerified
		}

		if err := tx.Orders.SetPreparingRestaurant(ctx, orderID, restaurantID); err != nil {
			return err
		}

		from = ord.Status
		if ord.Status == models.OrderStatusNotProcessed {
			if err := tx.Orders.UpdateStatus(ctx, orderID, repository.StatusUpdate{
				Status:      models.OrderStatusCooking,
				ProcessedAt: &now,
			}); err != nil {
				return err
			}
		}

		order, err = tx.Orders.GetByID(ctx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		if err := s.events.PublishRestaurantAssigned(ctx, RestaurantAssignedEvent{
			OrderID:      orderID,
			RestaurantID: restaurantID,
			AssignedAt:   now,
		}); err != nil {
			s.log.Warn("publish order.restaurant_assigned failed", zap.String("order_id", orderID.String()), zap.Error(err))
		}
	}
	if from != order.Status {
		s.publishStatusChanged(ctx, orderID, from, order.Status, now)
	}

	return order, nil
}

func (s *orderService) AdvanceStatus(ctx context.Context, id uuid.UUID, target models.OrderStatus) (*models.Order, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, target)
	}

	var (
		order *models.Order
		from  models.OrderStatus
		now   = s.now().UTC()
	)

	err := s.store.WithTx(ctx, func(tx *repository.Repository) error {
		ord, err := lockOrder(ctx, tx, id)
		if err != nil {
			return err
		}
		from = ord.Status

		next, ok := ord.Status.Next()
		if !ok || next != target {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, ord.Status, target)
		}
		if ord.PreparingRestaurantID == nil {
			return ErrRestaurantNotAssigned
		}
		verified, err := isVerified(ctx, tx, ord, *ord.PreparingRestaurantID)
		if err != nil {
			return err
		}
		if !verified {
			return ErrNotVerified
		}

		if err := tx.Orders.UpdateStatus(ctx, id, statusUpdate(target, now)); err != nil {
			return err
		}

		order, err = tx.Orders.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishStatusChanged(ctx, id, from, target, now)
	return order, nil
}

func statusUpdate(target models.OrderStatus, now time.Time) repository.StatusUpdate {
	upd := repository.StatusUpdate{Status: target}
	switch target {
	case models.OrderStatusCooking:
		upd.ProcessedAt = &now
	case models.OrderStatusDelivered:
		upd.DeliveredAt = &now
	}
	return upd
}

func (s *orderService) PromoteAssignedOrders(ctx context.Context) (int, error) {
	pending, err := s.store.Repos().Orders.ListAssignedUnprocessed(ctx, promoteBatchSize)
	if err != nil {
		return 0, err
	}

	var (
		promoted int
		errs     []error
	)
	for _, p := range pending {
		if err := ctx.Err(); err != nil {
			return promoted, err
		}
		_, err := s.AdvanceStatus(ctx, p.ID, models.OrderStatusCooking)
		switch {
		case err == nil:
			promoted++
		case errors.Is(err, ErrNotVerified), errors.Is(err, ErrInvalidTransition), errors.Is(err, ErrRestaurantNotAssigned):
			// меню ресторана больше не покрывает заказ или статус уже сменился
			s.log.Debug("order not promoted", zap.String("order_id", p.ID.String()), zap.Error(err))
		default:
			s.log.Error("promote order failed", zap.String("order_id", p.ID.String()), zap.Error(err))
			errs = append(errs, err)
		}
	}
	return promoted, errors.Join(errs...)
}

func (s *orderService) publishStatusChanged(ctx context.Context, id uuid.UUID, from, to models.OrderStatus, at time.Time) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishStatusChanged(ctx, StatusChangedEvent{
		OrderID:   id,
		From:      string(from),
		To:        string(to),
		ChangedAt: at,
	}); err != nil {
		s.log.Warn("publish order.status_changed failed", zap.String("order_id", id.String()), zap.Error(err))
	}
}
