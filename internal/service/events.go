package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderItemEvent struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int32           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type OrderCreatedEvent struct {
	OrderID      uuid.UUID        `json:"order_id"`
	Address      string           `json:"address"`
	Items        []OrderItemEvent `json:"items"`
	TotalPrice   decimal.Decimal  `json:"total_price"`
	Candidates   int              `json:"candidates"`
	RegisteredAt time.Time        `json:"registered_at"`
}

type RestaurantAssignedEvent struct {
	OrderID      uuid.UUID `json:"order_id"`
	RestaurantID uuid.UUID `json:"restaurant_id"`
	AssignedAt   time.Time `json:"assigned_at"`
}

type StatusChangedEvent struct {
	OrderID   uuid.UUID `json:"order_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}
