package dto

import (
	"time"

	"foodcart-service/internal/models"
	"foodcart-service/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderProductRequest struct {
	Product  uuid.UUID `json:"product" binding:"required"`
	Quantity int32     `json:"quantity" binding:"required"`
}

type CreateOrderRequest struct {
	FirstName   string                `json:"firstname" binding:"required"`
	LastName    string                `json:"lastname" binding:"required"`
	PhoneNumber string                `json:"phonenumber" binding:"required"`
	Address     string                `json:"address" binding:"required"`
	Payment     string                `json:"payment"`
	Comment     string                `json:"comment"`
	Products    []OrderProductRequest `json:"products" binding:"required"`
}

func (r CreateOrderRequest) ToInput() service.CreateOrderInput {
	items := make([]service.CreateOrderItem, 0, len(r.Products))
	for _, p := range r.Products {
		items = append(items, service.CreateOrderItem{ProductID: p.Product, Quantity: p.Quantity})
	}
	return service.CreateOrderInput{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		PhoneNumber: r.PhoneNumber,
		Address:     r.Address,
		Payment:     models.PaymentMethod(r.Payment),
		Comment:     r.Comment,
		Items:       items,
	}
}

type UpdateAddressRequest struct {
	Address string `json:"address" binding:"required"`
}

type AssignRestaurantRequest struct {
	RestaurantID uuid.UUID `json:"restaurant_id" binding:"required"`
}

type AdvanceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type OrderItemResponse struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int32           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type OrderResponse struct {
	ID                    uuid.UUID           `json:"id"`
	FirstName             string              `json:"firstname"`
	LastName              string              `json:"lastname"`
	PhoneNumber           string              `json:"phonenumber"`
	Address               string              `json:"address"`
	Status                string              `json:"status"`
	Payment               string              `json:"payment"`
	Comment               string              `json:"comment"`
	Price                 decimal.Decimal     `json:"price"`
	PreparingRestaurantID *uuid.UUID          `json:"preparing_restaurant_id"`
	RegisteredAt          time.Time           `json:"registered_at"`
	ProcessedAt           *time.Time          `json:"processed_at"`
	DeliveredAt           *time.Time          `json:"delivered_at"`
	Items                 []OrderItemResponse `json:"items"`
}

func NewOrderResponse(o *models.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		ir := OrderItemResponse{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			LineTotal: it.LineTotal(),
		}
		if it.Product != nil {
			ir.ProductName = it.Product.Name
		}
		items = append(items, ir)
	}
	return OrderResponse{
		ID:                    o.ID,
		FirstName:             o.FirstName,
		LastName:              o.LastName,
		PhoneNumber:           o.PhoneNumber,
		Address:               o.Address,
		Status:                string(o.Status),
		Payment:               string(o.Payment),
		Comment:               o.Comment,
		Price:                 o.TotalPrice(),
		PreparingRestaurantID: o.PreparingRestaurantID,
		RegisteredAt:          o.RegisteredAt,
		ProcessedAt:           o.ProcessedAt,
		DeliveredAt:           o.DeliveredAt,
		Items:                 items,
	}
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
}

type CandidateResponse struct {
	RestaurantID   uuid.UUID `json:"restaurant_id"`
	RestaurantName string    `json:"restaurant_name"`
	Address        string    `json:"address"`
	DistanceMeters *float64  `json:"distance_meters"`
	WithinRadius   bool      `json:"within_radius"`
}

func NewVerifiedCandidates(list []service.VerifiedCandidate) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(list))
	for _, c := range list {
		out = append(out, CandidateResponse{
			RestaurantID:   c.Restaurant.ID,
			RestaurantName: c.Restaurant.Name,
			Address:        c.Restaurant.Address,
			DistanceMeters: c.DistanceMeters,
			WithinRadius:   c.WithinRadius,
		})
	}
	return out
}

func NewCandidates(rows []models.CandidateDistance) []CandidateResponse {
	out := make([]CandidateResponse, 0, len(rows))
	for _, row := range rows {
		c := CandidateResponse{
			RestaurantID:   row.RestaurantID,
			DistanceMeters: row.DistanceMeters,
			WithinRadius:   row.WithinRadius(),
		}
		if row.Restaurant != nil {
			c.RestaurantName = row.Restaurant.Name
			c.Address = row.Restaurant.Address
		}
		out = append(out, c)
	}
	return out
}
