package dto

import (
	"foodcart-service/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

type CategoryResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type CreateProductRequest struct {
	Name          string          `json:"name" binding:"required"`
	CategoryID    *uuid.UUID      `json:"category_id"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	SpecialStatus bool            `json:"special_status"`
	Description   string          `json:"description"`
}

type UpdatePriceRequest struct {
	Price decimal.Decimal `json:"price"`
}

type ProductResponse struct {
	ID            uuid.UUID         `json:"id"`
	Name          string            `json:"name"`
	Price         decimal.Decimal   `json:"price"`
	SpecialStatus bool              `json:"special_status"`
	Description   string            `json:"description"`
	Image         string            `json:"image"`
	Category      *CategoryResponse `json:"category"`
}

func NewProductResponse(p *models.Product) ProductResponse {
	resp := ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		SpecialStatus: p.SpecialStatus,
		Description:   p.Description,
		Image:         p.Image,
	}
	if p.Category != nil {
		resp.Category = &CategoryResponse{ID: p.Category.ID, Name: p.Category.Name}
	}
	return resp
}

type RestaurantRequest struct {
	Name         string `json:"name" binding:"required"`
	Address      string `json:"address"`
	ContactPhone string `json:"contact_phone"`
}

type RestaurantPatchRequest struct {
	Name         *string `json:"name"`
	Address      *string `json:"address"`
	ContactPhone *string `json:"contact_phone"`
}

type MenuAvailabilityRequest struct {
	Availability *bool `json:"availability" binding:"required"`
}

type RestaurantResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	ContactPhone string    `json:"contact_phone"`
	Lon          *float64  `json:"lon"`
	Lat          *float64  `json:"lat"`
}

func NewRestaurantResponse(r *models.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:           r.ID,
		Name:         r.Name,
		Address:      r.Address,
		ContactPhone: r.ContactPhone,
		Lon:          r.Lon,
		Lat:          r.Lat,
	}
}

type MenuItemResponse struct {
	Product      ProductResponse `json:"product"`
	Availability bool            `json:"availability"`
}

func NewMenuItemResponse(it *models.RestaurantMenuItem) MenuItemResponse {
	resp := MenuItemResponse{Availability: it.Availability}
	if it.Product != nil {
		resp.Product = NewProductResponse(it.Product)
	} else {
		resp.Product.ID = it.ProductID
	}
	return resp
}
