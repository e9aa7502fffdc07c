package handlers

import (
	"net/http"

	"foodcart-service/internal/dto"
	"foodcart-service/internal/models"
	"foodcart-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog     service.CatalogService
	restaurants service.RestaurantService
	log         *zap.Logger
}

func NewCatalogHandler(catalog service.CatalogService, restaurants service.RestaurantService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, restaurants: restaurants, log: log}
}

// ListProducts godoc
// @Summary Товары, доступные хотя бы в одном ресторане
// @Tags catalog
// @Produce json
// @Success 200 {array} dto.ProductResponse
// @Router /api/products [get]
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalog.ListAvailableProducts(c.Request.Context())
	if err != nil {
		respondError(c, h.log, "list products", err)
		return
	}
	resp := make([]dto.ProductResponse, 0, len(products))
	for i := range products {
		resp = append(resp, dto.NewProductResponse(&products[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateCategory godoc
// @Summary Создание категории
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body dto.CreateCategoryRequest true "Категория"
// @Success 201 {object} dto.CategoryResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "create category", err)
		return
	}
	cat, err := h.catalog.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, h.log, "create category", err)
		return
	}
	c.JSON(http.StatusCreated, dto.CategoryResponse{ID: cat.ID, Name: cat.Name})
}

// CreateProduct godoc
// @Summary Создание товара
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body dto.CreateProductRequest true "Товар"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Failure 404 {object} dto.NotFoundErrorResponse "Категория не найдена"
// @Router /api/products [post]
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "create product", err)
		return
	}
	p, err := h.catalog.CreateProduct(c.Request.Context(), service.ProductInput{
		Name:          req.Name,
		CategoryID:    req.CategoryID,
		Price:         req.Price,
		Image:         req.Image,
		SpecialStatus: req.SpecialStatus,
		Description:   req.Description,
	})
	if err != nil {
		respondError(c, h.log, "create product", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewProductResponse(p))
}

// UpdateProductPrice godoc
// @Summary Изменение цены товара
// @Description Уже оформленные заказы сохраняют прежнюю цену
// @Tags catalog
// @Accept json
// @Produce json
// @Param id path string true "ID товара"
// @Param body body dto.UpdatePriceRequest true "Новая цена"
// @Success 200 {object} dto.ProductResponse
// @Router /api/products/{id} [patch]
func (h *CatalogHandler) UpdateProductPrice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "update price", err)
		return
	}
	p, err := h.catalog.UpdateProductPrice(c.Request.Context(), id, req.Price)
	if err != nil {
		respondError(c, h.log, "update price", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(p))
}

// ListRestaurants godoc
// @Summary Список ресторанов
// @Tags restaurants
// @Produce json
// @Param products query []string false "Только рестораны, в меню которых доступны все товары" collectionFormat(multi)
// @Success 200 {array} dto.RestaurantResponse
// @Router /api/restaurants [get]
func (h *CatalogHandler) ListRestaurants(c *gin.Context) {
	raw := c.QueryArray("products")

	var (
		list []models.Restaurant
		err  error
	)
	if len(raw) == 0 {
		list, err = h.restaurants.ListRestaurants(c.Request.Context())
	} else {
		ids := make([]uuid.UUID, 0, len(raw))
		for _, s := range raw {
			id, perr := uuid.Parse(s)
			if perr != nil {
				badID(c, "products")
				return
			}
			ids = append(ids, id)
		}
		list, err = h.catalog.RestaurantsCoveringProducts(c.Request.Context(), ids)
	}
	if err != nil {
		respondError(c, h.log, "list restaurants", err)
		return
	}

	resp := make([]dto.RestaurantResponse, 0, len(list))
	for i := range list {
		resp = append(resp, dto.NewRestaurantResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateRestaurant godoc
// @Summary Создание ресторана
// @Tags restaurants
// @Accept json
// @Produce json
// @Param body body dto.RestaurantRequest true "Ресторан"
// @Success 201 {object} dto.RestaurantResponse
// @Failure 400 {object} dto.ValidationErrorResponse
// @Router /api/restaurants [post]
func (h *CatalogHandler) CreateRestaurant(c *gin.Context) {
	var req dto.RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "create restaurant", err)
		return
	}
	r, err := h.restaurants.CreateRestaurant(c.Request.Context(), service.RestaurantInput{
		Name:         req.Name,
		Address:      req.Address,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		respondError(c, h.log, "create restaurant", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewRestaurantResponse(r))
}

// UpdateRestaurant godoc
// @Summary Изменение ресторана
// @Description Смена адреса сбрасывает сохранённые координаты
// @Tags restaurants
// @Accept json
// @Produce json
// @Param id path string true "ID ресторана"
// @Param body body dto.RestaurantPatchRequest true "Изменяемые поля"
// @Success 200 {object} dto.RestaurantResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/restaurants/{id} [patch]
func (h *CatalogHandler) UpdateRestaurant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.RestaurantPatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "update restaurant", err)
		return
	}
	r, err := h.restaurants.UpdateRestaurant(c.Request.Context(), id, service.RestaurantPatch{
		Name:         req.Name,
		Address:      req.Address,
		ContactPhone: req.ContactPhone,
	})
	if err != nil {
		respondError(c, h.log, "update restaurant", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewRestaurantResponse(r))
}

// SetMenuAvailability godoc
// @Summary Доступность товара в ресторане
// @Tags restaurants
// @Accept json
// @Param id path string true "ID ресторана"
// @Param product_id path string true "ID товара"
// @Param body body dto.MenuAvailabilityRequest true "Доступность"
// @Success 204
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/restaurants/{id}/menu/{product_id} [put]
func (h *CatalogHandler) SetMenuAvailability(c *gin.Context) {
	restaurantID, ok := pathID(c, "id")
	if !ok {
		return
	}
	productID, ok := pathID(c, "product_id")
	if !ok {
		return
	}
	var req dto.MenuAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "set availability", err)
		return
	}
	if err := h.restaurants.SetMenuAvailability(c.Request.Context(), restaurantID, productID, *req.Availability); err != nil {
		respondError(c, h.log, "set availability", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListMenu godoc
// @Summary Меню ресторана
// @Description Все позиции меню, включая недоступные
// @Tags restaurants
// @Produce json
// @Param id path string true "ID ресторана"
// @Success 200 {array} dto.MenuItemResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/restaurants/{id}/menu [get]
func (h *CatalogHandler) ListMenu(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.restaurants.ListMenu(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "list menu", err)
		return
	}
	resp := make([]dto.MenuItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, dto.NewMenuItemResponse(&items[i]))
	}
	c.JSON(http.StatusOK, resp)
}
