package handlers

import (
	"net/http"
	"strconv"

	"foodcart-service/internal/dto"
	"foodcart-service/internal/models"
	"foodcart-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		badID(c, name)
		return uuid.Nil, false
	}
	return id, true
}

// CreateOrder godoc
// @Summary Регистрация заказа
// @Description Создаёт заказ, фиксирует цены позиций и рассчитывает расстояния до ресторанов
// @Tags orders
// @Accept json
// @Produce json
// @Param order body dto.CreateOrderRequest true "Данные заказа"
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} dto.ValidationErrorResponse "Неверные данные или адрес не найден"
// @Failure 404 {object} dto.NotFoundErrorResponse "Товар не найден"
// @Failure 500 {object} dto.InternalErrorResponse "Внутренняя ошибка"
// @Router /api/order [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "create order", err)
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), req.ToInput())
	if err != nil {
		respondError(c, h.log, "create order", err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewOrderResponse(order))
}

// GetOrder godoc
// @Summary Заказ по id
// @Tags orders
// @Produce json
// @Param id path string true "ID заказа"
// @Success 200 {object} dto.OrderResponse
// @Failure 404 {object} dto.NotFoundErrorResponse
// @Router /api/orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "get order", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// ListOrders godoc
// @Summary Список заказов
// @Description Необработанные заказы первыми
// @Tags orders
// @Produce json
// @Param status query string false "Фильтр по статусу"
// @Param limit query int false "Лимит"
// @Param offset query int false "Смещение"
// @Success 200 {object} dto.OrderListResponse
// @Router /api/orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var f service.ListFilter
	if s := c.Query("status"); s != "" {
		st := models.OrderStatus(s)
		f.Status = &st
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, total, err := h.orders.ListOrders(c.Request.Context(), f)
	if err != nil {
		respondError(c, h.log, "list orders", err)
		return
	}
	resp := dto.OrderListResponse{Orders: make([]dto.OrderResponse, 0, len(orders)), Total: total}
	for i := range orders {
		resp.Orders = append(resp.Orders, dto.NewOrderResponse(&orders[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateAddress godoc
// @Summary Смена адреса доставки
// @Description Пересчитывает кандидатов; при ненайденном адресе заказ не меняется
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "ID заказа"
// @Param body body dto.UpdateAddressRequest true "Новый адрес"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.AddressErrorResponse
// @Router /api/orders/{id}/address [patch]
func (h *OrderHandler) UpdateAddress(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "update address", err)
		return
	}
	order, err := h.orders.UpdateOrderAddress(c.Request.Context(), id, req.Address)
	if err != nil {
		respondError(c, h.log, "update address", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// RecomputeCandidates godoc
// @Summary Пересчёт расстояний до ресторанов
// @Tags orders
// @Produce json
// @Param id path string true "ID заказа"
// @Success 200 {array} dto.CandidateResponse
// @Router /api/orders/{id}/candidates/recompute [post]
func (h *OrderHandler) RecomputeCandidates(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	rows, err := h.orders.RecomputeCandidates(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "recompute candidates", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewCandidates(rows))
}

// ListCandidates godoc
// @Summary Рестораны, способные приготовить заказ
// @Description Ближайшие первыми, без расстояния в конце
// @Tags orders
// @Produce json
// @Param id path string true "ID заказа"
// @Success 200 {array} dto.CandidateResponse
// @Router /api/orders/{id}/candidates [get]
func (h *OrderHandler) ListCandidates(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	list, err := h.orders.ListVerifiedCandidates(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, "list candidates", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewVerifiedCandidates(list))
}

// AssignRestaurant godoc
// @Summary Назначение готовящего ресторана
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "ID заказа"
// @Param body body dto.AssignRestaurantRequest true "Ресторан"
// @Success 200 {object} dto.OrderResponse
// @Failure 409 {object} dto.ConflictErrorResponse "Ресторан не может приготовить заказ"
// @Router /api/orders/{id}/restaurant [put]
func (h *OrderHandler) AssignRestaurant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AssignRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "assign restaurant", err)
		return
	}
	order, err := h.orders.AssignPreparingRestaurant(c.Request.Context(), id, req.RestaurantID)
	if err != nil {
		respondError(c, h.log, "assign restaurant", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}

// AdvanceStatus godoc
// @Summary Перевод заказа в следующий статус
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "ID заказа"
// @Param body body dto.AdvanceStatusRequest true "Целевой статус"
// @Success 200 {object} dto.OrderResponse
// @Failure 409 {object} dto.ConflictErrorResponse
// @Router /api/orders/{id}/status [post]
func (h *OrderHandler) AdvanceStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AdvanceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, h.log, "advance status", err)
		return
	}
	order, err := h.orders.AdvanceStatus(c.Request.Context(), id, models.OrderStatus(req.Status))
	if err != nil {
		respondError(c, h.log, "advance status", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponse(order))
}
