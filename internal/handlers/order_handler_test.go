package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodcart-service/internal/dto"
	"foodcart-service/internal/models"
	"foodcart-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() { gin.SetMode(gin.TestMode) }

func newOrderEngine(m *MockOrderService) *gin.Engine {
	h := NewOrderHandler(m, zap.NewNop())
	r := gin.New()
	r.POST("/api/order", h.CreateOrder)
	r.GET("/api/orders", h.ListOrders)
	r.GET("/api/orders/:id", h.GetOrder)
	r.PATCH("/api/orders/:id/address", h.UpdateAddress)
	r.GET("/api/orders/:id/candidates", h.ListCandidates)
	r.PUT("/api/orders/:id/restaurant", h.AssignRestaurant)
	r.POST("/api/orders/:id/status", h.AdvanceStatus)
	return r
}

func do(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.BaseError {
	t.Helper()
	var e dto.BaseError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func sampleOrder() *models.Order {
	pid := uuid.New()
	return &models.Order{
		ID:        uuid.New(),
		FirstName: "Ivan",
		LastName:  "Petrov",
		Address:   "Moscow, Tverskaya 1",
		Status:    models.OrderStatusNotProcessed,
		Payment:   models.PaymentCash,
		Items: []models.OrderItem{
			{ProductID: pid, Quantity: 2, UnitPrice: decimal.RequireFromString("350.00")},
		},
	}
}

func validCreateBody(pid uuid.UUID) map[string]any {
	return map[string]any{
		"firstname":   "Ivan",
		"lastname":    "Petrov",
		"phonenumber": "+79991234567",
		"address":     "Moscow, Tverskaya 1",
		"products":    []map[string]any{{"product": pid, "quantity": 2}},
	}
}

func TestCreateOrder_Success(t *testing.T) {
	pid := uuid.New()
	var got service.CreateOrderInput
	m := &MockOrderService{CreateOrderFunc: func(_ context.Context, in service.CreateOrderInput) (*models.Order, error) {
		got = in
		return sampleOrder(), nil
	}}

	w := do(newOrderEngine(m), http.MethodPost, "/api/order", validCreateBody(pid))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	require.Len(t, got.Items, 1)
	assert.Equal(t, pid, got.Items[0].ProductID)
	assert.Equal(t, int32(2), got.Items[0].Quantity)

	var resp dto.OrderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Price.Equal(decimal.RequireFromString("700")))
}

func TestCreateOrder_ErrorMapping(t *testing.T) {
	pid := uuid.New()
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"address", fmt.Errorf("%w: Nowhere", service.ErrAddressUnresolvable), http.StatusBadRequest, "address_unresolvable"},
		{"validation", service.ErrEmptyItems, http.StatusBadRequest, "validation_error"},
		{"phone", service.ErrInvalidPhone, http.StatusBadRequest, "validation_error"},
		{"product", service.ErrProductNotFound, http.StatusNotFound, "not_found"},
		{"internal", errors.New("db down"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &MockOrderService{CreateOrderFunc: func(context.Context, service.CreateOrderInput) (*models.Order, error) {
				return nil, tc.err
			}}
			w := do(newOrderEngine(m), http.MethodPost, "/api/order", validCreateBody(pid))
			assert.Equal(t, tc.wantCode, w.Code)
			assert.Equal(t, tc.wantBody, decodeError(t, w).Code)
		})
	}
}

func TestCreateOrder_BadBody(t *testing.T) {
	called := false
	m := &MockOrderService{CreateOrderFunc: func(context.Context, service.CreateOrderInput) (*models.Order, error) {
		called = true
		return nil, nil
	}}
	w := do(newOrderEngine(m), http.MethodPost, "/api/order", map[string]any{"firstname": "Ivan"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "validation_error", decodeError(t, w).Code)
	assert.False(t, called)
}

func TestGetOrder_InvalidID(t *testing.T) {
	w := do(newOrderEngine(&MockOrderService{}), http.MethodGet, "/api/orders/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOrder_NotFound(t *testing.T) {
	m := &MockOrderService{GetOrderFunc: func(context.Context, uuid.UUID) (*models.Order, error) {
		return nil, service.ErrOrderNotFound
	}}
	w := do(newOrderEngine(m), http.MethodGet, "/api/orders/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrders_PassesFilter(t *testing.T) {
	var got service.ListFilter
	m := &MockOrderService{ListOrdersFunc: func(_ context.Context, f service.ListFilter) ([]models.Order, int64, error) {
		got = f
		return []models.Order{*sampleOrder()}, 7, nil
	}}
	w := do(newOrderEngine(m), http.MethodGet, "/api/orders?status=cooking&limit=5&offset=10", nil)
	require.Equal(t, http.StatusOK, w.Code)

	require.NotNil(t, got.Status)
	assert.Equal(t, models.OrderStatusCooking, *got.Status)
	assert.Equal(t, 5, got.Limit)
	assert.Equal(t, 10, got.Offset)

	var resp dto.OrderListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.Total)
	assert.Len(t, resp.Orders, 1)
}

func TestUpdateAddress_Unresolvable(t *testing.T) {
	m := &MockOrderService{UpdateOrderAddressFunc: func(_ context.Context, _ uuid.UUID, addr string) (*models.Order, error) {
		assert.Equal(t, "Nowhere 0", addr)
		return nil, service.ErrAddressUnresolvable
	}}
	w := do(newOrderEngine(m), http.MethodPatch, "/api/orders/"+uuid.NewString()+"/address", map[string]any{"address": "Nowhere 0"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "address_unresolvable", decodeError(t, w).Code)
}

func TestUpdateAddress_UnresolvableHidesCause(t *testing.T) {
	m := &MockOrderService{UpdateOrderAddressFunc: func(context.Context, uuid.UUID, string) (*models.Order, error) {
		return nil, fmt.Errorf("%w: geocoder status 500 from http://geocode.internal/?apikey=secret", service.ErrAddressUnresolvable)
	}}
	w := do(newOrderEngine(m), http.MethodPatch, "/api/orders/"+uuid.NewString()+"/address", map[string]any{"address": "Nowhere 0"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "geocoder status")
	assert.NotContains(t, w.Body.String(), "apikey")
	assert.Contains(t, w.Body.String(), service.ErrAddressUnresolvable.Error())
}

func TestListCandidates(t *testing.T) {
	near := 1200.5
	m := &MockOrderService{ListVerifiedCandidatesFunc: func(context.Context, uuid.UUID) ([]service.VerifiedCandidate, error) {
		return []service.VerifiedCandidate{
			{Restaurant: models.Restaurant{ID: uuid.New(), Name: "Near"}, DistanceMeters: &near, WithinRadius: true},
			{Restaurant: models.Restaurant{ID: uuid.New(), Name: "Unknown"}},
		}, nil
	}}
	w := do(newOrderEngine(m), http.MethodGet, "/api/orders/"+uuid.NewString()+"/candidates", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Nil(t, resp[1]["distance_meters"])
	assert.Equal(t, true, resp[0]["within_radius"])
	assert.Equal(t, false, resp[1]["within_radius"])
}

func TestAssignRestaurant_NotVerified(t *testing.T) {
	m := &MockOrderService{AssignFunc: func(context.Context, uuid.UUID, uuid.UUID) (*models.Order, error) {
		return nil, service.ErrNotVerified
	}}
	w := do(newOrderEngine(m), http.MethodPut, "/api/orders/"+uuid.NewString()+"/restaurant",
		map[string]any{"restaurant_id": uuid.NewString()})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "not_verified", decodeError(t, w).Code)
}

func TestAdvanceStatus_Conflict(t *testing.T) {
	m := &MockOrderService{AdvanceStatusFunc: func(_ context.Context, _ uuid.UUID, target models.OrderStatus) (*models.Order, error) {
		assert.Equal(t, models.OrderStatusDelivered, target)
		return nil, service.ErrInvalidTransition
	}}
	w := do(newOrderEngine(m), http.MethodPost, "/api/orders/"+uuid.NewString()+"/status", map[string]any{"status": "delivered"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "conflict", decodeError(t, w).Code)
}
