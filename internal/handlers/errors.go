package handlers

import (
	"errors"
	"net/http"

	"foodcart-service/internal/dto"
	"foodcart-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// toHTTPError maps service errors onto the JSON error envelope.
func toHTTPError(err error) (int, any) {
	switch {
	case errors.Is(err, service.ErrAddressUnresolvable):
		// причина (ответ геокодера) остаётся только в логе
		return http.StatusBadRequest, dto.NewAddressUnresolvableError(service.ErrAddressUnresolvable.Error())
	case errors.Is(err, service.ErrNotVerified):
		return http.StatusConflict, dto.NewNotVerifiedError(err.Error())
	case errors.Is(err, service.ErrInvalidTransition), errors.Is(err, service.ErrRestaurantNotAssigned):
		return http.StatusConflict, dto.NewConflictError(err.Error())
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrRestaurantNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrCategoryNotFound):
		return http.StatusNotFound, dto.NewNotFoundError(err.Error())
	case service.IsValidation(err):
		return http.StatusBadRequest, dto.NewValidationError(err.Error(), nil)
	default:
		return http.StatusInternalServerError, dto.NewInternalError("")
	}
}

func respondError(c *gin.Context, log *zap.Logger, op string, err error) {
	code, body := toHTTPError(err)
	if code >= http.StatusInternalServerError {
		log.Error(op+" failed", zap.Error(err))
	} else {
		log.Warn(op+" rejected", zap.Int("status", code), zap.Error(err))
	}
	c.JSON(code, body)
}

func badRequest(c *gin.Context, log *zap.Logger, op string, err error) {
	log.Warn("Invalid "+op+" request", zap.Error(err))
	c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body", dto.FieldsFromBinding(err)))
}

func badID(c *gin.Context, field string) {
	c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid id", []dto.FieldError{{Field: field, Message: "must be a UUID", Tag: "uuid"}}))
}
