package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// Машинные коды ошибок в поле code
const (
	CodeValidation          = "validation_error"
	CodeAddressUnresolvable = "address_unresolvable"
	CodeConflict            = "conflict"
	CodeNotVerified         = "not_verified"
	CodeNotFound            = "not_found"
	CodeInternal            = "internal_error"
)

// BaseError is the body of every non-2xx response.
// Fields is only set for validation failures.
type BaseError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Details string       `json:"details,omitempty"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
}

// Отдельные типы нужны только для swagger-аннотаций
type (
	ValidationErrorResponse BaseError
	AddressErrorResponse    BaseError
	ConflictErrorResponse   BaseError
	NotFoundErrorResponse   BaseError
	InternalErrorResponse   BaseError
)

func NewValidationError(msg string, fields []FieldError) ValidationErrorResponse {
	return ValidationErrorResponse{Code: CodeValidation, Message: msg, Fields: fields}
}

func NewAddressUnresolvableError(details string) AddressErrorResponse {
	return AddressErrorResponse{Code: CodeAddressUnresolvable, Message: "address could not be located", Details: details}
}

func NewConflictError(msg string) ConflictErrorResponse {
	return ConflictErrorResponse{Code: CodeConflict, Message: msg}
}

func NewNotVerifiedError(msg string) ConflictErrorResponse {
	return ConflictErrorResponse{Code: CodeNotVerified, Message: msg}
}

func NewNotFoundError(msg string) NotFoundErrorResponse {
	return NotFoundErrorResponse{Code: CodeNotFound, Message: msg}
}

func NewInternalError(details string) InternalErrorResponse {
	return InternalErrorResponse{Code: CodeInternal, Message: "internal server error", Details: details}
}

// FieldsFromBinding extracts per-field failures from a gin binding error.
// Malformed JSON yields an empty list.
func FieldsFromBinding(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field:   fe.Field(),
			Message: "failed on '" + fe.Tag() + "'",
			Tag:     fe.Tag(),
		})
	}
	return out
}
