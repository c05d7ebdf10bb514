package errors

import (
	"errors"
	"fmt"
	"net/http"
)

const (
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeBadRequest        = "BAD_REQUEST"
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeUnauthorized      = "UNAUTHORIZED"
	ErrCodeForbidden         = "FORBIDDEN"
	ErrCodeInternal          = "INTERNAL_ERROR"
	ErrCodeDatabaseError     = "DATABASE_ERROR"
	ErrCodeDuplicateEntry    = "DUPLICATE_ENTRY"
	ErrCodeThirdPartyError   = "THIRD_PARTY_ERROR"
	ErrCodeTooManyRequests   = "TOO_MANY_REQUESTS"
	ErrCodeInsufficientStock = "INSUFFICIENT_STOCK"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeConflict          = "CONFLICT"
)

var statusByCode = map[string]int{
	ErrCodeValidation:        http.StatusBadRequest,
	ErrCodeBadRequest:        http.StatusBadRequest,
	ErrCodeEmptyCart:         http.StatusBadRequest,
	ErrCodeUnauthorized:      http.StatusUnauthorized,
	ErrCodeForbidden:         http.StatusForbidden,
	ErrCodeNotFound:          http.StatusNotFound,
	ErrCodeDuplicateEntry:    http.StatusConflict,
	ErrCodeConflict:          http.StatusConflict,
	ErrCodeInsufficientStock: http.StatusConflict,
	ErrCodeTooManyRequests:   http.StatusTooManyRequests,
	ErrCodeInternal:          http.StatusInternalServerError,
	ErrCodeDatabaseError:     http.StatusInternalServerError,
	ErrCodeThirdPartyError:   http.StatusInternalServerError,
}

// AppError is the error every service returns; handlers render it with response.Error.
type AppError struct {
	Code       string
	Message    string
	Detail     string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on the code, so errors.Is(err, EmptyCartError()) holds for any empty-cart error.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New builds an AppError whose status follows from code; unknown codes map to 500.
func New(code, message string) *AppError {
	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusInternalServerError
	}

	return &AppError{Code: code, Message: message, StatusCode: status}
}

func ValidationError(message string) *AppError { return New(ErrCodeValidation, message) }

// FieldError reports a single invalid request field.
func FieldError(field, reason string) *AppError {
	return New(ErrCodeValidation, fmt.Sprintf("Invalid field '%s': %s", field, reason))
}

func BadRequestError(message string) *AppError      { return New(ErrCodeBadRequest, message) }
func NotFoundError(message string) *AppError        { return New(ErrCodeNotFound, message) }
func UnauthorizedError(message string) *AppError    { return New(ErrCodeUnauthorized, message) }
func ForbiddenError(message string) *AppError       { return New(ErrCodeForbidden, message) }
func InternalError(message string) *AppError        { return New(ErrCodeInternal, message) }
func DatabaseError(message string) *AppError        { return New(ErrCodeDatabaseError, message) }
func DuplicateEntryError(message string) *AppError  { return New(ErrCodeDuplicateEntry, message) }
func ConflictError(message string) *AppError        { return New(ErrCodeConflict, message) }
func ThirdPartyError(message string) *AppError      { return New(ErrCodeThirdPartyError, message) }
func TooManyRequestsError(message string) *AppError { return New(ErrCodeTooManyRequests, message) }

func EmptyCartError() *AppError {
	return New(ErrCodeEmptyCart, "The cart is empty")
}

// InsufficientStockError names the product whose stock cannot cover the requested quantity.
func InsufficientStockError(productID int64) *AppError {
	return New(ErrCodeInsufficientStock, "Not enough products in stock").
		WithDetail(fmt.Sprintf("product_id=%d", productID))
}

func IsAppError(err error) (*AppError, bool) {
	var appError *AppError

	if errors.As(err, &appError) {
		return appError, true
	}

	return nil, false
}

// CodeOf returns the code of the first AppError in err's chain, or "".
func CodeOf(err error) string {
	if appErr, ok := IsAppError(err); ok {
		return appErr.Code
	}

	return ""
}
