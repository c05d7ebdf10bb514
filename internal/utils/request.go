package utils

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	appErrors "github.com/aaravmahajanofficial/online-shop/internal/errors"
	"github.com/aaravmahajanofficial/online-shop/internal/utils/response"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ParseAndValidate decodes the JSON body into dest and validates it, writing the error
// response itself when either step fails.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {
	return parseAndValidate(r, w, dest, validate, false)
}

// ParseOptionalAndValidate accepts an absent or empty body and leaves dest at its zero
// value. Chunked requests carry no Content-Length, so emptiness is decided by reading.
func ParseOptionalAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {
	return parseAndValidate(r, w, dest, validate, true)
}

func parseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate, optional bool) bool {
	if optional && r.Body == nil {
		r.Body = http.NoBody
	}

	if err := DecodeJSONBody(w, r, dest); err != nil && !(optional && errors.Is(err, ErrEmptyBody)) {
		slog.WarnContext(r.Context(), "Invalid request body", slog.String("endpoint", r.URL.Path), slog.Any("error", err))
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithError(err))

		return false
	}

	if err := ValidateStruct(validate, dest); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			slog.WarnContext(r.Context(), "Validation failed", slog.String("endpoint", r.URL.Path), slog.String("error", err.Error()))
			response.ValidationError(w, validationErrs)

			return false
		}

		response.Error(w, appErrors.InternalError("Failed to validate the request").WithError(err))

		return false
	}

	return true
}

// ParseID reads a UUID path parameter.
func ParseID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, appErrors.BadRequestError("Invalid " + name + " format").WithError(err)
	}

	return id, nil
}

// ParseInt64ID reads a positive integer path parameter.
func ParseInt64ID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, appErrors.BadRequestError("Invalid " + name + " format")
	}

	return id, nil
}
