// internal/utils/validation.go
package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/etbank-analytics/bankreviews-backend/internal/constants"
)

// MaxRequestBodySize bounds request bodies; batch ingest payloads carry
// thousands of review texts, so this is larger than a typical API limit.
const MaxRequestBodySize = 16 << 20 // 16 MiB

var (
	// validate is a singleton validator instance
	validate *validator.Validate
)

// InitValidator initializes the validator with custom validations
func InitValidator() {
	validate = validator.New()

	// Register function to get json tag names instead of struct field names
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomValidations(validate)

	log.Info().Msg("Validator initialized")
}

// GetValidator returns the singleton validator instance
func GetValidator() *validator.Validate {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// registerCustomValidations adds domain validations to the validator.
func registerCustomValidations(v *validator.Validate) {
	// sentiment_label accepts only the three-valued enum, or an unset pointer.
	if err := v.RegisterValidation("sentiment_label", func(fl validator.FieldLevel) bool {
		return IsValidSentimentLabel(fl.Field().String())
	}); err != nil {
		log.Error().Err(err).Msg("Failed to register sentiment_label validation")
	}
}

// IsValidSentimentLabel reports whether label is one of the three permitted
// sentiment values.
func IsValidSentimentLabel(label string) bool {
	switch label {
	case constants.SentimentPositive, constants.SentimentNegative, constants.SentimentNeutral:
		return true
	}
	return false
}

// IsValidRating reports whether a star rating is inside the permitted range.
func IsValidRating(rating int) bool {
	return rating >= constants.MinRating && rating <= constants.MaxRating
}

// DecodeJSON decodes a JSON request body into the provided struct
// with improved error handling and size limits
func DecodeJSON(r *http.Request, v interface{}) error {
	// Limit the size of the request body
	r.Body = http.MaxBytesReader(nil, r.Body, MaxRequestBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var invalidUnmarshalError *json.InvalidUnmarshalError

		switch {
		case err.Error() == "http: request body too large":
			return NewBadRequestError("Request body is too large")

		case errors.Is(err, io.EOF):
			return NewBadRequestError("Request body must not be empty")

		case errors.Is(err, io.ErrUnexpectedEOF):
			return NewBadRequestError("Request body contains malformed JSON")

		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return NewValidationError("unknown_field", fmt.Sprintf("Request body contains unknown field %s", fieldName))

		case errors.As(err, &syntaxError):
			return NewBadRequestError(fmt.Sprintf("Request body contains malformed JSON (at position %d)", syntaxError.Offset))

		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return NewValidationError(unmarshalTypeError.Field, fmt.Sprintf("Must be a %s", unmarshalTypeError.Type.String()))
			}
			return NewBadRequestError(fmt.Sprintf("Request body contains incorrect JSON type (at position %d)", unmarshalTypeError.Offset))

		case errors.As(err, &invalidUnmarshalError):
			return NewInternalServerError(err)

		default:
			return NewBadRequestError(fmt.Sprintf("Error decoding JSON: %s", err.Error()))
		}
	}

	// Check for additional JSON data that would be ignored
	if dec.More() {
		return NewBadRequestError("Request body must only contain a single JSON object")
	}

	return nil
}

// DecodeAndValidate decodes a JSON request body and validates the result.
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return ValidateStruct(v)
}

// ValidateStruct validates a struct using the validator
func ValidateStruct(v interface{}) error {
	if validate == nil {
		InitValidator()
	}

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		// If only one field has an error, return a specific field error
		if len(validationErrors) == 1 {
			fieldErr := validationErrors[0]
			return NewValidationError(fieldErr.Field(), validationMessage(fieldErr))
		}

		// Otherwise collect every failing field
		details := make(map[string]string, len(validationErrors))
		for _, fieldErr := range validationErrors {
			details[fieldErr.Field()] = validationMessage(fieldErr)
		}

		first := validationErrors[0]
		appErr := NewValidationError(first.Field(), validationMessage(first))
		appErr.DevInfo = fmt.Sprintf("%d fields failed validation", len(validationErrors))
		return appErr
	}

	return NewInternalServerError(err)
}

// validationMessage renders a human-readable message for one field error.
func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return fmt.Sprintf("Must be at least %s", fieldErr.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s", fieldErr.Param())
	case "gte":
		return fmt.Sprintf("Must be %s or greater", fieldErr.Param())
	case "lte":
		return fmt.Sprintf("Must be %s or less", fieldErr.Param())
	case "sentiment_label":
		return fmt.Sprintf("Must be one of %s, %s or %s",
			constants.SentimentPositive, constants.SentimentNegative, constants.SentimentNeutral)
	default:
		return fmt.Sprintf("Failed validation rule '%s'", fieldErr.Tag())
	}
}
