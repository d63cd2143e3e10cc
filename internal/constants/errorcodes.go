// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines machine-readable error codes returned in API
// error responses. Clients should branch on these codes rather than on the
// human-readable messages, which may change.
package constants

const (
	// CodeBadRequest indicates a malformed request.
	CodeBadRequest = "bad_request"

	// CodeValidationError indicates a request payload failed validation.
	CodeValidationError = "validation_error"

	// CodeNotFound indicates a missing resource.
	CodeNotFound = "not_found"

	// CodeDuplicateResource indicates a uniqueness constraint conflict.
	CodeDuplicateResource = "duplicate_resource"

	// CodeIntegrityViolation indicates a check or foreign key constraint was
	// rejected at the storage boundary.
	CodeIntegrityViolation = "integrity_violation"

	// CodeUnauthorized indicates missing or invalid credentials.
	CodeUnauthorized = "unauthorized"

	// CodeForbidden indicates insufficient permissions.
	CodeForbidden = "forbidden"

	// CodeTokenExpired indicates an expired service token.
	CodeTokenExpired = "token_expired"

	// CodeTokenInvalid indicates a malformed or unverifiable service token.
	CodeTokenInvalid = "token_invalid"

	// CodeConflict indicates a generic conflict.
	CodeConflict = "conflict"

	// CodeMethodNotAllowed indicates an unsupported HTTP method.
	CodeMethodNotAllowed = "method_not_allowed"

	// CodeInternalError indicates an unexpected server failure.
	CodeInternalError = "internal_error"

	// CodeServiceUnavailable indicates a failed health check.
	CodeServiceUnavailable = "service_unavailable"
)

// Standard response messages reused across handlers.
const (
	// MsgAuthRequired is returned when a service token is missing.
	MsgAuthRequired = "A service token is required for this endpoint"

	// MsgAccessDenied is returned when a token lacks the required claim.
	MsgAccessDenied = "You don't have permission to access this resource"

	// MsgResourceNotFound is returned when a resource does not exist.
	MsgResourceNotFound = "The requested resource could not be found"

	// MsgMethodNotAllowed is returned for unsupported HTTP methods.
	MsgMethodNotAllowed = "Method not allowed for this endpoint"

	// MsgInternalServerError is returned on unexpected failures.
	MsgInternalServerError = "An internal server error occurred"
)
