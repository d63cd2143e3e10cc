// Package constants provides shared constant values used throughout the application.
//
// The httpcodes.go file defines HTTP status codes and header names used when
// constructing API responses, keeping handler code free of magic values.
package constants

// HTTP status codes used by the API surface.
const (
	// StatusOK indicates a successful request.
	StatusOK = 200

	// StatusCreated indicates a resource was created.
	StatusCreated = 201

	// StatusAccepted indicates a batch was accepted for processing.
	StatusAccepted = 202

	// StatusNoContent indicates success with no response body.
	StatusNoContent = 204

	// StatusBadRequest indicates a malformed or invalid request.
	StatusBadRequest = 400

	// StatusUnauthorized indicates missing or invalid credentials.
	StatusUnauthorized = 401

	// StatusForbidden indicates insufficient permissions.
	StatusForbidden = 403

	// StatusNotFound indicates a missing resource.
	StatusNotFound = 404

	// StatusMethodNotAllowed indicates an unsupported HTTP method.
	StatusMethodNotAllowed = 405

	// StatusConflict indicates a uniqueness conflict.
	StatusConflict = 409

	// StatusInternalServerError indicates an unexpected server failure.
	StatusInternalServerError = 500

	// StatusServiceUnavailable indicates the service cannot serve requests.
	StatusServiceUnavailable = 503
)

// HTTP header names used when constructing responses.
const (
	// HeaderContentType is the Content-Type header name.
	HeaderContentType = "Content-Type"

	// HeaderAuthorization is the Authorization header name.
	HeaderAuthorization = "Authorization"

	// ContentTypeJSON is the JSON content type value.
	ContentTypeJSON = "application/json"

	// BearerPrefix is the prefix of bearer token Authorization values.
	BearerPrefix = "Bearer "
)

// Security header names and values applied to every response.
const (
	// HeaderXContentTypeOptions is the X-Content-Type-Options header name.
	HeaderXContentTypeOptions = "X-Content-Type-Options"

	// HeaderXFrameOptions is the X-Frame-Options header name.
	HeaderXFrameOptions = "X-Frame-Options"

	// HeaderReferrerPolicy is the Referrer-Policy header name.
	HeaderReferrerPolicy = "Referrer-Policy"

	// ContentTypeOptionsNoSniff disables MIME type sniffing.
	ContentTypeOptionsNoSniff = "nosniff"

	// FrameOptionsDeny disallows framing of responses.
	FrameOptionsDeny = "DENY"

	// ReferrerPolicyStrictOrigin limits referrer information on navigation.
	ReferrerPolicyStrictOrigin = "strict-origin-when-cross-origin"
)
