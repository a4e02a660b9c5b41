package opencrm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrOpenCRM is the root of every error kind returned by this library.
var ErrOpenCRM = errors.New("opencrm")

// Error kinds. Each wraps ErrOpenCRM, so errors.Is(err, ErrOpenCRM) matches
// any failure produced by the client while errors.Is(err, ErrNotFound)
// narrows to a single kind.
var (
	ErrConfiguration  = fmt.Errorf("%w: configuration error", ErrOpenCRM)
	ErrConnection     = fmt.Errorf("%w: connection error", ErrOpenCRM)
	ErrAuthentication = fmt.Errorf("%w: authentication error", ErrOpenCRM)
	ErrNotFound       = fmt.Errorf("%w: not found", ErrOpenCRM)
	ErrRateLimit      = fmt.Errorf("%w: rate limit exceeded", ErrOpenCRM)
	ErrAPI            = fmt.Errorf("%w: api error", ErrOpenCRM)
	ErrValidation     = fmt.Errorf("%w: validation error", ErrOpenCRM)
)

// Static errors for err113 compliance.
var (
	ErrNoMoreItems      = errors.New("no more items")
	ErrConfigRequired   = &ConfigurationError{Message: "config is required"}
	ErrInvalidRecordID  = errors.New("response did not contain a record id")
	ErrUnexpectedResult = errors.New("unexpected response shape")
)

// ConfigurationError reports an invalid client configuration. It is always
// returned before any network activity.
type ConfigurationError struct {
	Message string
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Message
}

// Unwrap lets errors.Is match ErrConfiguration.
func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// ValidationError reports request parameters rejected before sending.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Message
	}

	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is match ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// ConnectionError reports a transport failure: DNS, refused connection,
// TLS, timeout or cancellation. Err holds the underlying cause.
type ConnectionError struct {
	Op  string
	URL string
	Err error
}

// Error implements the error interface.
func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection error: %s %s: %v", e.Op, e.URL, e.Err)
}

// Unwrap exposes both the kind and the cause, so errors.Is works for
// ErrConnection as well as context.DeadlineExceeded and friends.
func (e *ConnectionError) Unwrap() []error {
	return []error{ErrConnection, e.Err}
}

// AuthenticationError reports a failed session login. Err, when set, is the
// underlying transport or API error.
type AuthenticationError struct {
	Message      string
	StatusCode   int
	ResponseBody string
	Err          error
}

// Error implements the error interface.
func (e *AuthenticationError) Error() string {
	parts := []string{e.Message}

	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("Status: %d", e.StatusCode))
	}

	if e.ResponseBody != "" {
		parts = append(parts, "Response: "+e.ResponseBody)
	}

	if e.Err != nil && e.StatusCode == 0 {
		parts = append(parts, e.Err.Error())
	}

	return strings.Join(parts, " | ")
}

// Unwrap matches ErrAuthentication and the cause.
func (e *AuthenticationError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrAuthentication}
	}

	return []error{ErrAuthentication, e.Err}
}

// APIError carries a non-2xx HTTP response. Kind is one of ErrNotFound,
// ErrRateLimit, ErrAuthentication or ErrAPI and decides what errors.Is
// matches; a 404 matches ErrNotFound but not ErrAPI.
type APIError struct {
	Kind         error
	Endpoint     string
	StatusCode   int
	ResponseBody string
	Message      string
}

// NewAPIError classifies a failed response by status code.
func NewAPIError(endpoint string, statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		Endpoint:     endpoint,
		StatusCode:   statusCode,
		ResponseBody: string(body),
	}

	switch statusCode {
	case http.StatusNotFound:
		apiErr.Kind = ErrNotFound
		apiErr.Message = "Resource not found"
	case http.StatusTooManyRequests:
		apiErr.Kind = ErrRateLimit
		apiErr.Message = "Rate limit exceeded"
	case http.StatusUnauthorized:
		apiErr.Kind = ErrAuthentication
		apiErr.Message = "Authentication failed"
	default:
		apiErr.Kind = ErrAPI
		apiErr.Message = "API request failed"
	}

	return apiErr
}

// Error implements the error interface.
func (e *APIError) Error() string {
	parts := []string{e.Message}
	if e.Endpoint != "" {
		parts[0] = fmt.Sprintf("%s (%s)", e.Message, e.Endpoint)
	}

	if e.StatusCode != 0 {
		parts = append(parts, fmt.Sprintf("Status: %d", e.StatusCode))
	}

	if e.ResponseBody != "" {
		parts = append(parts, "Response: "+e.ResponseBody)
	}

	return strings.Join(parts, " | ")
}

// Unwrap returns the error kind.
func (e *APIError) Unwrap() error {
	if e.Kind == nil {
		return ErrAPI
	}

	return e.Kind
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited checks if the error is a rate limit error.
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimit)
}

// IsAuthentication checks if the error is an authentication error.
func IsAuthentication(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsConnection checks if the error is a transport failure.
func IsConnection(err error) bool {
	return errors.Is(err, ErrConnection)
}

// IsConfiguration checks if the error is a configuration error.
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	apiErr := &APIError{}
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	authErr := &AuthenticationError{}
	if errors.As(err, &authErr) {
		return authErr.StatusCode
	}

	return 0
}
