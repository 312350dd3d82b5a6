package playerok

import (
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy. Transport failures surface as *UpstreamError or
// *NetworkError; everything else is one of these sentinels, possibly wrapped.
var (
	ErrUnauthorized       = errors.New("unauthorized: access token rejected")
	ErrNotFound           = errors.New("not found")
	ErrClientNotAttached  = errors.New("entity is not attached to an active client")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrNoMoreItems        = errors.New("no more items")
	ErrCloudflareDetected = errors.New("cloudflare protection detected")
)

// Configuration errors.
var (
	ErrConfigRequired      = errors.New("config is required")
	ErrAccessTokenRequired = errors.New("access token is required (set PLAYEROK_ACCESS_TOKEN)")
	ErrBaseURLInvalid      = errors.New("base URL is invalid")
)

// Item priority errors.
var (
	ErrNoPriorityStatus = errors.New("no priority status available for this item")
	ErrItemPriceUnknown = errors.New("item price is unknown")
)

// GraphQLError is one entry of a GraphQL "errors" array.
type GraphQLError struct {
	Message    string                 `json:"message"              yaml:"message"`
	Path       []interface{}          `json:"path,omitempty"       yaml:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// Code returns extensions.code when the server sets one.
func (e GraphQLError) Code() string {
	if code, ok := e.Extensions["code"].(string); ok {
		return code
	}

	return ""
}

// UpstreamError is any non-success answer from the marketplace: a non-2xx
// status, a GraphQL errors array, or a challenge page.
type UpstreamError struct {
	Operation  string
	StatusCode int
	Errors     []GraphQLError
	Err        error
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	var sb strings.Builder

	sb.WriteString("upstream error")

	if e.Operation != "" {
		sb.WriteString(" in " + e.Operation)
	}

	if e.StatusCode != 0 {
		fmt.Fprintf(&sb, " (status %d)", e.StatusCode)
	}

	switch {
	case len(e.Errors) == 1:
		sb.WriteString(": " + e.Errors[0].Message)
	case len(e.Errors) > 1:
		messages := make([]string, 0, len(e.Errors))
		for _, gqlErr := range e.Errors {
			messages = append(messages, gqlErr.Message)
		}

		sb.WriteString(": multiple errors: " + strings.Join(messages, "; "))
	case e.Err != nil:
		sb.WriteString(": " + e.Err.Error())
	}

	return sb.String()
}

// Unwrap returns the underlying cause, if any.
func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NetworkError wraps a transport failure (DNS, TLS, reset, timeout).
type NetworkError struct {
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.Operation == "" {
		return "network error: " + e.Err.Error()
	}

	return fmt.Sprintf("network error in %s: %v", e.Operation, e.Err)
}

// Unwrap returns the transport error.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsClientNotAttached checks if the error comes from a detached entity.
func IsClientNotAttached(err error) bool {
	return errors.Is(err, ErrClientNotAttached)
}

// IsInvalidArgument checks if the error was raised by argument validation.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}

// IsUpstream checks if the error is an upstream error.
func IsUpstream(err error) bool {
	upstreamErr := &UpstreamError{}

	return errors.As(err, &upstreamErr)
}

// IsNetwork checks if the error is a network error.
func IsNetwork(err error) bool {
	networkErr := &NetworkError{}

	return errors.As(err, &networkErr)
}

// InvalidArgumentError builds an ErrInvalidArgument with a reason.
func InvalidArgumentError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
