package errors

import (
	"errors"
	"fmt"
)

// ErrorType classifies the failures surfaced by the client
type ErrorType string

const (
	ErrorTypeAuth     ErrorType = "auth"
	ErrorTypeNotFound ErrorType = "not_found"
	ErrorTypeNetwork  ErrorType = "network"
	ErrorTypeParsing  ErrorType = "parsing"
	ErrorTypeIO       ErrorType = "io"
	ErrorTypeMaturity ErrorType = "maturity"
	ErrorTypeAccess   ErrorType = "access"
	ErrorTypeIPBan    ErrorType = "ip_ban"
	ErrorTypeServer   ErrorType = "server"
	ErrorTypeUnknown  ErrorType = "unknown"
)

// Error represents a site or transport error with type information
type Error struct {
	Type    ErrorType
	Message string
	Code    int // HTTP status code, 0 when not applicable
}

func (e *Error) Error() string {
	if e.Code == 0 {
		return fmt.Sprintf("%s error: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s error (code %d): %s", e.Type, e.Code, e.Message)
}

// New creates an Error with the given type and message
func New(t ErrorType, message string) *Error {
	return &Error{Type: t, Message: message}
}

// Newf creates an Error with a formatted message
func Newf(t ErrorType, format string, args ...interface{}) *Error {
	return &Error{Type: t, Message: fmt.Sprintf(format, args...)}
}

// WithCode creates an Error carrying an HTTP status code
func WithCode(t ErrorType, code int, message string) *Error {
	return &Error{Type: t, Message: message, Code: code}
}

// Is reports whether err is an *Error of the given type
func Is(err error, t ErrorType) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == t
	}
	return false
}

// IsAuth reports whether err indicates missing or expired authentication
func IsAuth(err error) bool { return Is(err, ErrorTypeAuth) }

// IsNotFound reports whether err indicates a missing submission or page
func IsNotFound(err error) bool { return Is(err, ErrorTypeNotFound) }

// IsNetwork reports whether err indicates a transport-level failure
func IsNetwork(err error) bool { return Is(err, ErrorTypeNetwork) }

// IsParse reports whether err indicates the site markup no longer matches
// the expected structure
func IsParse(err error) bool { return Is(err, ErrorTypeParsing) }

// FromStatusCode maps an HTTP status code onto the error taxonomy
func FromStatusCode(statusCode int) ErrorType {
	switch {
	case statusCode == 401 || statusCode == 403:
		return ErrorTypeAuth
	case statusCode == 404:
		return ErrorTypeNotFound
	case statusCode >= 500:
		return ErrorTypeServer
	default:
		return ErrorTypeUnknown
	}
}
