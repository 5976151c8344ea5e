package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// ExternalServiceError is a transport failure talking to an upstream
// service. StatusCode is 0 when no HTTP response was received.
type ExternalServiceError struct {
	ErrorMessage
	Service    string
	StatusCode int
	Transient  bool
	Err        error
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// FormatError means an upstream payload did not have the expected shape.
type FormatError struct {
	ErrorMessage
	Service string
	Err     error
}

func (e *FormatError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

// NewHTTPStatusError reports a non-2xx response. 5xx, 408 and 429 are transient.
func NewHTTPStatusError(service string, statusCode int) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("failed to fetch data: %d", statusCode)},
		Service:      service,
		StatusCode:   statusCode,
		Transient:    statusCode >= 500 || statusCode == 408 || statusCode == 429,
	}
}

func NewUnreachableError(service string, err error) *ExternalServiceError {
	return &ExternalServiceError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("%s unreachable: %v", service, err)},
		Service:      service,
		Transient:    true,
		Err:          err,
	}
}

func NewFormatError(service, message string, err error) *FormatError {
	return &FormatError{
		ErrorMessage: ErrorMessage{Message: message},
		Service:      service,
		Err:          err,
	}
}
