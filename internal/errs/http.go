package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "email", "error": "is required" }
type FieldError struct {
	// Field is the JSON name of the offending field.
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST"), logged only.
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: the message is safe to show to clients as-is.
//   - Errors: list of per-field errors (validation).
type HTTPError struct {
	Code     string
	Message  string
	Status   int
	Override bool
	Errors   []FieldError
}

// Envelope is the JSON body written for every error response.
type Envelope struct {
	Error any `json:"error"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
// It does not compare Code or Status.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// Envelope renders the error body: the field list when there is one,
// otherwise the message.
func (e *HTTPError) Envelope() Envelope {
	if len(e.Errors) > 0 {
		return Envelope{Error: e.Errors}
	}
	return Envelope{Error: e.Message}
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
