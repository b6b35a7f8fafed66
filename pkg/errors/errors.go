package errors

import "fmt"

// Error codes
const (
	CodeDashboard        = "DASHBOARD_ERROR"
	CodeProvider         = "PROVIDER_ERROR"
	CodePersistence      = "PERSISTENCE_ERROR"
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeValidation       = "VALIDATION_ERROR"
)

// DashboardError is the base error carried across the core. Context holds the
// offending operation's details (video id, sheet name, field) so callers can
// surface a message without inspecting provider-specific codes.
type DashboardError struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *DashboardError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DashboardError) Unwrap() error {
	return e.Cause
}

func NewDashboardError(message, code string, context map[string]any) *DashboardError {
	return &DashboardError{
		Message: message,
		Code:    code,
		Context: context,
	}
}

func (e *DashboardError) WithCause(cause error) *DashboardError {
	e.Cause = cause
	return e
}

// ProviderError signals a failed remote fetch (network, auth, quota). The
// core never retries; the error propagates to the caller as-is.
type ProviderError struct {
	*DashboardError
	Operation string
}

func NewProviderError(message, operation string, cause error) *ProviderError {
	return &ProviderError{
		DashboardError: &DashboardError{
			Message: message,
			Code:    CodeProvider,
			Context: map[string]any{
				"operation": operation,
			},
			Cause: cause,
		},
		Operation: operation,
	}
}

// PersistenceError signals a failed store read or append.
type PersistenceError struct {
	*DashboardError
	Operation string
	Sheet     string
}

func NewPersistenceError(message, operation, sheet string, cause error) *PersistenceError {
	return &PersistenceError{
		DashboardError: &DashboardError{
			Message: message,
			Code:    CodePersistence,
			Context: map[string]any{
				"operation": operation,
				"sheet":     sheet,
			},
			Cause: cause,
		},
		Operation: operation,
		Sheet:     sheet,
	}
}

// InsufficientDataError signals that trend analysis or goal suggestion had
// too few records to produce a meaningful result.
type InsufficientDataError struct {
	*DashboardError
	Required int
	Actual   int
}

func NewInsufficientDataError(message string, required, actual int) *InsufficientDataError {
	return &InsufficientDataError{
		DashboardError: &DashboardError{
			Message: message,
			Code:    CodeInsufficientData,
			Context: map[string]any{
				"required": required,
				"actual":   actual,
			},
		},
		Required: required,
		Actual:   actual,
	}
}

// ValidationError signals malformed settings, e.g. a custom period with
// missing bounds.
type ValidationError struct {
	*DashboardError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		DashboardError: &DashboardError{
			Message: message,
			Code:    CodeValidation,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}
