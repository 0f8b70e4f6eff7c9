// ABOUTME: Typed errors returned by the sizing engine
// ABOUTME: Callers classify failures with errors.As

package services

import "fmt"

// ValidationError reports an input value outside its permitted range.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// ConfigurationError reports an unrecognized workload, domain, or growth model token.
type ConfigurationError struct {
	Kind  string // "workload", "domain", or "growth_model"
	Token string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown %s: %q", e.Kind, sanitizeForLog(e.Token))
}
