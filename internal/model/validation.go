package model

// ValidationError is a field-scoped, recoverable input error. Errors are
// recomputed from the current values on every read and never stored.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
