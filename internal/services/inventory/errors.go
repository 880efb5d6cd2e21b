package inventory

import "fmt"

// FieldError describes one rejected request field
type FieldError struct {
	Field         string  `json:"field"`
	Message       string  `json:"message"`
	RejectedValue *string `json:"rejectedValue"`
}

// ValidationError represents a rejected upsert payload
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation error"
	}
	return fmt.Sprintf("validation error [%s]: %s", e.Fields[0].Field, e.Fields[0].Message)
}

// ParamError represents an unusable list parameter. Malformed marks values
// that could not be parsed at all, as opposed to out-of-range ones.
type ParamError struct {
	Param     string
	Message   string
	Value     string
	Malformed bool
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid parameter [%s]: %s", e.Param, e.Message)
}

// NotFoundError is returned when the asset does not exist
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("asset not found: id=%d", e.ID)
}

// ConflictError is returned when the serial number is already used
type ConflictError struct {
	SerialNumber string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("an asset with serialNumber=%q already exists", e.SerialNumber)
}

// ServiceError represents a failed storage operation
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("inventory service [%s]: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
