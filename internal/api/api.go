// Package api holds the JSON shapes shared by the HTTP server and the Go
// client.
package api

import (
	"time"

	"assetdesk/internal/services/inventory"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeValidationError  = "VALIDATION_ERROR"
	CodeInvalidParameter = "INVALID_PARAMETER"
	CodeInvalidRequest   = "INVALID_REQUEST"
	CodeNotFound         = "ASSET_NOT_FOUND"
	CodeSerialConflict   = "SERIAL_NUMBER_CONFLICT"
	CodeInternal         = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Timestamp time.Time    `json:"timestamp"`
	Status    int          `json:"status"`
	Code      string       `json:"code"`
	Message   string       `json:"message"`
	Path      string       `json:"path"`
	Errors    []FieldError `json:"errors"`
}

// PageResponse is the body of GET /assets.
type PageResponse = inventory.PageResponse

// UpsertRequest is the body of POST /assets and PUT /assets/{id}.
type UpsertRequest = inventory.UpsertRequest

// FieldError is one rejected field of an ErrorResponse.
type FieldError = inventory.FieldError
