package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"assetdesk/internal/api"
	"assetdesk/internal/services/inventory"

	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, fields []inventory.FieldError) {
	if fields == nil {
		fields = []inventory.FieldError{}
	}
	writeJSON(w, status, api.ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Code:      code,
		Message:   message,
		Path:      r.URL.Path,
		Errors:    fields,
	})
}

// writeServiceError maps inventory errors to HTTP responses
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		verr     *inventory.ValidationError
		perr     *inventory.ParamError
		notFound *inventory.NotFoundError
		conflict *inventory.ConflictError
	)
	switch {
	case errors.As(err, &verr):
		writeError(w, r, http.StatusBadRequest, api.CodeValidationError, "Request validation failed.", verr.Fields)
	case errors.As(err, &perr):
		if perr.Malformed {
			value := perr.Value
			writeError(w, r, http.StatusBadRequest, api.CodeInvalidParameter, "Parameter validation failed.",
				[]inventory.FieldError{{Field: perr.Param, Message: perr.Message, RejectedValue: &value}})
			return
		}
		writeError(w, r, http.StatusBadRequest, api.CodeInvalidRequest, perr.Message, nil)
	case errors.As(err, &notFound):
		writeError(w, r, http.StatusNotFound, api.CodeNotFound, notFound.Error(), nil)
	case errors.As(err, &conflict):
		writeError(w, r, http.StatusConflict, api.CodeSerialConflict, conflict.Error(), nil)
	default:
		log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, api.CodeInternal, "internal error", nil)
	}
}
