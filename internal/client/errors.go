package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"assetdesk/internal/api"
)

// APIError is a non-2xx response from the asset API. Details is set when
// the body was a JSON error document.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details *api.ErrorResponse
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("asset API %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("asset API %d: %s", e.Status, e.Message)
}

func newAPIError(resp *http.Response, body []byte) *APIError {
	e := &APIError{Status: resp.StatusCode}

	if strings.Contains(resp.Header.Get("Content-Type"), "json") {
		var details api.ErrorResponse
		if err := json.Unmarshal(body, &details); err == nil {
			e.Details = &details
			e.Code = details.Code
			e.Message = details.Message
		}
	}
	if e.Message == "" {
		e.Message = strings.TrimSpace(string(body))
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("Request failed with status %d", resp.StatusCode)
	}
	return e
}

// FieldErrors returns the per-field errors carried by the response, if any.
func (e *APIError) FieldErrors() []api.FieldError {
	if e.Details == nil {
		return nil
	}
	return e.Details.Errors
}

// ErrorState is the user-facing rendition of a failed list request.
type ErrorState struct {
	Title       string
	Description string
	FieldErrors []api.FieldError
}

// ResolveError maps an API error to the message shown above the asset list.
func ResolveError(err *APIError) ErrorState {
	fields := err.FieldErrors()
	switch err.Status {
	case http.StatusBadRequest:
		return ErrorState{
			Title:       "Parâmetros inválidos",
			Description: "A consulta foi rejeitada pelo servidor. Revise filtros, busca e paginação.",
			FieldErrors: fields,
		}
	case http.StatusNotFound:
		return ErrorState{
			Title:       "Recurso não encontrado",
			Description: "Não foi possível encontrar o recurso solicitado. Atualize a página e tente novamente.",
			FieldErrors: fields,
		}
	case http.StatusConflict:
		return ErrorState{
			Title:       "Conflito de dados",
			Description: "Detectamos um conflito no servidor. Atualize a listagem antes de continuar.",
			FieldErrors: fields,
		}
	}

	desc := err.Message
	if desc == "" {
		desc = "Ocorreu um erro inesperado ao consultar os ativos."
	}
	return ErrorState{Title: "Erro ao carregar ativos", Description: desc, FieldErrors: fields}
}
