package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"civitaid/internal/actions"
	"civitaid/internal/civitai"
	"civitaid/internal/scan"
	"civitaid/internal/shortcut"
	"civitaid/pkg/types"
)

// HTTPError allows services to provide an HTTP status code for an error.
type HTTPError interface {
	error
	StatusCode() int
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.ErrorResponse{Error: msg, Code: status})
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	var he HTTPError
	var ce *civitai.Error
	switch {
	case errors.As(err, &he):
		return he.StatusCode()
	case scan.IsBusy(err), shortcut.IsBusy(err):
		return http.StatusConflict
	case actions.IsBadInput(err):
		return http.StatusBadRequest
	case errors.Is(err, civitai.ErrNoTriggerWords), errors.Is(err, civitai.ErrNoRecord):
		return http.StatusNotFound
	case errors.As(err, &ce):
		switch ce.Kind {
		case civitai.KindNotFound:
			return http.StatusNotFound
		case civitai.KindRejected:
			// rejected before any request was sent
			if ce.Status == 0 {
				return http.StatusBadRequest
			}
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError maps err and writes it.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusConflict {
		IncrementBusy("batch")
	}
	writeJSONError(w, status, err.Error())
}
