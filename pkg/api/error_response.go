package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/jcallister/backdesk/pkg/domain"
)

// ErrorBody is the inner object of the standard error envelope.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the JSON error envelope every failing endpoint returns.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// WriteJSONError writes the error envelope with the given status code,
// machine-readable error code and human-readable message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{Error: ErrorBody{Code: code, Message: message}}
	json.NewEncoder(w).Encode(response)
}

// writeQueryError maps engine errors onto the envelope: bad pagination
// parameters are the caller's fault, a failing backend is not.
func writeQueryError(w http.ResponseWriter, err error) {
	var specErr *domain.InvalidSpecError
	if errors.As(err, &specErr) {
		WriteJSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", specErr.Reason)
		return
	}

	var storeErr *domain.StoreUnavailableError
	if errors.As(err, &storeErr) {
		log.Printf("ERROR: Store unavailable: %v", storeErr)
		WriteJSONError(w, http.StatusServiceUnavailable, "STORE_UNAVAILABLE", "The backing store is unavailable")
		return
	}

	log.Printf("ERROR: Query failed: %v", err)
	WriteJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Query failed")
}

// writeJSON writes any payload with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("ERROR: Encoding response failed: %v", err)
	}
}
