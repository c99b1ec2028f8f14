package webserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"riskbridge/internal/engine"
)

// ErrorCode identifies the failure category in the JSON error payload
type ErrorCode string

const (
	ErrorCodeDatasetNotFound  ErrorCode = "dataset_not_found"
	ErrorCodeInsufficientData ErrorCode = "insufficient_data"
	ErrorCodeUnknownCategory  ErrorCode = "unknown_category"
	ErrorCodeTimeout          ErrorCode = "timeout"
	ErrorCodeEngineFailure    ErrorCode = "engine_failure"
	ErrorCodeUpload           ErrorCode = "upload"
	ErrorCodeInternal         ErrorCode = "internal"
)

// ErrorResponse is the JSON error payload returned to the client. The
// message is user-facing; engine diagnostics stay in the logs.
type ErrorResponse struct {
	Error string    `json:"error"`
	Code  ErrorCode `json:"code"`
}

// CategorizeError maps a bridge failure to an HTTP status, an error code
// and a translation key for the user-facing message. The mapping over
// engine error kinds is exhaustive; anything else is an internal error.
func CategorizeError(err error) (int, ErrorCode, string) {
	var bridgeErr *engine.Error
	if errors.As(err, &bridgeErr) {
		switch bridgeErr.Kind {
		case engine.ErrDatasetNotFound:
			return http.StatusUnprocessableEntity, ErrorCodeDatasetNotFound, "error_dataset_not_found"
		case engine.ErrInsufficientData:
			return http.StatusUnprocessableEntity, ErrorCodeInsufficientData, "error_insufficient_data"
		case engine.ErrUnknownCategory:
			return http.StatusNotFound, ErrorCodeUnknownCategory, "error_unknown_category"
		case engine.ErrTimeout:
			return http.StatusGatewayTimeout, ErrorCodeTimeout, "error_timeout"
		case engine.ErrEngineFailure:
			return http.StatusBadGateway, ErrorCodeEngineFailure, "error_engine_failure"
		}
	}

	return http.StatusInternalServerError, ErrorCodeInternal, "error_internal"
}

// WriteBridgeError writes the JSON error payload for a failed analysis,
// deriving the status from the error's classification.
func WriteBridgeError(w http.ResponseWriter, err error, lang string) {
	status, code, msgKey := CategorizeError(err)
	writeErrorJSON(w, status, code, GetTranslation(lang, msgKey))
}

// WriteUploadError writes the JSON error payload for a rejected upload
func WriteUploadError(w http.ResponseWriter, lang string) {
	writeErrorJSON(w, http.StatusBadRequest, ErrorCodeUpload, GetTranslation(lang, "error_upload"))
}

func writeErrorJSON(w http.ResponseWriter, status int, code ErrorCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := ErrorResponse{Error: message, Code: code}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		// Fallback to plain text if JSON encoding fails
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprintf(w, "Error: %s", message)
	}
}
