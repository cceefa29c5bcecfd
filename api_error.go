package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// ErrorCode is a stable machine readable error identifier.
type ErrorCode string

const (
	ErrorCodeInternalServerError ErrorCode = "internal_server_error"
	ErrorCodeBadRequest          ErrorCode = "bad_request"
	ErrorCodeNotFound            ErrorCode = "not_found"

	// Validation
	ErrorCodeInvalidPollutant ErrorCode = "invalid_pollutant"
	ErrorCodeInvalidDate      ErrorCode = "invalid_date"
	ErrorCodeInvalidPolicy    ErrorCode = "invalid_policy"
	ErrorCodeMissingParameter ErrorCode = "missing_parameter"

	// Dataset
	ErrorCodeDatasetUnavailable ErrorCode = "dataset_unavailable"
	ErrorCodeReportMissing      ErrorCode = "report_missing"
	ErrorCodeNotEnoughData      ErrorCode = "not_enough_data"
)

type APIError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Details    any       `json:"details,omitempty"`
	StatusCode int       `json:"-"`
}

func (e APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func NewAPIError(code ErrorCode, message string, details any, statusCode int) APIError {
	return APIError{
		Code:       code,
		Message:    message,
		Details:    details,
		StatusCode: statusCode,
	}
}

func badRequest(code ErrorCode, err error) APIError {
	return NewAPIError(code, err.Error(), nil, http.StatusBadRequest)
}

// respondWithError writes err as JSON. Errors that are not an APIError become a 500.
func respondWithError(w http.ResponseWriter, err error) {
	var apiErr APIError
	if !errors.As(err, &apiErr) {
		apiErr = NewAPIError(ErrorCodeInternalServerError, err.Error(), nil, http.StatusInternalServerError)
	}
	respondWithJSON(w, apiErr.StatusCode, apiErr)
}

func respondWithJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encode json response", "error", err)
	}
}
