package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"tillpoint/pkg/apperr"
)

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	writeJSONResponse(w, statusCode, errorResponse{Error: message})
}

// writeServiceError maps the error taxonomy onto HTTP statuses. Storage
// errors hide their detail behind a generic message; everything else is safe
// to echo back.
func writeServiceError(w http.ResponseWriter, err error) {
	statusCode := apperr.HTTPStatus(err)
	if statusCode == http.StatusInternalServerError {
		writeErrorResponse(w, statusCode, "internal server error")
		return
	}
	writeErrorResponse(w, statusCode, err.Error())
}

func parseRequestBody(r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}
