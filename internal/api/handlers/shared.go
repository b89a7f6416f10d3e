// Package handlers contains the HTTP layer: request parsing, status code
// mapping, and delegation to the service layer.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/response"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/validation"
)

// parseJSON decodes a request body into the given type. Unknown fields are
// rejected so typos in field names fail loudly instead of silently becoming
// zero values.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		return req, fmt.Errorf("invalid JSON body: %w", err)
	}
	return req, nil
}

// respondValidationError sends a 400 with per-field messages when err is a
// validation error, and reports whether it handled the error.
func respondValidationError(w http.ResponseWriter, err error) bool {
	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", validationErr.Fields)
		return true
	}
	return false
}
