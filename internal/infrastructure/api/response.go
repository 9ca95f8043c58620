package api

import (
	"encoding/json"
	"net/http"

	"pulse-core-targeting-api/internal/domain"
)

// All widget routes answer HTTP 200; the envelope's success flag and error
// code carry the outcome. The embedding script treats any non-200 as a
// transport failure, so application errors never use HTTP status codes.

func writeSuccess(w http.ResponseWriter, payload map[string]any) {
	body := map[string]any{"success": true}
	for key, value := range payload {
		body[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   domain.ErrorCode(err),
	})
}
