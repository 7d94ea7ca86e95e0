package httputil

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/rockymountnc/licensetracker/internal/models"
)

// WriteJSON writes a JSON response with the given status code and data.
// It properly checks for encoding errors and logs them.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("ERROR: failed to encode JSON response: %v", err)
	}
}

// WriteError writes the uniform error schema with a stable code and
// optional per-field details.
func WriteError(w http.ResponseWriter, status int, code, message string, details map[string]string) {
	WriteJSON(w, status, models.ErrorResponse{
		Message: message,
		Code:    code,
		Details: details,
	})
}
