package httputil

import (
	"careerpath-backend/internal/models"
	"encoding/json"
	"log"
	"net/http"
)

// RespondJSON writes a JSON response with the given status code and payload.
func RespondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("ERROR [httputil] encoding JSON response: %v", err)
	}
}

// RespondError writes {"message": ...} with the given status code.
func RespondError(w http.ResponseWriter, statusCode int, message string) {
	RespondJSON(w, statusCode, models.ErrorResponse{Message: message})
}

// RespondFailure writes a 500 carrying both a fixed message and the underlying error text.
func RespondFailure(w http.ResponseWriter, message string, err error) {
	resp := models.ErrorResponse{Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	RespondJSON(w, http.StatusInternalServerError, resp)
}
