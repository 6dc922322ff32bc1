package api

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// errorResponse is the JSON body sent with every 4xx/5xx response. Details,
// when present, enumerate the offending payload fields.
type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeError(w http.ResponseWriter, status int, msg string, details ...string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(errorResponse{Error: msg, Details: details}); err != nil {
		log.Errorf("[writeError] failed to encode error response: %v", err)
	}
}
