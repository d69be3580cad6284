package service

import (
	"encoding/json"
	"net/http"

	"github.com/dtelecom/channel-auth/pkg/logger"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func handleError(w http.ResponseWriter, r *http.Request, status int, err error, cause error) {
	keysAndValues := []interface{}{"status", status}
	if r != nil && r.URL != nil {
		keysAndValues = append(keysAndValues, "method", r.Method, "path", r.URL.Path)
	}
	if cause != nil {
		keysAndValues = append(keysAndValues, "cause", cause)
	}
	logger.Warnw("error handling request", err, keysAndValues...)

	body := ErrorResponse{Error: err.Error()}
	// auth failures stay generic, everything else may carry the cause
	if cause != nil && status != http.StatusUnauthorized {
		body.Details = cause.Error()
	}
	writeJSON(w, status, &body)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
