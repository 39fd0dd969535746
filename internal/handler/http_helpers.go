package handler

import (
	"encoding/json"
	"net/http"

	"mcq-generator/internal/domain"
	apperrors "mcq-generator/pkg/errors"
)

type contextKey string

const (
	userContextKey    contextKey = "user"
	sessionContextKey contextKey = "session"
)

// GetUserFromContext extracts the authenticated user from request context
func GetUserFromContext(r *http.Request) (*domain.SupabaseUser, bool) {
	user, ok := r.Context().Value(userContextKey).(*domain.SupabaseUser)
	return user, ok
}

// GetSessionIDFromContext extracts the session key set by SessionMiddleware
func GetSessionIDFromContext(r *http.Request) (string, bool) {
	sessionID, ok := r.Context().Value(sessionContextKey).(string)
	return sessionID, ok && sessionID != ""
}

type errorResponse struct {
	Error   string `json:"error"`
	Type    string `json:"type,omitempty"`
	Details string `json:"details,omitempty"`
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errorResponse{Error: message})
}

// writeAppError writes err using the status and message of its AppError mapping
func writeAppError(w http.ResponseWriter, err error) {
	appErr := apperrors.FromDomain(err)
	writeJSON(w, appErr.StatusCode, errorResponse{
		Error:   appErr.Message,
		Type:    string(appErr.Type),
		Details: appErr.Details,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}
