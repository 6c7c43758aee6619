package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"legal-ocr-server/internal/domain"
	"legal-ocr-server/pkg/errors"
)

type contextKey string

const (
	userContextKey  contextKey = "user"
	tokenContextKey contextKey = "token"
)

// GetUserFromContext extracts the authenticated user from request context
func GetUserFromContext(r *http.Request) (*domain.SupabaseUser, bool) {
	user, ok := r.Context().Value(userContextKey).(*domain.SupabaseUser)
	return user, ok
}

// GetTokenFromContext extracts the authentication token from request context
func GetTokenFromContext(r *http.Request) (string, bool) {
	token, ok := r.Context().Value(tokenContextKey).(string)
	return token, ok
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// statusForError resolves the HTTP status for domain sentinels and AppErrors.
func statusForError(err error) int {
	switch {
	case stderrors.Is(err, domain.ErrExtractionNotFound),
		stderrors.Is(err, domain.ErrMappingNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden
	case stderrors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized
	default:
		return errors.GetStatusCode(err)
	}
}
