package handler

import (
	"net/http"

	"legal-ocr-server/internal/domain"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	logger domain.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(logger domain.Logger) *AuthHandler {
	return &AuthHandler{logger: logger}
}

// ValidateToken confirms the caller's token; the middleware already did the
// work, so reaching this handler means the token is valid.
func (h *AuthHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "User not found in context")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid": true,
		"user":  user,
	})
}
