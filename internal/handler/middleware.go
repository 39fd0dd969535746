package handler

import (
	"context"
	"net/http"
	"strings"

	"mcq-generator/internal/domain"
)

// SessionHeader carries the session key when Supabase auth is disabled
const SessionHeader = "X-Session-ID"

const maxSessionIDLength = 128

// SessionMiddleware resolves the session key of a request. With an auth
// service the Supabase user ID is the key; without one the client supplies
// it in SessionHeader.
type SessionMiddleware struct {
	authService domain.AuthService
	logger      domain.Logger
}

// NewSessionMiddleware creates the middleware. authService may be nil.
func NewSessionMiddleware(authService domain.AuthService, logger domain.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		authService: authService,
		logger:      logger,
	}
}

func (m *SessionMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.authService == nil {
			m.headerSession(next, w, r)
			return
		}

		// Get token from Authorization header
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		// Extract token from "Bearer <token>" format
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			writeError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		token := parts[1]
		if token == "" {
			writeError(w, http.StatusUnauthorized, "Token required")
			return
		}

		user, err := m.authService.ValidateToken(token)
		if err != nil || user == nil {
			m.logger.Warn("Token validation failed", "error", err)
			writeError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		ctx = context.WithValue(ctx, sessionContextKey, user.ID)
		ctx = domain.WithAccessToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *SessionMiddleware) headerSession(next http.Handler, w http.ResponseWriter, r *http.Request) {
	sessionID := strings.TrimSpace(r.Header.Get(SessionHeader))
	if sessionID == "" {
		writeError(w, http.StatusUnauthorized, SessionHeader+" header required")
		return
	}
	if len(sessionID) > maxSessionIDLength {
		writeError(w, http.StatusBadRequest, "Session ID too long")
		return
	}

	ctx := context.WithValue(r.Context(), sessionContextKey, sessionID)
	next.ServeHTTP(w, r.WithContext(ctx))
}
