package ui

import (
	"context"
	"net/http"
	"strings"

	"github.com/SylvinIsamaza/lung-cancer/internal/errors"
	"github.com/SylvinIsamaza/lung-cancer/models"
)

type contextKey string

const currentUserKey contextKey = "current_user"

// requireAuth resolves the bearer token to a user before any protected
// handler runs. Failure aborts the request with 401 and no side effects.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.writeError(w, errors.Unauthorized("missing authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			s.writeError(w, errors.Unauthorized("invalid authorization header format"))
			return
		}

		user, err := s.auth.CurrentUser(r.Context(), parts[1])
		if err != nil {
			s.writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser returns the authenticated user stored by requireAuth
func currentUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(currentUserKey).(*models.User)
	return user
}
