package ui

import (
	"fmt"
	"net/http"

	"github.com/SylvinIsamaza/lung-cancer/internal/errors"
)

// handleRegister creates a new account from form-encoded credentials
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	username, password, err := credentialsForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	user, err := s.auth.Register(r.Context(), username, password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"msg": fmt.Sprintf("User %s registered successfully", user.Username),
	})
}

// handleLogin verifies credentials and returns a bearer token
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	username, password, err := credentialsForm(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	token, err := s.auth.Login(r.Context(), username, password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}

// handleMe returns the authenticated caller's identity
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	s.writeJSON(w, http.StatusOK, map[string]string{
		"id":       user.ID.String(),
		"username": user.Username,
	})
}

// credentialsForm reads form-encoded username/password credentials
func credentialsForm(r *http.Request) (username, password string, err error) {
	if err := r.ParseForm(); err != nil {
		return "", "", errors.ValidationError("malformed form body")
	}
	return r.PostFormValue("username"), r.PostFormValue("password"), nil
}
