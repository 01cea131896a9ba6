package ui

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/SylvinIsamaza/lung-cancer/app"
	"github.com/SylvinIsamaza/lung-cancer/internal"
	"github.com/SylvinIsamaza/lung-cancer/internal/errors"
)

// Server is the HTTP surface over the auth and prediction services
type Server struct {
	router      *chi.Mux
	auth        *app.AuthService
	predictions *app.PredictionService
	logger      *internal.Logger
	httpServer  *http.Server
}

// Config holds server settings
type Config struct {
	Port string
}

// NewServer creates the API server and wires its routes
func NewServer(cfg Config, auth *app.AuthService, predictions *app.PredictionService, logger *internal.Logger) *Server {
	s := &Server{
		router:      chi.NewRouter(),
		auth:        auth,
		predictions: predictions,
		logger:      logger.Component("http"),
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s
}

// setupMiddleware configures HTTP middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	// The original service allows every origin, method and header.
	s.router.Use(cors.AllowAll().Handler)
}

// setupRoutes wires the /v1 route table
func (s *Server) setupRoutes() {
	s.router.Route("/v1", func(r chi.Router) {
		r.Get("/", s.handleRoot)
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(pr chi.Router) {
			pr.Use(s.requireAuth)
			pr.Get("/auth/me", s.handleMe)
			pr.Post("/predict", s.handlePredict)
			pr.Get("/dashboard", s.handleDashboard)
		})
	})
}

// ListenAndServe runs the server until the context is cancelled, then shuts
// down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on %s", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	}
}

// Handler exposes the router, used by tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// writeJSON serializes a response body with a status code
func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response: %v", err)
	}
}

// writeError maps an application error code to an HTTP status at one
// chokepoint. Internal causes are never serialized to the client.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)

	status := http.StatusInternalServerError
	message := "internal server error"

	switch code {
	case errors.CodeValidationError, errors.CodeConflict:
		status = http.StatusBadRequest
		message = appMessage(err)
	case errors.CodeUnauthorized:
		status = http.StatusUnauthorized
		message = appMessage(err)
		w.Header().Set("WWW-Authenticate", "Bearer")
	case errors.CodeNotFound:
		status = http.StatusNotFound
		message = appMessage(err)
	case errors.CodePredictionError, errors.CodeDatabaseError:
		s.logger.Error("request failed: %v", err)
	default:
		s.logger.Error("unexpected error: %v", err)
	}

	s.writeJSON(w, status, map[string]string{"detail": message})
}

// appMessage extracts the user-facing message without wrapped causes
func appMessage(err error) string {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
