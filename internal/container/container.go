package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/SylvinIsamaza/lung-cancer/adapters/forest"
	"github.com/SylvinIsamaza/lung-cancer/adapters/postgres"
	"github.com/SylvinIsamaza/lung-cancer/app"
	"github.com/SylvinIsamaza/lung-cancer/internal"
	"github.com/SylvinIsamaza/lung-cancer/internal/config"
	"github.com/SylvinIsamaza/lung-cancer/ports"
)

// Container holds all application dependencies and manages their lifecycle
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	// Infrastructure
	DB *sqlx.DB

	// Repositories (data access layer)
	UserRepo   ports.UserRepository
	RecordRepo ports.RecordRepository

	// Model
	Classifier ports.Classifier

	// Services
	TokenService      *app.TokenService
	AuthService       *app.AuthService
	PredictionService *app.PredictionService
}

// New creates a new dependency injection container
func New(cfg *config.Config, logger *internal.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	return &Container{
		Config: cfg,
		Logger: logger,
	}, nil
}

// InitWithDatabase initializes components that require database access
func (c *Container) InitWithDatabase(db *sqlx.DB) error {
	if db == nil {
		return fmt.Errorf("database connection cannot be nil")
	}

	c.DB = db

	if err := db.Ping(); err != nil {
		return fmt.Errorf("database connection test failed: %w", err)
	}

	c.UserRepo = postgres.NewUserRepository(db)
	c.RecordRepo = postgres.NewRecordRepository(db)

	return nil
}

// InitModel loads the classifier artifact. Failure here is fatal: the process
// must not accept traffic without a loaded model.
func (c *Container) InitModel() error {
	f, err := forest.Load(c.Config.Model.Path)
	if err != nil {
		return err
	}
	c.Classifier = f

	c.Logger.Info("loaded classifier artifact from %s", c.Config.Model.Path)
	return nil
}

// InitServices wires the service layer; model and database must be
// initialized first
func (c *Container) InitServices() error {
	if c.Classifier == nil {
		return fmt.Errorf("classifier must be initialized before services")
	}
	if c.UserRepo == nil || c.RecordRepo == nil {
		return fmt.Errorf("repositories must be initialized before services")
	}

	c.TokenService = app.NewTokenService(c.Config.Auth.JWTSecret, c.Config.Auth.AccessTokenTTL)
	c.AuthService = app.NewAuthService(c.UserRepo, c.TokenService, c.Logger)
	c.PredictionService = app.NewPredictionService(
		c.Classifier,
		c.RecordRepo,
		c.Config.Model.MaxConcurrent,
		c.Config.Model.PredictTimeout,
		c.Logger,
	)

	return nil
}

// Close releases container resources
func (c *Container) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
