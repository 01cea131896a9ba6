package app

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/SylvinIsamaza/lung-cancer/internal"
	"github.com/SylvinIsamaza/lung-cancer/internal/errors"
	"github.com/SylvinIsamaza/lung-cancer/models"
	"github.com/SylvinIsamaza/lung-cancer/ports"
)

// AuthService orchestrates registration, login and bearer-token resolution.
// Login failures are deliberately indistinguishable: unknown username and
// wrong password produce the same unauthorized error.
type AuthService struct {
	users  ports.UserRepository
	tokens *TokenService
	logger *internal.Logger
}

// NewAuthService creates an auth service
func NewAuthService(users ports.UserRepository, tokens *TokenService, logger *internal.Logger) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
		logger: logger.Component("auth"),
	}
}

// Register creates a new user with a bcrypt-hashed password
func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" {
		return nil, errors.ValidationError("username is required")
	}
	if password == "" {
		return nil, errors.ValidationError("password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("registered user %s", username)
	return user, nil
}

// Login verifies credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", errors.Unauthorized("incorrect username or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errors.Unauthorized("incorrect username or password")
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", err
	}

	s.logger.Debug("issued token for %s", username)
	return token, nil
}

// CurrentUser resolves a bearer token to its user. Every protected operation
// runs through this before doing anything else.
func (s *AuthService) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	subject, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByUsername(ctx, subject)
	if err != nil {
		return nil, errors.Unauthorized("invalid or expired token")
	}

	return user, nil
}
