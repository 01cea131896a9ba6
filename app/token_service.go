package app

import (
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/SylvinIsamaza/lung-cancer/internal/errors"
)

// TokenService issues and verifies stateless HS256 bearer tokens. There is no
// server-side session table: signature plus expiry are the whole contract.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a token service with a shared signing secret and a
// fixed token lifetime
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue signs a token carrying the subject, stamped with the configured TTL
func (s *TokenService) Issue(subject string) (string, error) {
	now := time.Now()
	claims := jwt.StandardClaims{
		Subject:   subject,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign access token")
	}
	return signed, nil
}

// Verify parses and validates a token, returning its subject. Malformed
// tokens, signature mismatches and elapsed expiry all collapse into one
// unauthorized error.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.StandardClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Unauthorized("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.Unauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(*jwt.StandardClaims)
	if !ok || claims.Subject == "" {
		return "", errors.Unauthorized("invalid or expired token")
	}

	return claims.Subject, nil
}
