// Package auth is the session and identity provider. It resolves credentials
// against the identity backend, issues signed session tokens, and notifies
// registered listeners on every session change.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/abiwaumi/tablewater/internal/domain/models"
)

const (
	tokenIssuer = "tablewater-api"
	tokenTTL    = 24 * time.Hour
)

// IdentityBackend resolves account profiles for sign-in.
type IdentityBackend interface {
	UserByEmail(ctx context.Context, email string) (models.User, error)
}

// Listener is invoked on every session change. A nil user means sign-out.
type Listener func(user *models.User)

// Service manages active sessions. Sessions live in memory keyed by token;
// sign-out revokes a token even before its expiry.
type Service struct {
	backend IdentityBackend
	secret  []byte
	logger  *zap.Logger
	now     func() time.Time

	mu           sync.RWMutex
	sessions     map[string]models.User
	listeners    map[int]Listener
	nextListener int
}

// NewService wires a session provider over the identity backend.
func NewService(backend IdentityBackend, jwtSecret string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		backend:   backend,
		secret:    []byte(jwtSecret),
		logger:    logger,
		now:       time.Now,
		sessions:  make(map[string]models.User),
		listeners: make(map[int]Listener),
	}
}

// SignIn verifies the credential and opens a session. An unknown email or a
// wrong password both surface as AuthenticationError; callers must not
// assume success.
func (s *Service) SignIn(ctx context.Context, email, password string) (models.User, string, error) {
	user, err := s.backend.UserByEmail(ctx, strings.ToLower(email))
	if errors.Is(err, models.ErrNotFound) {
		return models.User{}, "", &models.AuthenticationError{Reason: "invalid credentials"}
	}
	if err != nil {
		return models.User{}, "", fmt.Errorf("resolve identity: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, "", &models.AuthenticationError{Reason: "invalid credentials"}
	}

	token, err := s.createToken(user)
	if err != nil {
		return models.User{}, "", fmt.Errorf("issue session token: %w", err)
	}

	s.mu.Lock()
	s.sessions[token] = user
	s.mu.Unlock()

	s.logger.Info("user signed in", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	s.notify(&user)
	return user, token, nil
}

// SignOut closes the session. Idempotent: an unknown or already-cleared
// token is a no-op, but listeners still observe the sign-out.
func (s *Service) SignOut(token string) {
	s.mu.Lock()
	_, existed := s.sessions[token]
	delete(s.sessions, token)
	s.mu.Unlock()

	if existed {
		s.logger.Info("user signed out")
	}
	s.notify(nil)
}

// CurrentUser resolves the session for a token, validating both signature
// and expiry. Revoked and expired tokens fail with AuthenticationError.
func (s *Service) CurrentUser(token string) (models.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return models.User{}, &models.AuthenticationError{Reason: "invalid session token"}
	}

	s.mu.RLock()
	user, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok {
		return models.User{}, &models.AuthenticationError{Reason: "session not active"}
	}
	return user, nil
}

// Subscribe registers a session-change listener and returns the unsubscribe
// handle. Callers must invoke it on teardown to release the registration.
func (s *Service) Subscribe(listener Listener) func() {
	s.mu.Lock()
	id := s.nextListener
	s.nextListener++
	s.listeners[id] = listener
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Service) notify(user *models.User) {
	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.RUnlock()

	for _, l := range listeners {
		l(user)
	}
}

func (s *Service) createToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   s.now().Add(tokenTTL).Unix(),
		"iat":   s.now().Unix(),
		"iss":   tokenIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
