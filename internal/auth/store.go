// Package auth holds the client-side authentication state and the role
// gates built on top of it.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/abgdnv/storefront/pkg/storage"
	"github.com/golang-jwt/jwt/v5"
)

// Role tags an authenticated user.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Status is the tagged authentication state. Pending means the persisted
// session has not been loaded yet; gates must not redirect while pending.
type Status int

const (
	StatusPending Status = iota
	StatusAnonymous
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAnonymous:
		return "anonymous"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "pending"
	}
}

// User is the identity decoded from the bearer token.
type User struct {
	ID    string
	Email string
	Role  Role
}

// State is a point-in-time copy of the authentication state. User is only
// meaningful when Status is StatusAuthenticated.
type State struct {
	Status Status
	User   User
}

// Store owns the authentication state. It starts pending until Hydrate has
// loaded the persisted session.
type Store struct {
	creds  *storage.Store
	logger *slog.Logger

	mu    sync.Mutex
	state State
}

func NewStore(creds *storage.Store, log *slog.Logger) *Store {
	return &Store{
		creds:  creds,
		logger: log.With("component", "auth"),
		state:  State{Status: StatusPending},
	}
}

// Hydrate loads the persisted token, if any, and leaves the store either
// authenticated or anonymous. An undecodable token is discarded.
func (s *Store) Hydrate() {
	token, ok := s.creds.Get(storage.KeyToken)
	if !ok || token == "" {
		s.set(State{Status: StatusAnonymous})
		return
	}
	user, err := decodeUser(token)
	if err != nil {
		s.logger.Warn("discarding invalid persisted token", "error", err)
		_ = s.creds.Delete(storage.KeyToken)
		_ = s.creds.Delete(storage.KeyUserID)
		s.set(State{Status: StatusAnonymous})
		return
	}
	s.set(State{Status: StatusAuthenticated, User: user})
}

// SetToken stores a freshly issued token and derives the user from its
// claims. The store ends up hydrated either way.
func (s *Store) SetToken(token string) error {
	user, err := decodeUser(token)
	if err != nil {
		s.set(State{Status: StatusAnonymous})
		return fmt.Errorf("invalid token: %w", err)
	}
	if err := s.creds.Set(storage.KeyToken, token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	if err := s.creds.Set(storage.KeyUserID, user.ID); err != nil {
		return fmt.Errorf("failed to persist user id: %w", err)
	}
	s.set(State{Status: StatusAuthenticated, User: user})
	return nil
}

// Logout clears the persisted session.
func (s *Store) Logout() {
	_ = s.creds.Delete(storage.KeyToken)
	_ = s.creds.Delete(storage.KeyUserID)
	s.set(State{Status: StatusAnonymous})
}

// State returns the current authentication state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Store) set(state State) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// decodeUser extracts identity claims without verifying the signature. The
// token was issued and signed by the auth service; the client only needs
// the display identity, authorization stays server-side.
func decodeUser(token string) (User, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return User{}, err
	}
	id, _ := claims["id"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	if id == "" || role == "" {
		return User{}, errors.New("token missing identity claims")
	}
	return User{ID: id, Email: email, Role: Role(role)}, nil
}
