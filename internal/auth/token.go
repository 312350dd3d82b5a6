package auth

import (
	"context"
	"errors"
	"os"
	"sync"

	"github.com/fivetwenty-io/playerok-client/internal/constants"
)

// Static errors for err113 compliance.
var (
	ErrNoToken = errors.New("no access token available")
)

// TokenManager supplies the session token for each request.
type TokenManager interface {
	GetToken(ctx context.Context) (string, error)
}

// Token is the marketplace session token sent as the "token" cookie. The
// marketplace does not announce expiry; a token is good until rejected.
type Token struct {
	AccessToken string `json:"access_token"`
}

// Valid reports whether the token can be sent.
func (t *Token) Valid() bool {
	return t != nil && t.AccessToken != ""
}

// TokenStore holds one token and is safe for concurrent use.
type TokenStore struct {
	mu    sync.RWMutex
	token *Token
}

// NewTokenStore creates an empty store.
func NewTokenStore() *TokenStore {
	return &TokenStore{}
}

// Get returns the stored token, nil when empty.
func (s *TokenStore) Get() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.token
}

// Set replaces the stored token.
func (s *TokenStore) Set(token *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
}

// Clear drops the stored token.
func (s *TokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = nil
}

// StaticTokenManager serves a fixed token until it is revoked.
type StaticTokenManager struct {
	store *TokenStore
}

// NewStaticTokenManager creates a manager for token. An empty token falls
// back to PLAYEROK_ACCESS_TOKEN.
func NewStaticTokenManager(token string) *StaticTokenManager {
	if token == "" {
		token = os.Getenv(constants.EnvAccessToken)
	}

	store := NewTokenStore()
	if token != "" {
		store.Set(&Token{AccessToken: token})
	}

	return &StaticTokenManager{store: store}
}

// GetToken returns the token or ErrNoToken once revoked.
func (m *StaticTokenManager) GetToken(ctx context.Context) (string, error) {
	token := m.store.Get()
	if !token.Valid() {
		return "", ErrNoToken
	}

	return token.AccessToken, nil
}

// Revoke forgets the token so no later request can carry it.
func (m *StaticTokenManager) Revoke() {
	m.store.Clear()
}
