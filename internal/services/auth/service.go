package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/forceteam/internal/dependencies/clock"
	"github.com/mcoot/forceteam/internal/dependencies/random"
)

const (
	tokenPrefix   = "ft_"
	tokenLength   = 32
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// Errors
var (
	ErrMissingToken = errors.New("missing admin token")
	ErrInvalidToken = errors.New("invalid admin token")
)

// Config holds configuration for the auth service
type Config struct {
	// TokenHash is the bcrypt hash of the admin token. Empty disables auth.
	TokenHash string
	// VerifiedTTL is how long a token stays trusted after a successful check
	VerifiedTTL time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		VerifiedTTL: 5 * time.Minute,
	}
}

// Service checks admin bearer tokens against a bcrypt hash. Tokens that
// passed recently are remembered so not every request pays for bcrypt.
type Service struct {
	hash  []byte
	clock clock.Clock
	ttl   time.Duration

	mu       sync.RWMutex
	verified map[string]time.Time
}

// New creates an auth service, rejecting a malformed hash
func New(clk clock.Clock, cfg Config) (*Service, error) {
	if cfg.VerifiedTTL == 0 {
		cfg.VerifiedTTL = DefaultConfig().VerifiedTTL
	}
	s := &Service{
		clock:    clk,
		ttl:      cfg.VerifiedTTL,
		verified: make(map[string]time.Time),
	}
	if cfg.TokenHash != "" {
		if _, err := bcrypt.Cost([]byte(cfg.TokenHash)); err != nil {
			return nil, fmt.Errorf("admin token hash: %w", err)
		}
		s.hash = []byte(cfg.TokenHash)
	}
	return s, nil
}

// Enabled reports whether requests must carry a token
func (s *Service) Enabled() bool {
	return len(s.hash) > 0
}

// Authenticate checks a bearer token
func (s *Service) Authenticate(token string) error {
	if !s.Enabled() {
		return nil
	}
	if token == "" {
		return ErrMissingToken
	}

	now := s.clock.Now()
	s.mu.RLock()
	expires, ok := s.verified[token]
	s.mu.RUnlock()
	if ok && now.Before(expires) {
		return nil
	}

	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(token)); err != nil {
		return ErrInvalidToken
	}

	s.mu.Lock()
	s.verified[token] = now.Add(s.ttl)
	s.mu.Unlock()
	return nil
}

// CleanExpired forgets tokens whose trust window has passed
func (s *Service) CleanExpired() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for token, expires := range s.verified {
		if !now.Before(expires) {
			delete(s.verified, token)
		}
	}
}

// HashToken returns the bcrypt hash to configure for token
func HashToken(token string) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// GenerateToken returns a random token suitable for admin use
func GenerateToken(rnd random.Random) string {
	return tokenPrefix + rnd.String(tokenLength, tokenAlphabet)
}
