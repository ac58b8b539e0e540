package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"laundrydesk/internal/core/apperror"
	"laundrydesk/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	MaxLoginAttempts int
	LockDuration     time.Duration
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     15 * time.Minute,
	}
}

// Service authenticates console accounts and issues tokens.
type Service struct {
	accounts   map[string]Account
	jwtService *JWTService
	config     ServiceConfig
	now        func() time.Time

	mu    sync.Mutex
	locks map[string]*lockState
}

// NewService creates a new auth service.
func NewService(accounts []Account, jwtService *JWTService, config ServiceConfig) *Service {
	byName := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		if len(a.Roles) == 0 {
			a.Roles = []string{RoleAdmin}
		}
		byName[a.Username] = a
	}
	return &Service{
		accounts:   byName,
		jwtService: jwtService,
		config:     config,
		now:        time.Now,
		locks:      make(map[string]*lockState),
	}
}

// HashPassword returns a bcrypt hash suitable for Account.PasswordHash.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Login authenticates an account and returns an access token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*TokenPair, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}

	now := s.now()
	if s.isLocked(creds.Username, now) {
		return nil, apperror.NewForbidden("account is temporarily locked")
	}

	account, ok := s.accounts[creds.Username]
	if !ok {
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(creds.Password)); err != nil {
		s.recordFailure(creds.Username, now)
		logger.Warn(ctx, "failed login", "username", creds.Username)
		return nil, apperror.NewUnauthorized("invalid credentials")
	}
	s.resetFailures(creds.Username)

	isAdmin := false
	for _, r := range account.Roles {
		if r == RoleAdmin {
			isAdmin = true
		}
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(account.Username, account.Roles, isAdmin)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user logged in", "username", account.Username)

	return &TokenPair{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *Service) isLocked(username string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[username]
	return ok && l.isLocked(now)
}

func (s *Service) recordFailure(username string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[username]
	if !ok {
		l = &lockState{}
		s.locks[username] = l
	}
	l.recordFailure(now, s.config.MaxLoginAttempts, s.config.LockDuration)
}

func (s *Service) resetFailures(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, username)
}
