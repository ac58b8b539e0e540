package auth

import (
	"time"

	"laundrydesk/internal/core/apperror"
)

// RoleAdmin is the only console role.
const RoleAdmin = "admin"

// Credentials is a login request.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks that both fields are present.
func (c Credentials) Validate() error {
	if c.Username == "" {
		return apperror.NewValidation("username is required").WithDetail("field", "username")
	}
	if c.Password == "" {
		return apperror.NewValidation("password is required").WithDetail("field", "password")
	}
	return nil
}

// TokenPair is the login response.
type TokenPair struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Account is a configured console account.
type Account struct {
	Username     string
	PasswordHash string
	Roles        []string
}

// lockState tracks failed logins of one account.
type lockState struct {
	failedAttempts int
	lockedUntil    time.Time
}

func (l *lockState) isLocked(now time.Time) bool {
	return now.Before(l.lockedUntil)
}

func (l *lockState) recordFailure(now time.Time, maxAttempts int, lockDuration time.Duration) {
	l.failedAttempts++
	if l.failedAttempts >= maxAttempts {
		l.lockedUntil = now.Add(lockDuration)
		l.failedAttempts = 0
	}
}
