package dto

import (
	"time"

	"laundrydesk/internal/domain/auth"
)

// LoginRequest for admin login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts to domain credentials.
func (r *LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{
		Username: r.Username,
		Password: r.Password,
	}
}

// TokenResponse represents the issued access token.
type TokenResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// FromTokenPair converts domain token pair to response.
func FromTokenPair(tp *auth.TokenPair) *TokenResponse {
	return &TokenResponse{
		AccessToken: tp.AccessToken,
		TokenType:   tp.TokenType,
		ExpiresAt:   tp.ExpiresAt,
	}
}
