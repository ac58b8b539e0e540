package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"laundrydesk/internal/core/apperror"
)

func newTestService(t *testing.T) (*Service, *JWTService) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	jwtSvc := NewJWTService(DefaultJWTConfig("test-secret"))
	svc := NewService(
		[]Account{{Username: "admin", PasswordHash: string(hash)}},
		jwtSvc,
		ServiceConfig{MaxLoginAttempts: 3, LockDuration: time.Minute},
	)
	return svc, jwtSvc
}

func TestLogin_IssuesValidToken(t *testing.T) {
	svc, jwtSvc := newTestService(t)

	pair, err := svc.Login(context.Background(), Credentials{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)

	user, err := jwtSvc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", user.UserID)
	assert.Equal(t, "admin", user.Username)
	assert.True(t, user.IsAdmin)
	assert.Equal(t, []string{RoleAdmin}, user.Roles)
}

func TestLogin_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		creds Credentials
		code  string
	}{
		{"missing username", Credentials{Password: "x"}, apperror.CodeValidation},
		{"missing password", Credentials{Username: "admin"}, apperror.CodeValidation},
		{"unknown user", Credentials{Username: "root", Password: "s3cret"}, apperror.CodeUnauthorized},
		{"wrong password", Credentials{Username: "admin", Password: "nope"}, apperror.CodeUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t)
			_, err := svc.Login(context.Background(), tt.creds)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestLogin_LocksAfterRepeatedFailures(t *testing.T) {
	svc, _ := newTestService(t)
	now := time.Date(2024, 7, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, Credentials{Username: "admin", Password: "bad"})
		require.Error(t, err)
	}

	_, err := svc.Login(ctx, Credentials{Username: "admin", Password: "s3cret"})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeForbidden, appErr.Code)

	now = now.Add(2 * time.Minute)
	_, err = svc.Login(ctx, Credentials{Username: "admin", Password: "s3cret"})
	assert.NoError(t, err)
}

func TestValidateToken_RejectsForeignSecret(t *testing.T) {
	other := NewJWTService(DefaultJWTConfig("other-secret"))
	token, _, err := other.GenerateAccessToken("admin", []string{RoleAdmin}, true)
	require.NoError(t, err)

	_, jwtSvc := newTestService(t)
	_, err = jwtSvc.ValidateToken(token)
	assert.Error(t, err)
}

func TestHashPassword_Verifies(t *testing.T) {
	hash, err := HashPassword("pw")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("pw")))
}
