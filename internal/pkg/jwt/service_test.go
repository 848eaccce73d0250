package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := NewHMACService("test-secret", time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateToken(userID, "recruiter")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "recruiter", claims.Role)
	assert.Equal(t, userID.String(), claims.Subject)
}

func TestValidate_Expired(t *testing.T) {
	svc := NewHMACService("test-secret", time.Hour)

	issued := time.Now().Add(-2 * time.Hour)
	svc.now = func() time.Time { return issued }
	token, err := svc.GenerateToken(uuid.New(), "jobseeker")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := NewHMACService("secret-a", time.Hour).GenerateToken(uuid.New(), "jobseeker")
	require.NoError(t, err)

	_, err = NewHMACService("secret-b", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidate_Garbage(t *testing.T) {
	svc := NewHMACService("test-secret", time.Hour)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.ValidateToken(raw)
		assert.ErrorIs(t, err, ErrTokenInvalid, "input %q", raw)
	}
}

func TestGenerate_MissingSecret(t *testing.T) {
	svc := NewHMACService("", time.Hour)
	_, err := svc.GenerateToken(uuid.New(), "recruiter")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
