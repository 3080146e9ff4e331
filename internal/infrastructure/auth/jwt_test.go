package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsvs/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: 30 * time.Minute,
		Issuer:                "test-issuer",
	})
}

func newTestInput() GenerateTokenInput {
	return GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "ivan@example.com",
		Roles:  []string{"ROLE_PORTAL_USER", "ROLE_PORTAL_ADMIN"},
	}
}

func TestGenerateAccessToken(t *testing.T) {
	svc := newTestJWTService()

	token, err := svc.GenerateAccessToken(newTestInput())

	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.Equal(t, 30*time.Minute, token.ExpiresIn)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), token.ExpiresAt, 5*time.Second)
}

func TestValidateAccessToken_Success(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	token, err := svc.GenerateAccessToken(input)
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(token.Token)
	require.NoError(t, err)

	assert.Equal(t, input.Email, claims.Subject)
	assert.Equal(t, input.UserID.String(), claims.UserID)
	assert.Equal(t, input.Roles, claims.Roles)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, "test-issuer", claims.Issuer)

	uid, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, input.UserID, uid)
	assert.True(t, claims.HasRole("ROLE_PORTAL_ADMIN"))
	assert.False(t, claims.HasRole("ROLE_PORTAL_SUPERADMIN"))
	assert.True(t, claims.HasAnyRole("ROLE_PORTAL_SUPERADMIN", "ROLE_PORTAL_ADMIN"))
	assert.Greater(t, claims.GetRemainingTTL(), 29*time.Minute)
}

func TestValidateAccessToken_UniqueJTI(t *testing.T) {
	svc := newTestJWTService()
	input := newTestInput()

	a, err := svc.GenerateAccessToken(input)
	require.NoError(t, err)
	b, err := svc.GenerateAccessToken(input)
	require.NoError(t, err)

	ca, err := svc.ValidateAccessToken(a.Token)
	require.NoError(t, err)
	cb, err := svc.ValidateAccessToken(b.Token)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                "test-secret-key-at-least-32-chars",
		AccessTokenExpiration: -time.Minute,
	})

	token, err := svc.GenerateAccessToken(newTestInput())
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token.Token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateAccessToken_WrongSecret(t *testing.T) {
	token, err := newTestJWTService().GenerateAccessToken(newTestInput())
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{
		Secret:                "another-secret-key-at-least-32-ch",
		AccessTokenExpiration: time.Minute,
	})

	_, err = other.ValidateAccessToken(token.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_Garbage(t *testing.T) {
	_, err := newTestJWTService().ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_RejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ivan@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: uuid.New().String(),
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestJWTService().ValidateAccessToken(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateAccessToken_MissingUserID(t *testing.T) {
	svc := newTestJWTService()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "ivan@example.com",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(raw)
	assert.ErrorIs(t, err, ErrMissingUserID)
}
