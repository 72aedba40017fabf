package jwthelper

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labasis/labasis-api/internal/domain"
)

const testSigningKey = "test-signing-key"

func TestGenerateAndParseToken(t *testing.T) {
	user := domain.User{
		ID:    42,
		Email: "teacher@university.edu",
		Role:  domain.RoleTeacher,
	}

	token, err := GenerateToken(user, testSigningKey)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token, testSigningKey)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "teacher@university.edu", claims.Email)
	assert.Equal(t, domain.RoleTeacher, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, tokenLifetime, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken(domain.User{ID: 1, Role: domain.RoleAdmin}, testSigningKey)
	require.NoError(t, err)

	_, err = ParseToken(token, "some-other-key")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not.a.token", testSigningKey)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_UnknownRole(t *testing.T) {
	claims := Claims{
		UserID: 1,
		Email:  "x@y.z",
		Role:   domain.Role("superuser"),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSigningKey))
	require.NoError(t, err)

	_, err = ParseToken(signed, testSigningKey)
	require.ErrorIs(t, err, ErrInvalidToken)
}
