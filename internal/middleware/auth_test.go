package middleware

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

func signToken(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return signed
}

func validClaims(sub string) jwt.MapClaims {
	return jwt.MapClaims{
		"sub": sub,
		"iss": "face2geek-auth",
		"aud": "face2geek-client",
		"exp": time.Now().Add(time.Hour).Unix(),
	}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{"missing", "", "", ErrMissingToken},
		{"no scheme", "abc", "", ErrMalformedToken},
		{"wrong scheme", "Basic abc", "", ErrMalformedToken},
		{"empty token", "Bearer ", "", ErrMalformedToken},
		{"valid", "Bearer abc", "abc", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BearerToken(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenVerifier_Verify(t *testing.T) {
	v := NewTokenVerifier(testSecret, "face2geek-auth", "face2geek-client")

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("42"))
		id, err := v.UserIDFromHeader("Bearer " + token)
		require.NoError(t, err)
		assert.Equal(t, uint(42), id)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := validClaims("42")
		claims["exp"] = time.Now().Add(-time.Minute).Unix()
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
		_, err := v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte("another-secret"), validClaims("42"))
		_, err := v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		claims := validClaims("42")
		claims["iss"] = "someone-else"
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
		_, err := v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong audience", func(t *testing.T) {
		claims := validClaims("42")
		claims["aud"] = "other-client"
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
		_, err := v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("non numeric subject", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("abc"))
		_, err := v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidSubject)
	})

	t.Run("zero subject", func(t *testing.T) {
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims("0"))
		_, err := v.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidSubject)
	})

	t.Run("checks disabled when unset", func(t *testing.T) {
		lax := NewTokenVerifier(testSecret, "", "")
		claims := jwt.MapClaims{"sub": "7", "exp": time.Now().Add(time.Hour).Unix()}
		token := signToken(t, jwt.SigningMethodHS256, []byte(testSecret), claims)
		id, err := lax.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, uint(7), id)
	})
}
