package middleware

import (
	"errors"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification failures. Tokens are issued by the external identity
// provider; this service only verifies them.
var (
	ErrMissingToken   = errors.New("authorization required")
	ErrMalformedToken = errors.New("invalid authorization header format")
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrInvalidSubject = errors.New("invalid user ID in token")
)

// TokenVerifier validates HMAC-signed bearer tokens and extracts the user ID
// from the subject claim.
type TokenVerifier struct {
	secret   []byte
	issuer   string
	audience string
}

// NewTokenVerifier builds a verifier. Empty issuer or audience disables that check.
func NewTokenVerifier(secret, issuer, audience string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret), issuer: issuer, audience: audience}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header value.
func BearerToken(header string) (string, error) {
	if header == "" {
		return "", ErrMissingToken
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", ErrMalformedToken
	}
	return parts[1], nil
}

// UserIDFromHeader verifies the bearer token in header and returns its subject.
func (v *TokenVerifier) UserIDFromHeader(header string) (uint, error) {
	token, err := BearerToken(header)
	if err != nil {
		return 0, err
	}
	return v.Verify(token)
}

// Verify parses tokenString and returns the user ID carried in "sub".
func (v *TokenVerifier) Verify(tokenString string) (uint, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return v.secret, nil
	}, opts...)
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	// "sub" per RFC 7519
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return 0, ErrInvalidSubject
	}
	userID, err := strconv.ParseUint(sub, 10, 32)
	if err != nil || userID == 0 {
		return 0, ErrInvalidSubject
	}
	return uint(userID), nil
}
