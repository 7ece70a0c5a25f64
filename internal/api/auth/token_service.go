package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates HMAC-signed bearer tokens. It keeps no
// server-side session state.
type TokenService struct {
	secretKey []byte
	issuer    string

	// Default lifetime for issued tokens
	TokenDuration time.Duration
}

// JWTClaims represents the claims in our JWT tokens
type JWTClaims struct {
	jwt.RegisteredClaims
}

// NewTokenService creates a new token service
func NewTokenService(secretKey, issuer string) *TokenService {
	return &TokenService{
		secretKey:     []byte(secretKey),
		issuer:        issuer,
		TokenDuration: time.Hour,
	}
}

// IssueToken creates a signed token for subject. A zero ttl uses TokenDuration.
func (ts *TokenService) IssueToken(subject string, ttl time.Duration) (string, error) {
	if len(ts.secretKey) == 0 {
		return "", fmt.Errorf("jwt secret is not configured")
	}
	if ttl <= 0 {
		ttl = ts.TokenDuration
	}

	now := time.Now()
	claims := &JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    ts.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses tokenString and returns its claims if it is valid.
func (ts *TokenService) ValidateToken(tokenString string) (*JWTClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithExpirationRequired(),
	}
	if ts.issuer != "" {
		opts = append(opts, jwt.WithIssuer(ts.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ts.secretKey, nil
	}, opts...)
	if err != nil || !token.Valid {
		if err == nil {
			err = fmt.Errorf("invalid token")
		}
		return nil, err
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
