package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the payload carried by a signed access token.
type TokenClaims struct {
	UserID string `json:"userID"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 bearer tokens against a server
// secret.
type TokenService struct {
	secret       []byte
	tokenExpiry  time.Duration
	signingMethd *jwt.SigningMethodHMAC
}

func NewTokenService(secret string, expiryInSecs int) *TokenService {
	return &TokenService{
		secret:       []byte(secret),
		tokenExpiry:  time.Duration(expiryInSecs) * time.Second,
		signingMethd: jwt.SigningMethodHS256,
	}
}

func (ts *TokenService) GenerateAccessToken(userID uuid.UUID) (string, error) {
	now := time.Now()

	claims := &TokenClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.tokenExpiry)),
		},
	}

	token, err := jwt.NewWithClaims(ts.signingMethd, claims).SignedString(ts.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return token, nil
}

// ValidateAccessToken verifies the signature and expiry of tokenStr. Every
// failure mode (malformed, expired, wrong signature, wrong method) comes
// back as isValid == false; the caller is never told which check failed.
func (ts *TokenService) ValidateAccessToken(tokenStr string) (isValid bool, claims *TokenClaims, err error) {
	parsed, err := jwt.ParseWithClaims(
		tokenStr,
		&TokenClaims{},
		func(t *jwt.Token) (any, error) {
			if t.Method != ts.signingMethd {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return ts.secret, nil
		},
	)
	if err != nil || !parsed.Valid {
		return false, nil, nil
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok {
		return false, nil, nil
	}

	return true, claims, nil
}
