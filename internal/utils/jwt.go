package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/RaymondMik/GetRideApp/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is returned for any token that cannot be trusted.
var ErrInvalidToken = errors.New("invalid token")

// JWTClaims custom claims for JWT
type JWTClaims struct {
	Access string `json:"access"`
	jwt.RegisteredClaims
}

// UserID returns the identity the token was issued to.
func (c *JWTClaims) UserID() string {
	return c.Subject
}

// JWTUtil provides JWT generation and validation
type JWTUtil struct {
	secretKey []byte
	ttl       time.Duration // zero issues tokens without an exp claim
}

// NewJWTUtil creates a new JWTUtil. A non-positive expirationHours disables expiry.
func NewJWTUtil(secretKey string, expirationHours int64) *JWTUtil {
	var ttl time.Duration
	if expirationHours > 0 {
		ttl = time.Hour * time.Duration(expirationHours)
	}
	return &JWTUtil{secretKey: []byte(secretKey), ttl: ttl}
}

// GenerateToken signs a new auth-scoped token for userID
func (ju *JWTUtil) GenerateToken(userID string) (string, error) {
	now := time.Now()
	claims := &JWTClaims{
		Access: model.AccessAuth,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Subject:  userID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ju.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ju.ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(ju.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken checks signature, expiry and scope, and returns the decoded claims
func (ju *JWTUtil) ValidateToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return ju.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Access != model.AccessAuth {
		return nil, fmt.Errorf("%w: unsupported access scope %q", ErrInvalidToken, claims.Access)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims, nil
}
