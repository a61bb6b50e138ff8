package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"gogramm/config"
)

// Claims defines JWT claims used in the application. Purpose distinguishes
// session tokens from single-purpose activation tokens so one can never be
// replayed as the other.
type Claims struct {
	UserID  uint   `json:"user_id"`
	Email   string `json:"email"`
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

const (
	// PurposeSession marks a regular login token.
	PurposeSession = "session"
	// PurposeActivation marks a signed, time-limited account activation token.
	PurposeActivation = "activation"
)

// ErrWrongPurpose is returned when a token is presented to the wrong endpoint.
var ErrWrongPurpose = errors.New("token purpose mismatch")

// GenerateToken issues a session JWT for the specified user identity.
func GenerateToken(userID uint, email string, duration time.Duration) (string, error) {
	return signToken(userID, email, PurposeSession, duration)
}

// GenerateActivationToken issues the signed, time-limited token embedded in
// the activation email.
func GenerateActivationToken(userID uint, email string, duration time.Duration) (string, error) {
	return signToken(userID, email, PurposeActivation, duration)
}

func signToken(userID uint, email, purpose string, duration time.Duration) (string, error) {
	cfg := config.Get()

	claims := Claims{
		UserID:  userID,
		Email:   email,
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(duration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParseToken validates a session JWT and returns its claims.
func ParseToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, PurposeSession)
}

// ParseActivationToken validates an activation JWT and returns its claims.
func ParseActivationToken(tokenStr string) (*Claims, error) {
	return parseToken(tokenStr, PurposeActivation)
}

func parseToken(tokenStr, purpose string) (*Claims, error) {
	cfg := config.Get()
	parsed, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}

	return claims, nil
}
