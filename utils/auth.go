package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// ErrInvalidSessionToken is returned for tokens that fail signature, expiry
// or claim checks
var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionClaims are the claims carried by a session token
type SessionClaims struct {
	SessionID string `json:"session_id"`
	jwt.StandardClaims
}

// SessionTokens signs and verifies session tokens
type SessionTokens struct {
	key []byte
	ttl time.Duration
}

// NewSessionTokens creates a token maker. Tokens expire after ttl.
func NewSessionTokens(key []byte, ttl time.Duration) (*SessionTokens, error) {
	if len(key) == 0 {
		return nil, errors.New("session secret must not be empty")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionTokens{key: key, ttl: ttl}, nil
}

// Generate returns a signed token naming sessionID
func (st *SessionTokens) Generate(sessionID string) (string, error) {
	now := time.Now()
	claims := &SessionClaims{
		SessionID: sessionID,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(st.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(st.key)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return tokenString, nil
}

// NeedsRefresh reports whether claims have used up more than half of their
// lifetime at now
func (st *SessionTokens) NeedsRefresh(claims *SessionClaims, now time.Time) bool {
	return time.Unix(claims.ExpiresAt, 0).Sub(now) < st.ttl/2
}

// Parse verifies tokenString and returns its claims
func (st *SessionTokens) Parse(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return st.key, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSessionToken, err)
	}
	if claims.SessionID == "" {
		return nil, fmt.Errorf("%w: missing session id", ErrInvalidSessionToken)
	}
	return claims, nil
}
