// Package auth issues and verifies the signed bearer tokens that carry a
// user's identity between requests. Verification is stateless.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"creator-finance/internal/apperr"
)

// DefaultTTL is the validity window of an issued token.
const DefaultTTL = 7 * 24 * time.Hour

// Claims is the token payload: {id, email} plus iat/exp.
type Claims struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type Tokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Tokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for the user, valid for the configured TTL from now.
func (t *Tokens) Issue(userID uint, email string) (string, error) {
	now := t.now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, payload and expiry and returns the embedded claims.
func (t *Tokens) Verify(raw string) (*Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, apperr.ErrTokenMissing
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		// Only a correctly signed token may be reported as expired.
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors == jwt.ValidationErrorExpired {
			return nil, apperr.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", apperr.ErrTokenInvalid, err)
	}
	if !token.Valid || claims.UserID == 0 || claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: malformed payload", apperr.ErrTokenInvalid)
	}
	return claims, nil
}

// BearerToken extracts the credential from an "Authorization: Bearer <token>" header.
// Anything else yields "".
func BearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
