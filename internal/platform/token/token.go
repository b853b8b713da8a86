// Package token issues and verifies the signed bearer tokens used for
// authentication. Tokens are stateless JWTs: nothing is persisted, a
// token is valid iff its signature verifies and its expiry has not
// passed.
package token

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the token lifetime when the caller does not request one.
const DefaultTTL = 15 * time.Minute

// LoginTTL is the lifetime of tokens issued by the login endpoint.
const LoginTTL = 60 * time.Minute

// ErrInvalidToken covers every verification failure: bad signature,
// expired token, missing subject. The causes are deliberately not
// distinguished so a caller probing tokens learns nothing about which
// check failed.
var ErrInvalidToken = errors.New("could not validate credentials")

// Service signs and verifies bearer tokens with a process-wide secret.
type Service struct {
	secret     []byte
	defaultTTL time.Duration
}

// NewService creates a token service. If secret is empty a random one is
// generated for this process: tokens then stop verifying after a
// restart, which is logged loudly so operators can set SECRET_KEY.
func NewService(secret string, defaultTTL time.Duration) *Service {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	if secret == "" {
		buf := make([]byte, 64)
		if _, err := rand.Read(buf); err != nil {
			// rand.Read only fails when the OS entropy source is broken.
			panic(fmt.Sprintf("failed to generate token secret: %v", err))
		}
		secret = hex.EncodeToString(buf)
		slog.Warn("SECRET_KEY is not set; generated a per-process secret. Issued tokens will not survive a restart.")
	}
	return &Service{secret: []byte(secret), defaultTTL: defaultTTL}
}

// Issue creates a signed token for subject with the service's default
// lifetime.
func (s *Service) Issue(subject string) (string, error) {
	return s.IssueWithTTL(subject, s.defaultTTL)
}

// IssueWithTTL creates a signed token for subject expiring at now+ttl.
// The ttl is taken literally: zero or negative produces a token that is
// already expired.
func (s *Service) IssueWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": now.Add(ttl).Unix(),
		"iat": now.Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature and expiry and returns the embedded subject.
// All failures collapse into ErrInvalidToken.
func (s *Service) Parse(tokenStr string) (string, error) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		// Only HMAC is acceptable; reject tokens claiming other methods.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", ErrInvalidToken
	}
	return sub, nil
}
