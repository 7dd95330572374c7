package invoice

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidToken = errors.New("invalid or expired invoice link")

const linkAudience = "invoice"

// LinkSigner issues and checks HS256 tokens that grant access to one invoice PDF.
type LinkSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewLinkSigner uses secret when set, otherwise a random per-process key, so
// links stop working after a restart.
func NewLinkSigner(secret string, ttl time.Duration) (*LinkSigner, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generate invoice link secret: %w", err)
		}
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &LinkSigner{secret: key, ttl: ttl, now: time.Now}, nil
}

// Sign returns a token for subscriptionID and its expiry.
func (s *LinkSigner) Sign(subscriptionID string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := jwt.StandardClaims{
		Audience:  linkAudience,
		Subject:   subscriptionID,
		IssuedAt:  now.Unix(),
		ExpiresAt: exp.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign invoice link: %w", err)
	}
	return token, exp, nil
}

// Verify returns the subscription id carried by token.
func (s *LinkSigner) Verify(token string) (string, error) {
	claims := &jwt.StandardClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !claims.VerifyAudience(linkAudience, true) || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
