package utils // package utils provides helper functions for hashing and session tokens

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The admin session cookie carries a signed HS256 token rather than a bare
// session id. The signature makes the cookie tamper-evident, but authority
// stays server-side: every request re-validates the embedded session id
// against the session store, and logout deletes the store record, which
// kills the cookie no matter how long its own expiry runs.

// ErrInvalidSessionToken is returned for tokens that fail signature,
// expiry or claim-shape checks.
var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionToken is a signed cookie value along with its expiry.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewSessionID returns a cryptographically random session identifier
// (32 bytes, hex encoded).
func NewSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// NewSessionToken builds and signs the cookie token for a session. Claims:
// sid (session id), sub (admin id), exp and iat.
func NewSessionToken(secret, sid string, adminID int64, ttl time.Duration) (SessionToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sid": sid,
		"sub": adminID,
		"exp": exp.Unix(),
		"iat": now.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken validates a cookie token and extracts the session id
// and admin id. Expired or tampered tokens yield ErrInvalidSessionToken.
func ParseSessionToken(secret, raw string) (sid string, adminID int64, err error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return "", 0, ErrInvalidSessionToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, ErrInvalidSessionToken
	}
	sid, ok = claims["sid"].(string)
	if !ok || sid == "" {
		return "", 0, ErrInvalidSessionToken
	}
	sub, ok := claims["sub"].(float64) // JWT numbers decode as float64
	if !ok {
		return "", 0, ErrInvalidSessionToken
	}
	return sid, int64(sub), nil
}
