package services

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"io"

	"locgm/internal/session"
)

const csrfKey = "csrf_token"

// CSRFGuard issues one random token per session and checks submitted tokens against it.
type CSRFGuard struct {
	random io.Reader
}

// NewCSRFGuard creates a guard reading from crypto/rand.
func NewCSRFGuard() *CSRFGuard {
	return &CSRFGuard{random: rand.Reader}
}

// Issue returns the session token, generating a 256-bit one on first use.
func (g *CSRFGuard) Issue(v session.Values) (string, error) {
	if tok := g.Current(v); tok != "" {
		return tok, nil
	}
	return g.Reissue(v)
}

// Reissue replaces the session token with a fresh one.
func (g *CSRFGuard) Reissue(v session.Values) (string, error) {
	buf := make([]byte, 32)
	if _, err := io.ReadFull(g.random, buf); err != nil {
		return "", fmt.Errorf("failed to generate csrf token: %w", err)
	}
	tok := hex.EncodeToString(buf)
	v.Set(csrfKey, tok)
	return tok, nil
}

// Current returns the session token or "" if none was issued.
func (g *CSRFGuard) Current(v session.Values) string {
	if v == nil {
		return ""
	}
	tok, _ := v.Get(csrfKey).(string)
	return tok
}

// Validate compares submitted with the session token in constant time.
func (g *CSRFGuard) Validate(v session.Values, submitted string) bool {
	tok := g.Current(v)
	if tok == "" || submitted == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(tok), []byte(submitted)) == 1
}
