package auth

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

// GuestSessions issues and validates short-lived guest tokens. A guest token
// maps to a stable guest ID, which keys the device-local cart slot.
type GuestSessions struct {
	mu     sync.RWMutex
	tokens map[string]guestMeta
	ttl    time.Duration
}

type guestMeta struct {
	GuestID   string
	ExpiresAt time.Time
}

func NewGuestSessions() *GuestSessions {
	return &GuestSessions{
		tokens: make(map[string]guestMeta),
		ttl:    30 * 24 * time.Hour,
	}
}

// Issue creates a fresh guest ID and a token bound to it.
func (g *GuestSessions) Issue() (token, guestID string, err error) {
	guestID, err = randomToken(16)
	if err != nil {
		return "", "", err
	}
	token, err = randomToken(32)
	if err != nil {
		return "", "", err
	}
	g.mu.Lock()
	g.tokens[token] = guestMeta{GuestID: guestID, ExpiresAt: time.Now().Add(g.ttl)}
	g.mu.Unlock()
	return token, guestID, nil
}

// Lookup resolves a guest token to its guest ID.
func (g *GuestSessions) Lookup(token string) (string, bool) {
	g.mu.RLock()
	meta, ok := g.tokens[token]
	g.mu.RUnlock()
	if !ok {
		return "", false
	}
	if time.Now().After(meta.ExpiresAt) {
		g.mu.Lock()
		delete(g.tokens, token)
		g.mu.Unlock()
		return "", false
	}
	return meta.GuestID, true
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
