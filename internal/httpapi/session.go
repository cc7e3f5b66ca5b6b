package httpapi

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
)

// sessionStore maps bearer tokens to user ids. Tokens live for the process
// lifetime or until logout.
type sessionStore struct {
	mu     sync.RWMutex
	tokens map[string]int
}

func newSessionStore() *sessionStore {
	return &sessionStore{tokens: make(map[string]int)}
}

func (s *sessionStore) issue(userID int) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	token := hex.EncodeToString(buf)
	s.mu.Lock()
	s.tokens[token] = userID
	s.mu.Unlock()
	return token, nil
}

func (s *sessionStore) lookup(token string) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.tokens[token]
	return id, ok
}

func (s *sessionStore) revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}
