package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// Session is the authenticated state handed to handlers through the request context.
type Session struct {
	Username  string
	Token     string
	ExpiresAt time.Time
}

// Gate checks the single configured admin credential pair and issues sessions.
type Gate struct {
	username string
	hash     string
	tm       *TokenManager
}

func NewGate(username, password string, tm *TokenManager) (*Gate, error) {
	if username == "" || password == "" {
		return nil, errors.New("admin credentials must not be empty")
	}
	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &Gate{username: username, hash: hash, tm: tm}, nil
}

func (g *Gate) Login(username, password string) (Session, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	// always run bcrypt so a wrong username costs the same as a wrong password
	passErr := VerifyPassword(password, g.hash)
	if !userOK || passErr != nil {
		return Session{}, ErrInvalidCredentials
	}
	token, exp, err := g.tm.Generate(username)
	if err != nil {
		return Session{}, fmt.Errorf("issue session: %w", err)
	}
	return Session{Username: username, Token: token, ExpiresAt: exp}, nil
}

// Verify turns a session token back into a Session.
func (g *Gate) Verify(token string) (Session, error) {
	claims, err := g.tm.Parse(token)
	if err != nil {
		return Session{}, err
	}
	if claims.Username != g.username {
		return Session{}, ErrInvalidToken
	}
	return Session{Username: claims.Username, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}
