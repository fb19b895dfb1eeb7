// Package auth supplies the reader's user identity. The real identity
// provider lives outside this service; this package holds the contract plus
// a local provider for single-user and development use.
package auth

import (
	"errors"
	"os"

	"github.com/google/uuid"
)

// ErrNoSession indicates no active session; callers surface it as a
// redirect to sign-in, not as an internal failure.
var ErrNoSession = errors.New("no active session")

// Session identifies the current user. Token is an optional bearer
// credential forwarded to collaborators that require one.
type Session struct {
	UserID string
	Token  string
}

// Provider yields the current session, if any
type Provider interface {
	Current() (*Session, error)
}

// LocalProvider resolves the user id from the environment, minting a fresh
// uuid when none is configured. Suited to the CLI reader; a deployed service
// would use a real identity collaborator instead.
type LocalProvider struct {
	session *Session
}

// NewLocalProvider creates a local session provider
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

// Current returns the local session, creating it on first use
func (p *LocalProvider) Current() (*Session, error) {
	if p.session != nil {
		return p.session, nil
	}

	uid := os.Getenv("NARRVOCA_UID")
	if uid == "" {
		uid = uuid.NewString()
	}
	p.session = &Session{UserID: uid, Token: os.Getenv("NARRVOCA_TOKEN")}
	return p.session, nil
}
