package service

import (
	"context"
	"crypto/subtle"
)

// Session is the caller state injected by the transport.
type Session struct {
	ID       string
	Unlocked bool
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying sess.
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFrom extracts the session placed by WithSession.
func SessionFrom(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(Session)
	return sess, ok
}

// Locked reports whether operations need an unlocked session.
func (s *Service) Locked() bool {
	return s.passphrase != ""
}

// Unlock checks passphrase and returns an unlocked session for id.
func (s *Service) Unlock(id, passphrase string) (Session, error) {
	if !s.Locked() {
		return Session{ID: id, Unlocked: true}, nil
	}
	if subtle.ConstantTimeCompare([]byte(passphrase), []byte(s.passphrase)) != 1 {
		return Session{ID: id}, ErrLocked
	}
	return Session{ID: id, Unlocked: true}, nil
}

func (s *Service) authorize(ctx context.Context) error {
	if !s.Locked() {
		return nil
	}
	if sess, ok := SessionFrom(ctx); ok && sess.Unlocked {
		return nil
	}
	return ErrLocked
}

// Authenticate unlocks a session for id and returns ctx carrying it. On a
// wrong passphrase ctx is returned unchanged with ErrLocked.
func (s *Service) Authenticate(ctx context.Context, id, passphrase string) (context.Context, error) {
	sess, err := s.Unlock(id, passphrase)
	if err != nil {
		return ctx, err
	}
	return WithSession(ctx, sess), nil
}
