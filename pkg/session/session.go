package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/peterbourgon/diskv/v3"
)

// Status is the authentication state the UI gates on.
type Status int

const (
	// StatusLoading means the session has not been resolved yet.
	StatusLoading Status = iota
	// StatusAuthenticated means a usable token is present.
	StatusAuthenticated
	// StatusUnauthenticated means there is no token, or it has expired.
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

const tokenKey = "session-token"

var ErrNotAuthenticated = errors.New("session: not authenticated, run `scribe login`")

// Session owns the cached bearer token. The token itself comes from an
// external auth provider; this package only stores it and reads its claims.
// Claims are decoded without signature verification, the server remains the
// authority on token validity.
type Session struct {
	d   *diskv.Diskv
	now func() time.Time

	token  string
	userID string
	expiry time.Time
	loaded bool
}

// Load opens the session cache under the config base path and reads any
// stored token.
func Load(cfg Config) (*Session, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	s := &Session{
		d: diskv.New(diskv.Options{
			BasePath:     cfg.BasePath(),
			CacheSizeMax: 64 * 1024,
		}),
		now: time.Now,
	}
	if raw, err := s.d.Read(tokenKey); err == nil {
		// A stored token that no longer parses is treated as absent.
		_ = s.adopt(string(raw))
	}
	s.loaded = true
	return s, nil
}

// Status reports the auth gate state.
func (s *Session) Status() Status {
	if !s.loaded {
		return StatusLoading
	}
	if s.token == "" {
		return StatusUnauthenticated
	}
	if !s.expiry.IsZero() && s.now().After(s.expiry) {
		return StatusUnauthenticated
	}
	return StatusAuthenticated
}

// UserID is the subject claim of the stored token, used to attribute created
// and updated posts.
func (s *Session) UserID() string { return s.userID }

// Token returns the raw bearer token, empty when unauthenticated.
func (s *Session) Token() string {
	if s.Status() != StatusAuthenticated {
		return ""
	}
	return s.token
}

// SetToken validates, adopts, and persists a token handed to us by the user.
func (s *Session) SetToken(token string) error {
	if err := s.adopt(token); err != nil {
		return err
	}
	if err := s.d.Write(tokenKey, []byte(token)); err != nil {
		return fmt.Errorf("session: persist token: %w", err)
	}
	return nil
}

// Clear forgets the stored token.
func (s *Session) Clear() error {
	s.token = ""
	s.userID = ""
	s.expiry = time.Time{}
	if s.d.Has(tokenKey) {
		return s.d.Erase(tokenKey)
	}
	return nil
}

func (s *Session) adopt(token string) error {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("session: token is not a valid JWT: %w", err)
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return errors.New("session: token has no subject claim")
	}
	s.token = token
	s.userID = sub
	s.expiry = time.Time{}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		s.expiry = exp.Time
	}
	return nil
}
