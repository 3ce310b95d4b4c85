package users

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"

	"github.com/fullsco/fullsco/internal/crud"
	"github.com/fullsco/fullsco/internal/logging"
)

const (
	// DefaultSessionTTL bounds how long a login stays valid.
	DefaultSessionTTL = 7 * 24 * time.Hour

	minPasswordLength = 8
	sessionTokenBytes = 32
)

var (
	ErrInvalidCredentials = errors.New("users: invalid credentials")
	ErrPasswordTooShort   = fmt.Errorf("users: password must be at least %d characters", minPasswordLength)
	ErrSessionExpired     = errors.New("users: session expired")
)

// Service manages accounts and their login sessions.
type Service struct {
	Users    *crud.Service[*User]
	sessions *crud.Service[*Session]
	ttl      time.Duration
	now      func() time.Time
	log      logging.Logger
}

type Option func(*Service)

func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(userRepo crud.Repository[*User], sessionRepo crud.Repository[*Session], log logging.Logger, opts ...Option) *Service {
	s := &Service{
		Users: crud.NewService(userRepo, "user", UserHandlers(),
			crud.WithLogger[*User](log),
			crud.WithValidator(func(u *User) error {
				if u.Role == "" {
					u.Role = RoleEditor
				}
				return validateUser(u)
			}),
		),
		sessions: crud.NewService(sessionRepo, "session", SessionHandlers(),
			crud.WithLogger[*Session](log),
		),
		ttl: DefaultSessionTTL,
		now: time.Now,
		log: log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func NewBunService(db *bun.DB, log logging.Logger, opts ...Option) *Service {
	return NewService(
		crud.NewBunRepository(db, "user", UserHandlers()),
		crud.NewBunRepository(db, "session", SessionHandlers()),
		log, opts...)
}

// Create hashes the password and stores the account. Email uniqueness is
// pre-checked here; the schema's UNIQUE constraint backs the check under
// concurrency.
func (s *Service) Create(ctx context.Context, user *User, password string) (*User, error) {
	if len(password) < minPasswordLength {
		return nil, crud.WrapValidationError(ErrPasswordTooShort)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Username = strings.TrimSpace(user.Username)

	taken, err := s.emailTaken(ctx, user.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &crud.ConflictError{Resource: "user", Field: "email", Value: user.Email}
	}
	return s.Users.Create(ctx, user)
}

// SetPassword replaces the stored hash.
func (s *Service) SetPassword(ctx context.Context, id int64, password string) error {
	if len(password) < minPasswordLength {
		return crud.WrapValidationError(ErrPasswordTooShort)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = s.Users.Update(ctx, id, func(u *User) error {
		u.PasswordHash = string(hash)
		return nil
	})
	return err
}

// Authenticate verifies the password and returns the account. Missing
// users, wrong passwords, and disabled accounts all come back as
// ErrInvalidCredentials so callers cannot probe for usernames.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	user, err := s.Users.GetByIdentifier(ctx, username)
	if err != nil {
		if crud.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and opens a session.
func (s *Service) Login(ctx context.Context, username, password string) (*User, *Session, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, nil, err
	}
	token, err := newToken()
	if err != nil {
		return nil, nil, err
	}
	session, err := s.sessions.Create(ctx, &Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.ttl),
	})
	if err != nil {
		return nil, nil, err
	}
	return user, session, nil
}

// Lookup resolves a session token to its user. Expired sessions are
// removed on sight.
func (s *Service) Lookup(ctx context.Context, token string) (*User, error) {
	session, err := s.sessions.GetByIdentifier(ctx, token)
	if err != nil {
		return nil, err
	}
	if s.now().After(session.ExpiresAt) {
		if err := s.sessions.Delete(ctx, session.ID); err != nil && !crud.IsNotFound(err) {
			s.log.Warn("expired session cleanup failed", "error", err)
		}
		return nil, ErrSessionExpired
	}
	user, err := s.Users.Get(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Logout deletes the session; unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	session, err := s.sessions.GetByIdentifier(ctx, token)
	if err != nil {
		if crud.IsNotFound(err) {
			return nil
		}
		return err
	}
	return s.sessions.Delete(ctx, session.ID)
}

func (s *Service) emailTaken(ctx context.Context, email string, excludeID int64) (bool, error) {
	matches, err := s.Users.List(ctx, crud.ListQuery{Filters: map[string]any{"email": email}})
	if err != nil {
		return false, err
	}
	for _, u := range matches {
		if u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func newToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
