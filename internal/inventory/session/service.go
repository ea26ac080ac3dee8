package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
	"github.com/tair/cafe-inventory/pkg/auth"
	"github.com/tair/cafe-inventory/pkg/logger"
)

// TTL is the fixed lifetime of a session, measured from login.
const TTL = 24 * time.Hour

// UserDirectory looks users up for authentication.
type UserDirectory interface {
	GetUser(id uint) (domain.User, error)
	FindUserByUsername(username string) (domain.User, error)
}

// Service handles login, logout and identity resolution.
type Service struct {
	users UserDirectory
	store Store
	now   func() time.Time

	// dummyHash is verified against for unknown usernames.
	dummyHash string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the clock used for session expiry.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a session service.
func NewService(users UserDirectory, store Store, opts ...Option) *Service {
	s := &Service{
		users: users,
		store: store,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.dummyHash, _ = auth.HashPassword(uuid.NewString())
	return s
}

// Login verifies credentials and opens a session. Unknown users, wrong
// passwords and archived users all fail with ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (Session, domain.User, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return Session{}, domain.User{}, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	user, err := s.users.FindUserByUsername(username)
	if err != nil {
		// Spend the same hashing work as a real check.
		auth.CheckPassword(s.dummyHash, password)
		logger.Info(ctx).Str("username", username).Msg("Login rejected")
		return Session{}, domain.User{}, domain.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.Password, password) || !user.IsActive {
		logger.Info(ctx).Str("username", username).Msg("Login rejected")
		return Session{}, domain.User{}, domain.ErrInvalidCredentials
	}

	sess, err := s.Start(ctx, user)
	if err != nil {
		return Session{}, domain.User{}, err
	}
	return sess, user, nil
}

// Start opens a session for an already authenticated user.
func (s *Service) Start(ctx context.Context, user domain.User) (Session, error) {
	now := s.now()
	sess := Session{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(TTL),
	}
	if err := s.store.Save(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("failed to open session: %w", err)
	}

	logger.Info(ctx).
		Uint("user_id", user.ID).
		Str("role", string(user.Role)).
		Msg("Session opened")
	return sess, nil
}

// Logout revokes token immediately.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.store.Delete(ctx, token)
}

// Resolve maps a token to the identity of an active user. Role changes
// and archiving take effect on the next request.
func (s *Service) Resolve(ctx context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	sess, err := s.store.Get(ctx, token)
	if errors.Is(err, ErrSessionNotFound) {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	if err != nil {
		return domain.Identity{}, err
	}
	if sess.Expired(s.now()) {
		_ = s.store.Delete(ctx, token)
		return domain.Identity{}, domain.ErrUnauthenticated
	}

	user, err := s.users.GetUser(sess.UserID)
	if err != nil || !user.IsActive || user.Username != sess.Username {
		_ = s.store.Delete(ctx, token)
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return user.Identity(), nil
}
