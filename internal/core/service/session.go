package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

var _ port.Authenticator = (*SessionService)(nil)

// SessionService manages the durable user list and the single current
// session. Mutations are whole-value read-modify-write against the
// repositories, guarded by a mutex because the HTTP server is
// concurrent.
type SessionService struct {
	mu       sync.Mutex
	users    port.UserRepository
	sessions port.SessionRepository
}

func NewSessionService(
	users port.UserRepository, sessions port.SessionRepository,
) *SessionService {
	return &SessionService{users: users, sessions: sessions}
}

// Register creates a user with a fresh opaque id and appends it to
// the durable list. It does not establish a session by itself.
func (s *SessionService) Register(
	ctx context.Context, username, password string,
) (domain.User, error) {
	const op = "SessionService.Register"

	if err := ctx.Err(); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	if username == "" || password == "" {
		return domain.User{}, fmt.Errorf("%s: %w", op, domain.ErrEmptyCredentials)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.ReadUsers(ctx)
	if err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	for _, u := range users {
		if u.Username == username {
			return domain.User{}, fmt.Errorf("%s: %w", op, domain.ErrDuplicateUsername)
		}
	}

	user := domain.User{
		ID:       uuid.NewString(),
		Username: username,
		Password: password,
	}

	users = append(users, user)
	if err := s.users.StoreUsers(ctx, users); err != nil {
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// Login verifies the credentials against the durable list and
// persists the matching session.
func (s *SessionService) Login(
	ctx context.Context, username, password string,
) (domain.Session, error) {
	const op = "SessionService.Login"

	if err := ctx.Err(); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.users.ReadUsers(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	for _, u := range users {
		if u.Username == username && u.Password == password {
			sess := domain.Session{UserID: u.ID, Username: u.Username}
			if err := s.sessions.StoreSession(ctx, sess); err != nil {
				return domain.Session{}, fmt.Errorf("%s: %w", op, err)
			}
			return sess, nil
		}
	}
	return domain.Session{}, fmt.Errorf("%s: %w", op, domain.ErrInvalidCredentials)
}

// Logout clears the persisted session. Idempotent.
func (s *SessionService) Logout(ctx context.Context) error {
	const op = "SessionService.Logout"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.DeleteSession(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CurrentSession reads the persisted session, or
// domain.ErrSessionNotFound when logged out.
func (s *SessionService) CurrentSession(ctx context.Context) (domain.Session, error) {
	const op = "SessionService.CurrentSession"

	if err := ctx.Err(); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.ReadSession(ctx)
	if err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return sess, nil
}
