package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const sessionKey = "session"

var _ port.SessionRepository = (*SessionRepository)(nil)

type sessionRecord struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

type SessionRepository struct {
	kv *KV
}

func NewSessionRepository(kv *KV) SessionRepository {
	return SessionRepository{kv}
}

func (r SessionRepository) ReadSession(ctx context.Context) (domain.Session, error) {
	const op = "SessionRepository.ReadSession"

	if err := ctx.Err(); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	data, err := r.kv.get(sessionKey)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return domain.Session{}, fmt.Errorf("%s: %w", op, domain.ErrSessionNotFound)
		}
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.Session{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.Session{UserID: rec.UserID, Username: rec.Username}, nil
}

func (r SessionRepository) StoreSession(ctx context.Context, s domain.Session) error {
	const op = "SessionRepository.StoreSession"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	data, err := json.Marshal(sessionRecord{UserID: s.UserID, Username: s.Username})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.kv.put(sessionKey, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteSession is idempotent: deleting an absent session is not an
// error.
func (r SessionRepository) DeleteSession(ctx context.Context) error {
	const op = "SessionRepository.DeleteSession"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.kv.delete(sessionKey); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
