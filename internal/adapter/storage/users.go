package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
)

const usersKey = "users"

var _ port.UserRepository = (*UsersRepository)(nil)

type userRecord struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type UsersRepository struct {
	kv *KV
}

func NewUsersRepository(kv *KV) UsersRepository {
	return UsersRepository{kv}
}

// ReadUsers returns the whole durable user list. An absent record is
// an empty list, not an error.
func (r UsersRepository) ReadUsers(ctx context.Context) ([]domain.User, error) {
	const op = "UsersRepository.ReadUsers"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	data, err := r.kv.get(usersKey)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var records []userRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	users := make([]domain.User, len(records))
	for i, rec := range records {
		users[i] = domain.User{ID: rec.ID, Username: rec.Username, Password: rec.Password}
	}
	return users, nil
}

// StoreUsers replaces the durable user list as one value.
func (r UsersRepository) StoreUsers(ctx context.Context, users []domain.User) error {
	const op = "UsersRepository.StoreUsers"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	records := make([]userRecord, len(users))
	for i, u := range users {
		records[i] = userRecord{ID: u.ID, Username: u.Username, Password: u.Password}
	}

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.kv.put(usersKey, data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
