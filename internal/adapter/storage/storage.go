// Package storage is the persistent key-value area backing the user
// list and the current session. Records are read and written as whole
// JSON values, no partial updates and no schema versioning.
package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/syndtr/goleveldb/leveldb"
)

var ErrNoRecord = errors.New("no record")

type KV struct {
	db *leveldb.DB
}

func NewKV(path string) (*KV, error) {
	const op = "KV"
	log := slog.With("op", op)

	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open key-value store: %w", op, err)
	}
	log.Info("key-value store is open", "path", path)
	return &KV{db}, nil
}

func (kv *KV) get(key string) ([]byte, error) {
	v, err := kv.db.Get([]byte(key), nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, ErrNoRecord
		}
		return nil, err
	}
	return v, nil
}

func (kv *KV) put(key string, value []byte) error {
	return kv.db.Put([]byte(key), value, nil)
}

func (kv *KV) delete(key string) error {
	return kv.db.Delete([]byte(key), nil)
}

func (kv *KV) Close() {
	const op = "KV.Close"
	log := slog.With("op", op)

	log.Info("closing key-value store...")
	if err := kv.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("key-value store is closed")
}
