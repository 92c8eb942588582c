package storage

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"
)

var boltBucketName = []byte("strand")

type boltStorage struct {
	db *bbolt.DB
}

// NewBoltStorage opens a bbolt database at the given path. This is the
// file-backed equivalent of browser local storage and the default backend
// for the CLI.
func NewBoltStorage(path string) (Storage, func() error, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("open bolt database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(boltBucketName)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("create bolt bucket: %w", err)
	}

	return &boltStorage{db: db}, db.Close, nil
}

func (s *boltStorage) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(boltBucketName).Get([]byte(key))
		if data == nil {
			return fmt.Errorf("%s: %w", key, ErrNotFound)
		}

		value = make([]byte, len(data))
		copy(value, data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (s *boltStorage) Set(_ context.Context, key string, value []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(boltBucketName).Put([]byte(key), value)
	})
}

func (s *boltStorage) Delete(_ context.Context, key string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(boltBucketName).Delete([]byte(key))
	})
}
