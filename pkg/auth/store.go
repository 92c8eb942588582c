package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/strandplatform/strand-go/pkg/storage"
)

const defaultStorageKey = "strand_session"

type (
	StoreOption func(*Store)

	// Store persists the whole Session as one value, so both credentials
	// are always read and written together.
	Store struct {
		storage storage.Storage
		key     string
	}
)

func NewStore(s storage.Storage, opts ...StoreOption) *Store {
	store := &Store{
		storage: s,
		key:     defaultStorageKey,
	}
	for _, opt := range opts {
		opt(store)
	}

	return store
}

// WithStorageKey namespaces the session value, for embedders that keep
// several independent sessions in one storage.
func WithStorageKey(key string) StoreOption {
	return func(s *Store) {
		s.key = key
	}
}

func (s *Store) Get(ctx context.Context) (Session, bool, error) {
	data, err := s.storage.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return Session{}, false, nil
	}
	if err != nil {
		return Session{}, false, fmt.Errorf("read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return Session{}, false, fmt.Errorf("decode session: %w", err)
	}

	return session, true, nil
}

func (s *Store) Set(ctx context.Context, session Session) error {
	if err := session.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	if err := s.storage.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// SetAccessToken replaces only the access token of the stored session,
// leaving the refresh token and identity untouched. This is the refresh
// path's single mutation.
func (s *Store) SetAccessToken(ctx context.Context, accessToken string) error {
	session, ok, err := s.Get(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoSession
	}

	session.AccessToken = accessToken
	return s.Set(ctx, session)
}

func (s *Store) Clear(ctx context.Context) error {
	if err := s.storage.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
