//go:generate ${TOOLS_BIN}/mockgen -source ${GOFILE} -destination mock/${GOFILE} -package mock -mock_names "Storage=Storage"
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Storage is the persistent key-value capability credentials are kept in.
// Implementations must treat Set as a full-value replace and return
// ErrNotFound from Get for absent keys.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
