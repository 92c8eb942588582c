package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/cenkalti/backoff/v4"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

const (
	defaultConnectionTimeout = 20 * time.Second

	postgresTableName = "strand_storage"
)

type PostgresConfig struct {
	DSN               PostgresDSN
	ConnectionTimeout time.Duration
}

type PostgresDSN struct {
	User     string
	Password string
	Address  string
	Database string
}

func (d PostgresDSN) String() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s?sslmode=disable", d.User, d.Password, d.Address, d.Database)
}

type postgresStorage struct {
	db *sqlx.DB
}

// NewPostgresStorage connects to postgres, retrying the initial ping with
// exponential backoff until the connection timeout elapses. The storage
// table must exist:
//
//	CREATE TABLE strand_storage (key TEXT PRIMARY KEY, value BYTEA NOT NULL)
func NewPostgresStorage(config PostgresConfig) (Storage, func() error, error) {
	if config.ConnectionTimeout <= 0 {
		config.ConnectionTimeout = defaultConnectionTimeout
	}

	db, err := openConnection(&config)
	if err != nil {
		return nil, nil, err
	}

	return &postgresStorage{db: db}, db.Close, nil
}

func (s *postgresStorage) Get(ctx context.Context, key string) ([]byte, error) {
	query, args, err := sq.
		Select("value").
		From(postgresTableName).
		Where(sq.Eq{"key": key}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build sql: %w", err)
	}

	var value []byte
	err = s.db.GetContext(ctx, &value, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select value: %w", err)
	}

	return value, nil
}

func (s *postgresStorage) Set(ctx context.Context, key string, value []byte) error {
	query, args, err := sq.
		Insert(postgresTableName).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value").
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql: %w", err)
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to upsert value: %w", err)
	}
	return nil
}

func (s *postgresStorage) Delete(ctx context.Context, key string) error {
	query, args, err := sq.
		Delete(postgresTableName).
		Where(sq.Eq{"key": key}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build sql: %w", err)
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete value: %w", err)
	}
	return nil
}

func openConnection(config *PostgresConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", config.DSN.String())
	if err != nil {
		return nil, err
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = time.Second
	eb.RandomizationFactor = 0
	eb.Multiplier = 2
	eb.MaxInterval = config.ConnectionTimeout / 4
	eb.MaxElapsedTime = config.ConnectionTimeout

	err = backoff.Retry(func() error {
		return db.Ping()
	}, eb)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open sql connection: %w", err)
	}
	return db, nil
}
