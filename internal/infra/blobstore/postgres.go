package blobstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/ethix-logistics/internal/domain/storefront"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS storefront_snapshots (
		namespace  TEXT NOT NULL,
		key        TEXT NOT NULL,
		payload    BYTEA NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (namespace, key)
	)
`

// PostgresStore implements storefront.BlobStore using pgx.
type PostgresStore struct {
	pool      *pgxpool.Pool
	namespace string
}

// NewPostgresStore constructs the store and ensures its table exists.
func NewPostgresStore(ctx context.Context, pool *pgxpool.Pool, namespace string) (*PostgresStore, error) {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	return &PostgresStore{pool: pool, namespace: namespace}, nil
}

// Get implements storefront.BlobStore.
func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx, `
		SELECT payload
		FROM storefront_snapshots
		WHERE namespace = $1 AND key = $2
	`, s.namespace, key).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

// Put implements storefront.BlobStore.
func (s *PostgresStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO storefront_snapshots (namespace, key, payload, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (namespace, key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at
	`, s.namespace, key, data)
	return err
}

// Delete implements storefront.BlobStore.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `
		DELETE FROM storefront_snapshots
		WHERE namespace = $1 AND key = $2
	`, s.namespace, key)
	return err
}

var _ storefront.BlobStore = (*PostgresStore)(nil)
