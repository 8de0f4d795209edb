package blobstore

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/ethix-logistics/internal/domain/storefront"
	"github.com/yanqian/ethix-logistics/internal/infra/config"
)

// Open connects the configured backend. The returned cleanup releases any
// client it created and is safe to call on error paths.
func Open(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (storefront.BlobStore, func(), error) {
	noop := func() {}
	switch cfg.Backend {
	case config.BackendMemory, "":
		return NewMemoryStore(), noop, nil
	case config.BackendValkey:
		return openValkey(ctx, cfg)
	case config.BackendPostgres:
		return openPostgres(ctx, cfg)
	case config.BackendMinio:
		store, err := NewObjectStore(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.Region, cfg.Namespace, logger)
		if err != nil {
			return nil, noop, err
		}
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := store.EnsureBucket(pingCtx); err != nil {
			return nil, noop, fmt.Errorf("ensure bucket: %w", err)
		}
		return store, noop, nil
	case config.BackendSQLite:
		store, err := OpenSQLite(ctx, cfg.SQLite.Path, cfg.Namespace)
		if err != nil {
			return nil, noop, err
		}
		return store, func() { _ = store.Close() }, nil
	}
	return nil, noop, fmt.Errorf("unsupported storage backend %q", cfg.Backend)
}

func openValkey(ctx context.Context, cfg config.StorageConfig) (storefront.BlobStore, func(), error) {
	var (
		opt valkey.ClientOption
		err error
	)
	if strings.Contains(cfg.Valkey.Addr, "://") {
		opt, err = valkey.ParseURL(cfg.Valkey.Addr)
	} else {
		opt = valkey.ClientOption{InitAddress: []string{cfg.Valkey.Addr}}
	}
	if err != nil {
		return nil, func() {}, fmt.Errorf("parse valkey addr: %w", err)
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		return nil, func() {}, fmt.Errorf("create valkey client: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Do(pingCtx, client.B().Ping().Build()).Error(); err != nil {
		client.Close()
		return nil, func() {}, fmt.Errorf("valkey ping: %w", err)
	}
	return NewValkeyStore(client, cfg.Namespace), client.Close, nil
}

func openPostgres(ctx context.Context, cfg config.StorageConfig) (storefront.BlobStore, func(), error) {
	poolConfig, err := pgxpool.ParseConfig(strings.TrimSpace(cfg.Postgres.DSN))
	if err != nil {
		return nil, func() {}, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.Postgres.MaxConns
	}
	if cfg.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, func() {}, fmt.Errorf("create postgres pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, func() {}, fmt.Errorf("postgres ping: %w", err)
	}
	store, err := NewPostgresStore(pingCtx, pool, cfg.Namespace)
	if err != nil {
		pool.Close()
		return nil, func() {}, err
	}
	return store, pool.Close, nil
}
