package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/ethix-logistics/internal/infra/blobstore"
	"github.com/yanqian/ethix-logistics/internal/infra/config"
	"github.com/yanqian/ethix-logistics/pkg/logger"
)

func TestProvideBlobStoreCleanupClosesBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = config.BackendSQLite
	cfg.Storage.SQLite.Path = filepath.Join(t.TempDir(), "ethix.db")

	store, cleanup := provideBlobStore(cfg, logger.Discard())
	require.IsType(t, &blobstore.SQLiteStore{}, store)
	require.NoError(t, store.Put(context.Background(), "cart", []byte("[]")))

	cleanup()
	require.Error(t, store.Put(context.Background(), "cart", []byte("[]")))
}

func TestProvideBlobStoreFallsBackToMemory(t *testing.T) {
	cfg := config.Default()
	cfg.Storage.Backend = "tape"

	store, cleanup := provideBlobStore(cfg, logger.Discard())
	require.IsType(t, &blobstore.MemoryStore{}, store)
	require.NotNil(t, cleanup)
	cleanup()
}
