package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/ethix-logistics/internal/domain/storefront"
	"github.com/yanqian/ethix-logistics/internal/infra/config"
	"github.com/yanqian/ethix-logistics/pkg/logger"
)

func TestRunShutsDownOnCancel(t *testing.T) {
	cfg := config.Default()
	cfg.HTTP.Address = "127.0.0.1:0"
	store := storefront.NewContainer(memStore{}, logger.Discard())
	server := &http.Server{Addr: cfg.HTTP.Address, Handler: http.NotFoundHandler()}
	app := NewApp(cfg, logger.Discard(), store, server)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestRunFailsWhenSnapshotUnreadable(t *testing.T) {
	cfg := config.Default()
	store := storefront.NewContainer(memStore{err: errors.New("connection refused")}, logger.Discard())
	app := NewApp(cfg, logger.Discard(), store, &http.Server{Addr: "127.0.0.1:0"})

	err := app.Run(context.Background())
	require.ErrorContains(t, err, "load storefront state")
}

type memStore struct {
	err error
}

func (m memStore) Get(context.Context, string) ([]byte, bool, error) { return nil, false, m.err }
func (m memStore) Put(context.Context, string, []byte) error         { return m.err }
func (m memStore) Delete(context.Context, string) error              { return m.err }
