package blobstore

import (
	"context"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/ethix-logistics/internal/domain/storefront"
)

// ValkeyStore persists snapshots using a Valkey-compatible database.
type ValkeyStore struct {
	client valkey.Client
	prefix string
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string) *ValkeyStore {
	if prefix == "" {
		prefix = "ethix"
	}
	return &ValkeyStore{client: client, prefix: prefix}
}

// Get implements storefront.BlobStore.
func (s *ValkeyStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.Do(ctx, s.client.B().Get().Key(s.key(key)).Build()).AsBytes()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

// Put implements storefront.BlobStore.
func (s *ValkeyStore) Put(ctx context.Context, key string, data []byte) error {
	return s.client.Do(ctx, s.client.B().Set().Key(s.key(key)).Value(valkey.BinaryString(data)).Build()).Error()
}

// Delete implements storefront.BlobStore.
func (s *ValkeyStore) Delete(ctx context.Context, key string) error {
	return s.client.Do(ctx, s.client.B().Del().Key(s.key(key)).Build()).Error()
}

func (s *ValkeyStore) key(name string) string {
	return s.prefix + ":" + name
}

var _ storefront.BlobStore = (*ValkeyStore)(nil)
