package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgemunganga/pizza-pos/internal/modules/config"
	"github.com/georgemunganga/pizza-pos/pkg/env"
)

func TestOpenFileDriver(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(context.Background(), &env.Config{StoreDriver: env.DriverFile, DataDir: dir}, nil)
	require.NoError(t, err)
	defer s.Close()

	assert.Nil(t, s.DB)
	require.NoError(t, s.Blobs.Put(context.Background(), config.BlobKey, []byte(`{}`)))
	assert.FileExists(t, dir+"/"+config.BlobKey+".json")
}

func TestOpenMemoryDriverUsesMemoryRepositories(t *testing.T) {
	s, err := Open(context.Background(), &env.Config{StoreDriver: env.DriverMemory}, nil)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Blobs.Get(context.Background(), config.BlobKey)
	assert.ErrorIs(t, err, config.ErrBlobNotFound)
	assert.NotNil(t, s.OrderRepository())
	assert.NotNil(t, s.InventoryRepository())
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &env.Config{StoreDriver: "etcd"}, nil)
	assert.Error(t, err)
}
