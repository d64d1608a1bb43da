package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/filekeeper/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiskStore(t *testing.T) *DiskStore {
	t.Helper()
	s := NewDiskStore(filepath.Join(t.TempDir(), "blobs"))
	require.NoError(t, s.Open(context.Background()))
	return s
}

func TestDiskStore_SaveAndLoad(t *testing.T) {
	s := newDiskStore(t)
	ctx := context.Background()

	name, err := s.Save(ctx, []byte("hello"))
	require.NoError(t, err)
	require.NotEmpty(t, name)

	data, err := s.Load(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)
}

func TestDiskStore_NamesAreUnique(t *testing.T) {
	s := newDiskStore(t)
	ctx := context.Background()

	n1, err := s.Save(ctx, []byte("a"))
	require.NoError(t, err)
	n2, err := s.Save(ctx, []byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, n1, n2)
}

func TestDiskStore_LoadUnknownName(t *testing.T) {
	s := newDiskStore(t)

	_, err := s.Load(context.Background(), "no-such-blob")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDiskStore_LoadRejectsPathEscape(t *testing.T) {
	s := newDiskStore(t)

	_, err := s.Load(context.Background(), "../secret")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestDiskStore_OpenIsIdempotent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "blobs")
	s := NewDiskStore(root)
	ctx := context.Background()

	require.NoError(t, s.Open(ctx))
	require.NoError(t, s.Open(ctx))
	require.NoError(t, s.Ping(ctx))
}

func TestDiskStore_NoTempFileLeftBehind(t *testing.T) {
	root := filepath.Join(t.TempDir(), "blobs")
	s := NewDiskStore(root)
	ctx := context.Background()
	require.NoError(t, s.Open(ctx))

	_, err := s.Save(ctx, []byte("payload"))
	require.NoError(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}
