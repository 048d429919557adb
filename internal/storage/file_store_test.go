package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingerconf/internal/testutil"
)

func TestFileStore_MissingFileIsEmpty(t *testing.T) {
	logger := &testutil.MockLogger{}
	s := NewFileStore(filepath.Join(t.TempDir(), "configs.json"), plainCompression{}, logger)

	data, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, data)
	assert.Equal(t, 1, logger.Count("warn"))
}

func TestFileStore_PutGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "configs.json")
	s := NewFileStore(path, plainCompression{}, &testutil.MockLogger{})

	require.NoError(t, s.Put(context.Background(), []byte(`{"u":{}}`)))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"u":{}}`, string(raw))

	data, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"u":{}}`, string(data))

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must not survive a write")
}

func TestFileStore_OverwriteReplacesContent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs.json")
	s := NewFileStore(path, plainCompression{}, &testutil.MockLogger{})

	require.NoError(t, s.Put(context.Background(), []byte(`{"a":{},"b":{}}`)))
	require.NoError(t, s.Put(context.Background(), []byte(`{}`)))

	data, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}

func TestFileStore_Zstd(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "configs.json.zst")
	s := NewFileStore(path, c, &testutil.MockLogger{})
	defer s.Close()

	doc := []byte(`{"u":{"negative_keywords":["broken","broken","broken","broken"]}}`)
	require.NoError(t, s.Put(context.Background(), doc))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, doc, raw)

	data, err := s.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, doc, data)
}

func TestFileStore_CompressError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs.json")
	comp := &testutil.MockCompressor{CompressFn: func([]byte) ([]byte, error) { return nil, testutil.ErrInjected }}
	s := NewFileStore(path, comp, &testutil.MockLogger{})

	assert.ErrorIs(t, s.Put(context.Background(), []byte(`{}`)), testutil.ErrInjected)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_UnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	s := NewFileStore(filepath.Join(blocker, "configs.json"), plainCompression{}, &testutil.MockLogger{})
	assert.Error(t, s.Put(context.Background(), []byte(`{}`)))
}
