package storage

import (
	"context"
	"os"
	"path/filepath"

	"pingerconf/internal/providers"
)

// FileStore keeps the document in a single file. Writes go to a temporary
// file that is synced and renamed over the target, so readers never see a
// partial document.
type FileStore struct {
	path       string
	compressor CompressorInterface
	logger     providers.Logger
}

func NewFileStore(path string, compressor CompressorInterface, logger providers.Logger) *FileStore {
	return &FileStore{
		path:       path,
		compressor: compressor,
		logger:     logger,
	}
}

// Get returns nil data when the file does not exist yet.
func (f *FileStore) Get(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			f.logger.Warnf(providers.TypeApp, "Document %s not found, starting empty", f.path)
			return nil, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	return f.compressor.Decompress(data)
}

func (f *FileStore) Put(_ context.Context, data []byte) error {
	data, err := f.compressor.Compress(data)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}

	tmpFile := f.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, f.path)
}

func (f *FileStore) Close() error {
	f.compressor.Close()
	return nil
}
