package storage

import (
	"fmt"

	"pingerconf/internal/providers"
	"pingerconf/internal/structures"
)

// NewDocumentStore builds the store selected by storage.driver.
func NewDocumentStore(conf *structures.Config, logger providers.Logger) (DocumentStore, error) {
	switch conf.Storage.Driver {
	case "", "file":
		if conf.Storage.FilePath == "" {
			return nil, fmt.Errorf("storage.filePath is required for the file driver")
		}
		compressor, err := NewCompressor(conf.Storage.Compression)
		if err != nil {
			return nil, err
		}
		logger.Infof(providers.TypeApp, "Using file document store %s (compression=%s)", conf.Storage.FilePath, conf.Storage.Compression)
		return NewFileStore(conf.Storage.FilePath, compressor, logger), nil
	case "redis":
		store, err := NewRedisStore(conf.Storage.RedisURL, conf.Storage.RedisKey)
		if err != nil {
			return nil, err
		}
		logger.Infof(providers.TypeApp, "Using redis document store")
		return store, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", conf.Storage.Driver)
	}
}
