package services

import (
	"bytes"
	"context"
	"sync"
	"time"

	"pingerconf/internal/models"
	"pingerconf/internal/providers"
	"pingerconf/internal/storage"
)

const DocumentCacheKey = "document"

var emptyDocument = []byte("{}")

type ConfigServiceInterface interface {
	FetchDocument(ctx context.Context) (models.Document, error)
	DocumentBytes(ctx context.Context) ([]byte, error)
	ReplaceDocument(ctx context.Context, doc models.Document) error
	FetchRecord(ctx context.Context, userID string) (models.UserRecord, error)
	SaveRecord(ctx context.Context, userID string, rec models.UserRecord) error
	CountUsers(ctx context.Context) (int, error)
}

// ConfigService reconciles one user's record with the shared document.
// Read-merge-write cycles are serialized within this process; separate
// processes writing the same store still race and the last write wins.
// Cache fills hold the read lock so a write cannot land between reading
// the store and caching what was read.
type ConfigService struct {
	store   storage.DocumentStore
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
	writeMu sync.RWMutex
}

func NewConfigService(store storage.DocumentStore, cache providers.CacheProviderInterface, metrics providers.MetricsProviderInterface, logger providers.Logger) ConfigServiceInterface {
	return &ConfigService{
		store:   store,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

func (cs *ConfigService) read(ctx context.Context) ([]byte, error) {
	start := time.Now()
	data, err := cs.store.Get(ctx)
	cs.metrics.ObservePersistenceDuration("fetch", time.Since(start))
	if err != nil {
		return nil, &models.PersistenceError{Op: "fetch document", Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return emptyDocument, nil
	}
	return data, nil
}

func (cs *ConfigService) write(ctx context.Context, doc models.Document) error {
	data, err := doc.Encode()
	if err != nil {
		return &models.PersistenceError{Op: "encode document", Err: err}
	}
	start := time.Now()
	err = cs.store.Put(ctx, data)
	cs.metrics.ObservePersistenceDuration("write", time.Since(start))
	cs.cache.Del(DocumentCacheKey)
	if err != nil {
		return &models.PersistenceError{Op: "write document", Err: err}
	}
	cs.metrics.SetUsersTotal(len(doc))
	return nil
}

// FetchDocument always reads the store, never the cache.
func (cs *ConfigService) FetchDocument(ctx context.Context) (models.Document, error) {
	data, err := cs.read(ctx)
	if err != nil {
		return nil, err
	}
	doc, err := models.DecodeDocument(data)
	if err != nil {
		return nil, &models.PersistenceError{Op: "decode document", Err: err}
	}
	return doc, nil
}

// DocumentBytes serves the document as stored, from cache when possible.
func (cs *ConfigService) DocumentBytes(ctx context.Context) ([]byte, error) {
	if data, ok := cs.cache.Get(DocumentCacheKey); ok {
		return data, nil
	}

	cs.writeMu.RLock()
	defer cs.writeMu.RUnlock()
	data, err := cs.read(ctx)
	if err != nil {
		return nil, err
	}
	cs.cache.Set(DocumentCacheKey, data)
	return data, nil
}

// ReplaceDocument overwrites the whole document.
func (cs *ConfigService) ReplaceDocument(ctx context.Context, doc models.Document) error {
	cs.writeMu.Lock()
	defer cs.writeMu.Unlock()

	if err := cs.write(ctx, doc); err != nil {
		cs.logger.Errorf(providers.TypePost, "Error saving document: %s", err)
		return err
	}
	cs.logger.Infof(providers.TypePost, "Document replaced (%d users)", len(doc))
	return nil
}

// FetchRecord returns the stored record of userID, or an empty record.
func (cs *ConfigService) FetchRecord(ctx context.Context, userID string) (models.UserRecord, error) {
	doc, err := cs.FetchDocument(ctx)
	if err != nil {
		return models.UserRecord{}, err
	}
	rec, err := doc.RecordOrEmpty(userID)
	if err != nil {
		return models.UserRecord{}, &models.PersistenceError{Op: "decode record", Err: err}
	}
	return rec, nil
}

// SaveRecord re-reads the document, rejects channel ids that are not
// canonical, replaces the entry of userID and writes the whole document
// back. Other users' entries are written exactly as they were read.
func (cs *ConfigService) SaveRecord(ctx context.Context, userID string, rec models.UserRecord) error {
	cs.writeMu.Lock()
	defer cs.writeMu.Unlock()

	doc, err := cs.FetchDocument(ctx)
	if err != nil {
		cs.metrics.IncSaves("error")
		return err
	}

	if err := models.ValidateChannelKeywords(rec.ChannelKeywords); err != nil {
		cs.metrics.IncSaves("invalid")
		cs.logger.Warnf(providers.TypePost, "Rejected save of user %s: %s", userID, err)
		return err
	}

	if err := doc.SetRecord(userID, rec); err != nil {
		cs.metrics.IncSaves("error")
		return &models.PersistenceError{Op: "encode record", Err: err}
	}

	if err := cs.write(ctx, doc); err != nil {
		cs.metrics.IncSaves("error")
		cs.logger.Errorf(providers.TypePost, "Error saving record of user %s: %s", userID, err)
		return err
	}

	cs.metrics.IncSaves("ok")
	cs.logger.Infof(providers.TypePost, "Saved record of user %s", userID)
	return nil
}

func (cs *ConfigService) CountUsers(ctx context.Context) (int, error) {
	doc, err := cs.FetchDocument(ctx)
	if err != nil {
		return 0, err
	}
	return len(doc), nil
}
