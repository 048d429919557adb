package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	"pingerconf/internal/models"
	"pingerconf/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu     sync.Mutex
	Logs   []LogEntry
	Closed bool
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.Logs {
		if e.Level == level {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
}

var ErrInjected = errors.New("injected failure")

// MockDocumentStore implements storage.DocumentStore in memory.
type MockDocumentStore struct {
	mu       sync.Mutex
	Data     []byte
	GetErr   error
	PutErr   error
	GetCalls int
	PutCalls int
	Closed   bool
}

func (m *MockDocumentStore) Get(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls++
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	if m.Data == nil {
		return nil, nil
	}
	out := make([]byte, len(m.Data))
	copy(out, m.Data)
	return out, nil
}

func (m *MockDocumentStore) Put(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PutCalls++
	if m.PutErr != nil {
		return m.PutErr
	}
	m.Data = make([]byte, len(data))
	copy(m.Data, data)
	return nil
}

func (m *MockDocumentStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Bytes returns what was last written.
func (m *MockDocumentStore) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Data
}

// MockGateway keeps user records in a map. SaveHook, when set, runs before
// a save is recorded and may block to simulate a slow store.
type MockGateway struct {
	mu        sync.Mutex
	Records   map[string]models.UserRecord
	FetchErr  error
	SaveErr   error
	SaveHook  func()
	Fetches   int
	Saves     int
	LastSaved models.UserRecord
}

func NewMockGateway() *MockGateway {
	return &MockGateway{Records: make(map[string]models.UserRecord)}
}

func (m *MockGateway) FetchRecord(_ context.Context, userID string) (models.UserRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fetches++
	if m.FetchErr != nil {
		return models.UserRecord{}, m.FetchErr
	}
	rec, ok := m.Records[userID]
	if !ok {
		return models.NewEmptyRecord(), nil
	}
	return rec.Clone(), nil
}

func (m *MockGateway) SaveRecord(_ context.Context, userID string, rec models.UserRecord) error {
	if m.SaveHook != nil {
		m.SaveHook()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Saves++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Records[userID] = rec.Clone()
	m.LastSaved = rec.Clone()
	return nil
}

func (m *MockGateway) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Saves
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu          sync.Mutex
	Requests    int
	CacheHits   int
	CacheMisses int
	Saves       map[string]int
	Users       int
	Drafts      int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}

func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) ObservePersistenceDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncSaves(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Saves == nil {
		m.Saves = make(map[string]int)
	}
	m.Saves[result]++
}

func (m *MockMetrics) SetUsersTotal(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Users = count
}

func (m *MockMetrics) SetDraftsOpen(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Drafts = count
}

func (m *MockMetrics) SaveCount(result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Saves[result]
}

// MockCompressor implements storage.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() {
	m.Closed = true
}
