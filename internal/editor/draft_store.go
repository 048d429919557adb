package editor

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/atomic"

	"pingerconf/internal/models"
)

var (
	ErrNotLoaded    = errors.New("draft not loaded")
	ErrSaveInFlight = errors.New("save already in flight")
)

// RecordGateway reads and persists single user records.
type RecordGateway interface {
	FetchRecord(ctx context.Context, userID string) (models.UserRecord, error)
	SaveRecord(ctx context.Context, userID string, rec models.UserRecord) error
}

// DraftStore owns one user's edit session: the editable current record and
// the baseline it was loaded from or last saved as.
type DraftStore struct {
	mu       sync.RWMutex
	gateway  RecordGateway
	userID   string
	loaded   bool
	current  models.UserRecord
	baseline models.UserRecord
	dirty    bool

	saving   atomic.Bool
	lastUsed atomic.Int64
	now      func() time.Time
}

func NewDraftStore(gateway RecordGateway) *DraftStore {
	d := &DraftStore{
		gateway: gateway,
		now:     time.Now,
	}
	d.touch()
	return d
}

func (d *DraftStore) touch() {
	d.lastUsed.Store(d.now().UnixNano())
}

// LastUsed reports the time of the last load, edit or save.
func (d *DraftStore) LastUsed() time.Time {
	return time.Unix(0, d.lastUsed.Load())
}

func (d *DraftStore) UserID() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.userID
}

// Load fetches the record of userID, or an empty one for a new user, and
// makes it both the current and the baseline state.
func (d *DraftStore) Load(ctx context.Context, userID string) (models.UserRecord, error) {
	rec, err := d.gateway.FetchRecord(ctx, userID)
	if err != nil {
		return models.UserRecord{}, err
	}
	rec.Normalize()

	d.mu.Lock()
	defer d.mu.Unlock()
	d.userID = userID
	d.current = rec
	d.baseline = rec.Clone()
	d.dirty = false
	d.loaded = true
	d.touch()
	return rec.Clone(), nil
}

// Apply runs m against the current record and replaces it with the result.
// A failing mutator leaves the draft untouched.
func (d *DraftStore) Apply(m Mutator) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.loaded {
		return ErrNotLoaded
	}
	next, err := m(d.current)
	if err != nil {
		return err
	}
	d.current = next
	d.dirty = !d.current.Equal(d.baseline)
	d.touch()
	return nil
}

func (d *DraftStore) IsDirty() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dirty
}

// IsSaving reports whether a save is in flight.
func (d *DraftStore) IsSaving() bool {
	return d.saving.Load()
}

// Commit makes the current record the new baseline.
func (d *DraftStore) Commit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.baseline = d.current.Clone()
	d.dirty = false
}

func (d *DraftStore) Current() models.UserRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.current.Clone()
}

func (d *DraftStore) Baseline() models.UserRecord {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.baseline.Clone()
}

// Save persists the current record through the gateway. Only one save may
// be in flight; edits applied while it runs stay dirty afterwards.
func (d *DraftStore) Save(ctx context.Context) error {
	if !d.saving.CompareAndSwap(false, true) {
		return ErrSaveInFlight
	}
	defer d.saving.Store(false)

	d.mu.RLock()
	if !d.loaded {
		d.mu.RUnlock()
		return ErrNotLoaded
	}
	userID := d.userID
	snapshot := d.current.Clone()
	d.mu.RUnlock()

	if err := d.gateway.SaveRecord(ctx, userID, snapshot); err != nil {
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.baseline = snapshot
	d.dirty = !d.current.Equal(d.baseline)
	d.touch()
	return nil
}
