package editor

import (
	"context"
	"sync"
	"time"

	"pingerconf/internal/providers"
)

// SweptDraft describes a draft dropped by Sweep.
type SweptDraft struct {
	UserID string
	Dirty  bool
}

// Registry keeps one DraftStore per user.
type Registry struct {
	mu      sync.Mutex
	gateway RecordGateway
	metrics providers.MetricsProviderInterface
	drafts  map[string]*DraftStore
	now     func() time.Time
}

func NewRegistry(gateway RecordGateway, metrics providers.MetricsProviderInterface) *Registry {
	return &Registry{
		gateway: gateway,
		metrics: metrics,
		drafts:  make(map[string]*DraftStore),
		now:     time.Now,
	}
}

// Get returns the draft of userID, loading it on first use.
func (r *Registry) Get(ctx context.Context, userID string) (*DraftStore, error) {
	r.mu.Lock()
	d, ok := r.drafts[userID]
	r.mu.Unlock()
	if ok {
		return d, nil
	}

	d = NewDraftStore(r.gateway)
	d.now = r.now
	if _, err := d.Load(ctx, userID); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.drafts[userID]; ok {
		return existing, nil
	}
	r.drafts[userID] = d
	r.metrics.SetDraftsOpen(len(r.drafts))
	return d, nil
}

// Reload discards the draft of userID and loads a fresh one.
func (r *Registry) Reload(ctx context.Context, userID string) (*DraftStore, error) {
	r.Discard(userID)
	return r.Get(ctx, userID)
}

func (r *Registry) Discard(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, userID)
	r.metrics.SetDraftsOpen(len(r.drafts))
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.drafts)
}

// Sweep drops clean drafts unused for longer than idle and drafts with
// unsaved edits unused for longer than dirtyIdle. Drafts with a save in
// flight are kept.
func (r *Registry) Sweep(idle, dirtyIdle time.Duration) []SweptDraft {
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	var dropped []SweptDraft
	for id, d := range r.drafts {
		if d.IsSaving() {
			continue
		}
		dirty := d.IsDirty()
		cutoff := now.Add(-idle)
		if dirty {
			cutoff = now.Add(-dirtyIdle)
		}
		if d.LastUsed().After(cutoff) {
			continue
		}
		delete(r.drafts, id)
		dropped = append(dropped, SweptDraft{UserID: id, Dirty: dirty})
	}
	r.metrics.SetDraftsOpen(len(r.drafts))
	return dropped
}
