package editor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingerconf/internal/structures"
	"pingerconf/internal/testutil"
)

func TestScheduler_Defaults(t *testing.T) {
	s := NewScheduler(&structures.Config{}, &testutil.MockLogger{}, NewRegistry(testutil.NewMockGateway(), &testutil.MockMetrics{})).(*Scheduler)

	assert.Equal(t, defaultIdleTTL, s.idleTTL())
	assert.Equal(t, defaultDirtyIdleTTL, s.dirtyIdleTTL())
	assert.Equal(t, defaultSweepInterval, s.sweepInterval())
}

func TestScheduler_SweepDropsIdleDrafts(t *testing.T) {
	now := time.Unix(10_000, 0)
	registry := NewRegistry(testutil.NewMockGateway(), &testutil.MockMetrics{})
	registry.now = func() time.Time { return now }
	_, err := registry.Get(context.Background(), "u1")
	require.NoError(t, err)

	conf := &structures.Config{Drafts: structures.DraftConfig{IdleTTL: time.Minute}}
	logger := &testutil.MockLogger{}
	s := NewScheduler(conf, logger, registry).(*Scheduler)

	assert.Equal(t, 0, s.Sweep())
	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 0, registry.Len())
	assert.Equal(t, 1, logger.Count("info"))
}

func TestScheduler_DirtyIdleTTLNotShorterThanIdle(t *testing.T) {
	conf := &structures.Config{Drafts: structures.DraftConfig{IdleTTL: time.Hour, DirtyIdleTTL: time.Minute}}
	s := NewScheduler(conf, &testutil.MockLogger{}, NewRegistry(testutil.NewMockGateway(), &testutil.MockMetrics{})).(*Scheduler)

	assert.Equal(t, time.Hour, s.dirtyIdleTTL())
}

func TestScheduler_WarnsWhenDroppingUnsavedEdits(t *testing.T) {
	now := time.Unix(10_000, 0)
	registry := NewRegistry(testutil.NewMockGateway(), &testutil.MockMetrics{})
	registry.now = func() time.Time { return now }
	d, err := registry.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.NoError(t, d.Apply(upsert("gpu", 5)))

	conf := &structures.Config{Drafts: structures.DraftConfig{IdleTTL: time.Minute, DirtyIdleTTL: time.Hour}}
	logger := &testutil.MockLogger{}
	s := NewScheduler(conf, logger, registry).(*Scheduler)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 0, s.Sweep())
	assert.Equal(t, 1, registry.Len())

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, s.Sweep())
	assert.Equal(t, 1, logger.Count("warn"))
}

func TestScheduler_InitStop(t *testing.T) {
	conf := &structures.Config{Drafts: structures.DraftConfig{SweepInterval: time.Hour}}
	s := NewScheduler(conf, &testutil.MockLogger{}, NewRegistry(testutil.NewMockGateway(), &testutil.MockMetrics{}))

	s.Init()
	s.Stop()
}

func TestScheduler_StopWithoutInit(t *testing.T) {
	s := NewScheduler(&structures.Config{}, &testutil.MockLogger{}, NewRegistry(testutil.NewMockGateway(), &testutil.MockMetrics{}))
	assert.NotPanics(t, s.Stop)
}
