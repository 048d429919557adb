package editor

import (
	"sync"
	"time"

	"github.com/roylee0704/gron"

	"pingerconf/internal/editor/interfaces"
	"pingerconf/internal/providers"
	"pingerconf/internal/structures"
)

const (
	defaultIdleTTL       = 30 * time.Minute
	defaultDirtyIdleTTL  = 24 * time.Hour
	defaultSweepInterval = time.Minute
)

// Scheduler periodically drops drafts that nobody touched for a while.
type Scheduler struct {
	config   *structures.Config
	logger   providers.Logger
	registry *Registry
	cron     *gron.Cron
	opsMu    sync.Mutex
}

func (s *Scheduler) idleTTL() time.Duration {
	if s.config.Drafts.IdleTTL > 0 {
		return s.config.Drafts.IdleTTL
	}
	return defaultIdleTTL
}

// dirtyIdleTTL is never shorter than idleTTL.
func (s *Scheduler) dirtyIdleTTL() time.Duration {
	ttl := s.config.Drafts.DirtyIdleTTL
	if ttl <= 0 {
		ttl = defaultDirtyIdleTTL
	}
	if idle := s.idleTTL(); ttl < idle {
		return idle
	}
	return ttl
}

func (s *Scheduler) sweepInterval() time.Duration {
	if s.config.Drafts.SweepInterval > 0 {
		return s.config.Drafts.SweepInterval
	}
	return defaultSweepInterval
}

// Sweep runs one pass immediately.
func (s *Scheduler) Sweep() int {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	dropped := s.registry.Sweep(s.idleTTL(), s.dirtyIdleTTL())
	for _, d := range dropped {
		if d.Dirty {
			s.logger.Warnf(providers.TypeApp, "Dropped idle draft of user %s with unsaved edits", d.UserID)
			continue
		}
		s.logger.Debugf(providers.TypeApp, "Dropped idle draft of user %s", d.UserID)
	}
	if len(dropped) > 0 {
		s.logger.Infof(providers.TypeApp, "Dropped %d idle drafts, %d left", len(dropped), s.registry.Len())
	}
	return len(dropped)
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.sweepInterval()), func() {
		s.Sweep()
	})
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func NewScheduler(config *structures.Config, logger providers.Logger, registry *Registry) interfaces.SchedulerInterface {
	return &Scheduler{
		config:   config,
		logger:   logger,
		registry: registry,
	}
}
