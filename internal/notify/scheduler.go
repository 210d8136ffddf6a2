package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"nuovo/config"
	"nuovo/internal/delivery"
	"nuovo/internal/domain/lifecycle"

	"go.uber.org/fx"
)

// SchedulerParams holds dependencies for the digest scheduler.
type SchedulerParams struct {
	fx.In

	Lc      fx.Lifecycle
	Cfg     *config.Config
	Logger  *slog.Logger
	Service *Service
}

// scheduler drives digest passes on a fixed interval. The first pass runs as
// soon as the scheduler starts.
type scheduler struct {
	cfg     *config.Config
	logger  *slog.Logger
	service *Service

	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
	done    chan struct{}
}

// NewScheduler creates the background digest delivery.
func NewScheduler(params SchedulerParams) delivery.Delivery {
	s := &scheduler{
		cfg:     params.Cfg,
		logger:  params.Logger,
		service: params.Service,
		done:    make(chan struct{}),
	}

	params.Lc.Append(fx.Hook{
		OnStop: s.stop,
	})

	return s
}

// Serve runs digest passes until the context is cancelled. A failed pass is
// logged and the ticker keeps going.
func (s *scheduler) Serve(ctx context.Context) error {
	defer close(s.done)

	if !s.cfg.Notify.Enabled {
		s.logger.Info("notification scheduler disabled")

		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()

		return nil
	}
	s.cancel = cancel
	s.mu.Unlock()

	interval := s.cfg.Notify.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	s.logger.Info("starting notification scheduler", slog.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if _, err := s.service.RunPass(runCtx); err != nil {
			s.logger.Error("notification pass error", slog.Any("error", err))
		}

		select {
		case <-runCtx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// stop gracefully shuts down the scheduler. A stop that arrives before
// Serve runs keeps the loop from ever starting.
func (s *scheduler) stop(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = true
	cancel := s.cancel
	s.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	shutdownCtx, cancelWait := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancelWait()

	s.logger.Info("Shutting down notification scheduler")

	select {
	case <-s.done:
		return nil
	case <-shutdownCtx.Done():
		return shutdownCtx.Err()
	}
}
