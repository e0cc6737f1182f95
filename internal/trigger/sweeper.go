package trigger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// DefaultSpec runs the sweep at the top of every hour.
const DefaultSpec = "@hourly"

// SweepFunc performs one sweep at now.
type SweepFunc func(ctx context.Context, now time.Time) error

// Sweeper runs a SweepFunc once when started and then on a cron schedule.
// Overlapping runs are skipped rather than queued.
type Sweeper struct {
	spec   string
	run    SweepFunc
	logger logrus.FieldLogger
	clock  func() time.Time

	mu      sync.Mutex
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	running bool
}

// SweeperOption configures a Sweeper.
type SweeperOption func(*Sweeper)

// WithClock overrides the time source passed to each sweep.
func WithClock(clock func() time.Time) SweeperOption {
	return func(s *Sweeper) { s.clock = clock }
}

// NewSweeper validates spec and returns a stopped sweeper.
func NewSweeper(spec string, run SweepFunc, logger logrus.FieldLogger, opts ...SweeperOption) (*Sweeper, error) {
	if spec == "" {
		spec = DefaultSpec
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("parsing sweep schedule %q: %w", spec, err)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Sweeper{
		spec:   spec,
		run:    run,
		logger: logger.WithField("component", "sweeper"),
		clock:  func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start performs an immediate sweep, then schedules the rest. Cancelling ctx
// stops the schedule the same way Stop does.
func (s *Sweeper) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("starting sweeper: already running")
	}
	runCtx, cancel := context.WithCancel(ctx)
	cronLog := cron.PrintfLogger(s.logger)
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)
	if _, err := c.AddFunc(s.spec, func() { s.tick(runCtx) }); err != nil {
		s.mu.Unlock()
		cancel()
		return fmt.Errorf("scheduling sweep: %w", err)
	}
	s.cron, s.ctx, s.cancel, s.running = c, runCtx, cancel, true
	s.mu.Unlock()

	s.tick(runCtx)
	c.Start()
	s.logger.WithField("spec", s.spec).Info("sweeper started")

	go func() {
		<-runCtx.Done()
		s.Stop()
	}()
	return nil
}

// Stop halts the schedule and waits for an in-flight sweep to finish. It is
// safe to call more than once.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	c, cancel := s.cron, s.cancel
	s.running = false
	s.mu.Unlock()

	<-c.Stop().Done()
	cancel()
	s.logger.Info("sweeper stopped")
}

// Running reports whether the schedule is active.
func (s *Sweeper) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Sweeper) tick(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	now := s.clock()
	if err := s.run(ctx, now); err != nil {
		s.logger.WithError(err).WithField("at", now.Format(time.RFC3339)).Error("sweep failed")
	}
}
