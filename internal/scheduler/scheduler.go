package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/terraincognita07/ovumcy/internal/logging"
	"github.com/terraincognita07/ovumcy/internal/services"
)

const TriggerSchedule = "schedule"

const defaultRunTimeout = 30 * time.Minute

type Recalculator interface {
	RecalculateAll(ctx context.Context, now time.Time, options services.RecalculationOptions) (services.RecalculationSummary, error)
}

// RecalculationScheduler refreshes statistics and predictions for every user
// on a cron schedule. Runs never overlap.
type RecalculationScheduler struct {
	cronEngine   *cron.Cron
	recalculator Recalculator
	spec         string
	timeout      time.Duration
	now          func() time.Time

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

func NewRecalculationScheduler(recalculator Recalculator, spec string, location *time.Location) *RecalculationScheduler {
	if location == nil {
		location = time.UTC
	}
	logger := cronLogger{}
	return &RecalculationScheduler{
		cronEngine: cron.New(
			cron.WithLocation(location),
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
		recalculator: recalculator,
		spec:         spec,
		timeout:      defaultRunTimeout,
		now:          time.Now,
	}
}

// Start registers the job and starts the cron engine. An invalid spec is
// returned as an error and nothing is started.
func (s *RecalculationScheduler) Start() error {
	s.mu.Lock()
	s.ctx, s.cancel = context.WithCancel(context.Background())
	s.mu.Unlock()

	if _, err := s.cronEngine.AddFunc(s.spec, func() {
		s.RunOnce(s.runContext())
	}); err != nil {
		return err
	}

	s.cronEngine.Start()
	logging.Info().Str("schedule", s.spec).Msg("recalculation scheduler started")
	return nil
}

// RunOnce performs one scheduled recalculation. Insights are not regenerated
// here since every run would add duplicates.
func (s *RecalculationScheduler) RunOnce(ctx context.Context) {
	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	summary, err := s.recalculator.RecalculateAll(runCtx, s.now(), services.RecalculationOptions{Trigger: TriggerSchedule})
	if err != nil {
		logging.Error().Err(err).Int("users", summary.Users).Msg("scheduled recalculation aborted")
	}
}

// Stop cancels a running job and waits for it to return.
func (s *RecalculationScheduler) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	<-s.cronEngine.Stop().Done()
	logging.Info().Msg("recalculation scheduler stopped")
}

func (s *RecalculationScheduler) runContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return context.Background()
	}
	return s.ctx
}

type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logging.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logging.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
