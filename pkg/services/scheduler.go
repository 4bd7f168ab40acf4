package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/kerbaras/jeffbot/pkg/data"
	"github.com/kerbaras/jeffbot/pkg/metrics"
	"github.com/kerbaras/jeffbot/pkg/sources"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SeriesSource hands out a point-in-time copy of the tracked list.
type SeriesSource interface {
	Snapshot() []data.TrackedSeries
}

// Scheduler runs the daily release check.
type Scheduler struct {
	catalog   sources.Catalog
	series    SeriesSource
	messenger Messenger
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
	metrics   *metrics.Collectors

	mu   sync.Mutex
	cron *cron.Cron
}

func NewScheduler(catalog sources.Catalog, series SeriesSource, messenger Messenger, loc *time.Location, logger *zap.Logger, m *metrics.Collectors) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	return &Scheduler{
		catalog:   catalog,
		series:    series,
		messenger: messenger,
		loc:       loc,
		now:       time.Now,
		logger:    logger,
		metrics:   m,
	}
}

// Schedule installs the job for spec, replacing any previously installed
// one, so calling it repeatedly never leaves more than one timer active.
func (s *Scheduler) Schedule(ctx context.Context, spec string) error {
	cronLog := cronLogger{s.logger.Sugar()}
	c := cron.New(
		cron.WithLocation(s.loc),
		cron.WithLogger(cronLog),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)
	if _, err := c.AddFunc(spec, func() { s.RunOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	s.mu.Lock()
	previous := s.cron
	s.cron = c
	s.mu.Unlock()

	if previous != nil {
		previous.Stop()
	}
	c.Start()

	next := c.Entries()[0].Next
	s.logger.Info("Release check scheduled",
		zap.String("spec", spec),
		zap.String("timezone", s.loc.String()),
		zap.Time("next", next))
	return nil
}

// Entries is the number of installed jobs.
func (s *Scheduler) Entries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cron == nil {
		return 0
	}
	return len(s.cron.Entries())
}

// Stop removes the job and waits for a running check to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	c := s.cron
	s.cron = nil
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
}

// RunOnce performs a single release check and returns how many
// announcements were delivered.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	s.metrics.Run()
	today := s.now().In(s.loc)
	series := s.series.Snapshot()

	s.logger.Info("Running release check",
		zap.Int("series", len(series)),
		zap.String("date", today.Format(time.DateOnly)))

	comics := collectWindow(ctx, s.catalog, series, data.ThisWeek, s.logger, s.metrics)

	delivered := 0
	for i := range comics {
		comic := &comics[i]
		if !comic.OnSaleOn(today) {
			continue
		}
		err := s.messenger.Announce(ctx, Announcement{Content: AnnouncementText(comic), Comic: comic})
		if err != nil {
			s.metrics.DeliveryFailed()
			s.logger.Error("Failed to deliver announcement",
				zap.String("title", comic.Title),
				zap.Error(err))
			continue
		}
		s.metrics.Announced()
		delivered++
	}
	return delivered
}

type cronLogger struct {
	l *zap.SugaredLogger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.l.Debugw(msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.l.Errorw(msg, append(keysAndValues, "error", err)...)
}
