package cmd

import (
	"io"
	"time"

	"github.com/kerbaras/jeffbot/pkg/data"
	"github.com/kerbaras/jeffbot/pkg/metrics"
	"github.com/kerbaras/jeffbot/pkg/services"
	"github.com/kerbaras/jeffbot/pkg/sources"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// runtime holds what every command builds from the loaded config.
type runtime struct {
	store    data.SeriesStore
	registry *data.Registry
	catalog  *sources.Marvel
	sessions *services.SessionManager
	loc      *time.Location
	idle     time.Duration

	promRegistry *prometheus.Registry
	metrics      *metrics.Collectors
}

func newRuntime(requireBot bool) (*runtime, error) {
	if err := cfg.Validate(requireBot); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	idle, err := cfg.IdleTimeout()
	if err != nil {
		return nil, err
	}

	store, err := data.OpenStore(cfg.Store.Driver, cfg.Store.Path)
	if err != nil {
		return nil, err
	}
	registry, err := data.OpenRegistry(store)
	if err != nil {
		closeStore(store)
		return nil, err
	}

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(promRegistry)

	logger.Debug("Runtime ready",
		zap.String("store", cfg.Store.Driver),
		zap.String("path", cfg.Store.Path),
		zap.Int("series", len(registry.List())),
		zap.String("timezone", loc.String()))

	return &runtime{
		store:        store,
		registry:     registry,
		catalog:      sources.NewMarvel(cfg.Marvel.BaseURL, cfg.Marvel.PublicKey, cfg.Marvel.PrivateKey),
		sessions:     services.NewSessionManager(idle, logger, m),
		loc:          loc,
		idle:         idle,
		promRegistry: promRegistry,
		metrics:      m,
	}, nil
}

func (r *runtime) controller() *services.Controller {
	return services.NewController(r.catalog, r.registry, r.sessions, logger, r.metrics)
}

func (r *runtime) scheduler(messenger services.Messenger) *services.Scheduler {
	return services.NewScheduler(r.catalog, r.registry, messenger, r.loc, logger, r.metrics)
}

// Close waits for browsing sessions to finish their final render and
// releases the store.
func (r *runtime) Close() {
	r.sessions.Wait()
	closeStore(r.store)
}

func closeStore(store data.SeriesStore) {
	if c, ok := store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			logger.Warn("Failed to close store", zap.Error(err))
		}
	}
}
