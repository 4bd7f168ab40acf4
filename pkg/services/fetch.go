package services

import (
	"context"
	"errors"

	"github.com/kerbaras/jeffbot/pkg/data"
	"github.com/kerbaras/jeffbot/pkg/metrics"
	"github.com/kerbaras/jeffbot/pkg/sources"
	"go.uber.org/zap"
)

// collectWindow fetches one comic per series, in series order, one request
// at a time. A series that fails or has nothing in the window is logged and
// skipped.
func collectWindow(ctx context.Context, catalog sources.Catalog, series []data.TrackedSeries, window data.Window, logger *zap.Logger, m *metrics.Collectors) []data.Comic {
	comics := []data.Comic{}
	for _, s := range series {
		comic, err := catalog.FetchSeriesWindow(ctx, s.ID, window)
		switch {
		case err == nil:
			m.Fetch(metrics.OutcomeFound)
			comics = append(comics, *comic)
		case errors.Is(err, sources.ErrNotFound):
			m.Fetch(metrics.OutcomeNotFound)
			logger.Info("No results for series",
				zap.Int("series_id", s.ID),
				zap.String("series", s.Label()),
				zap.String("window", string(window)))
		default:
			m.Fetch(metrics.OutcomeFailed)
			logger.Warn("Failed to fetch series",
				zap.Int("series_id", s.ID),
				zap.String("series", s.Label()),
				zap.Error(err))
		}
	}
	return comics
}
