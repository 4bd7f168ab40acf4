package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kerbaras/jeffbot/pkg/data"
	"github.com/kerbaras/jeffbot/pkg/metrics"
	"github.com/kerbaras/jeffbot/pkg/sources"
	"go.uber.org/zap"
)

// Controller answers the on-demand commands.
type Controller struct {
	catalog  sources.Catalog
	registry *data.Registry
	sessions *SessionManager
	logger   *zap.Logger
	metrics  *metrics.Collectors
}

func NewController(catalog sources.Catalog, registry *data.Registry, sessions *SessionManager, logger *zap.Logger, m *metrics.Collectors) *Controller {
	return &Controller{
		catalog:  catalog,
		registry: registry,
		sessions: sessions,
		logger:   logger,
		metrics:  m,
	}
}

// ComicsThisWeek fetches this week's issue for every tracked series.
func (c *Controller) ComicsThisWeek(ctx context.Context) []data.Comic {
	return collectWindow(ctx, c.catalog, c.registry.Snapshot(), data.ThisWeek, c.logger, c.metrics)
}

// ThisWeekList is the flat textual listing.
func (c *Controller) ThisWeekList(ctx context.Context) string {
	return WeekList(c.ComicsThisWeek(ctx))
}

// BrowseThisWeek answers with a paginated browser over this week's comics.
// When nothing is out it replies with NoComicsThisWeek and returns a nil
// session.
func (c *Controller) BrowseThisWeek(ctx context.Context, reply Reply) (*Session, error) {
	comics := c.ComicsThisWeek(ctx)
	if len(comics) == 0 {
		return nil, reply.Text(ctx, NoComicsThisWeek)
	}
	return c.sessions.Start(ctx, comics, reply)
}

func (c *Controller) ListSeries() string {
	return SeriesList(c.registry.List())
}

// TrackedSeries returns a copy of the registry contents in insertion order.
func (c *Controller) TrackedSeries() []data.TrackedSeries {
	return c.registry.List()
}

// AddSeries validates rawID against the catalog and tracks it. The returned
// string is the user-facing answer; err is only set when the registry
// could not be written.
func (c *Controller) AddSeries(ctx context.Context, rawID, name string) (string, error) {
	id, ok := parseSeriesID(rawID)
	if !ok {
		return invalidSeries(rawID), nil
	}

	info, err := c.catalog.FetchSeriesMetadata(ctx, id)
	switch {
	case errors.Is(err, sources.ErrNotFound):
		return invalidSeries(rawID), nil
	case err != nil:
		c.logger.Warn("Failed to validate series", zap.Int("series_id", id), zap.Error(err))
		return fmt.Sprintf("Could not reach the catalog to check series %d, try again later", id), nil
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = info.Title
	}

	if err := c.registry.Add(data.TrackedSeries{ID: id, Name: name}); err != nil {
		c.logger.Error("Failed to persist series", zap.Int("series_id", id), zap.Error(err))
		return fmt.Sprintf("Added series %s with id %d, but it could not be saved", name, id), err
	}
	c.logger.Info("Series added", zap.Int("series_id", id), zap.String("name", name))
	return fmt.Sprintf("Added series %s with id %d", name, id), nil
}

func (c *Controller) RemoveSeries(rawID string) (string, error) {
	id, ok := parseSeriesID(rawID)
	if !ok {
		return invalidSeries(rawID), nil
	}

	if err := c.registry.Remove(id); err != nil {
		c.logger.Error("Failed to persist series removal", zap.Int("series_id", id), zap.Error(err))
		return fmt.Sprintf("Removed series with id %d, but the change could not be saved", id), err
	}
	c.logger.Info("Series removed", zap.Int("series_id", id))
	return fmt.Sprintf("Removed series with id %d", id), nil
}

func parseSeriesID(raw string) (int, bool) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidSeries(raw string) string {
	return fmt.Sprintf("%s is not a valid series id", strings.TrimSpace(raw))
}
