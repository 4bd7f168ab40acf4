package sources

import (
	"context"

	"github.com/kerbaras/jeffbot/pkg/data"
)

// Catalog is a read-only comics catalog.
//
// FetchSeriesWindow returns ErrNotFound when the series has no issue in the
// window. When several issues match, the first one in upstream order is
// returned; the catalog defines that order.
type Catalog interface {
	FetchSeriesWindow(ctx context.Context, seriesID int, window data.Window) (*data.Comic, error)
	FetchSeriesMetadata(ctx context.Context, seriesID int) (*data.SeriesInfo, error)
}
