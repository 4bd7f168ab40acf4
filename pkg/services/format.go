package services

import (
	"fmt"
	"strings"

	"github.com/kerbaras/jeffbot/pkg/data"
)

const (
	NoComicsThisWeek = "No comics are out this week"
	NoSeriesTracked  = "No series are being tracked"
	UnknownWriter    = "Unknown"

	releaseDateLayout = "January 2, 2006"
)

// ReleaseDate renders the on-sale date, or a placeholder when the catalog
// did not provide one.
func ReleaseDate(comic *data.Comic) string {
	if !comic.HasOnSaleDate() {
		return "date unknown"
	}
	return comic.OnSaleDate.Format(releaseDateLayout)
}

func WriterName(comic *data.Comic) string {
	if name, ok := comic.Writer(); ok {
		return name
	}
	return UnknownWriter
}

func AnnouncementText(comic *data.Comic) string {
	return fmt.Sprintf("%s is out today", comic.Title)
}

// WeekList renders the flat "this week" listing.
func WeekList(comics []data.Comic) string {
	if len(comics) == 0 {
		return NoComicsThisWeek
	}
	lines := []string{"Comics out this week:"}
	for i := range comics {
		lines = append(lines, fmt.Sprintf("%s is out %s", comics[i].Title, ReleaseDate(&comics[i])))
	}
	return strings.Join(lines, "\n")
}

func SeriesList(series []data.TrackedSeries) string {
	if len(series) == 0 {
		return NoSeriesTracked
	}
	lines := make([]string, len(series))
	for i, s := range series {
		lines[i] = fmt.Sprintf("Series: %s ID: %d", s.Name, s.ID)
	}
	return strings.Join(lines, "\n")
}
