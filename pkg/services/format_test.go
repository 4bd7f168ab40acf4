package services

import (
	"testing"

	"github.com/kerbaras/jeffbot/pkg/data"
	"github.com/stretchr/testify/assert"
)

func TestWeekList(t *testing.T) {
	assert.Equal(t, NoComicsThisWeek, WeekList(nil))

	comics := []data.Comic{*comicOn(1, "Daredevil #7", 10), {Title: "Mystery #1"}}
	assert.Equal(t, "Comics out this week:\nDaredevil #7 is out January 10, 2024\nMystery #1 is out date unknown", WeekList(comics))
}

func TestWriterName(t *testing.T) {
	assert.Equal(t, "Writer X", WriterName(comicOn(1, "X", 10)))
	assert.Equal(t, UnknownWriter, WriterName(&data.Comic{Creators: []data.Creator{{Role: "colorist", Name: "C"}}}))
}

func TestAnnouncementText(t *testing.T) {
	assert.Equal(t, "Venom #30 is out today", AnnouncementText(&data.Comic{Title: "Venom #30"}))
}

func TestSeriesList(t *testing.T) {
	assert.Equal(t, NoSeriesTracked, SeriesList(nil))
	assert.Equal(t, "Series: A ID: 1\nSeries:  ID: 2", SeriesList([]data.TrackedSeries{{ID: 1, Name: "A"}, {ID: 2}}))
}
