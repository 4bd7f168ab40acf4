package data

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackedSeriesLabel(t *testing.T) {
	assert.Equal(t, "Daredevil", TrackedSeries{ID: 1, Name: "Daredevil"}.Label())
	assert.Equal(t, "#42", TrackedSeries{ID: 42}.Label())
}

func TestComicWriter(t *testing.T) {
	comic := Comic{Creators: []Creator{
		{Role: "penciller", Name: "Jane Artist"},
		{Role: "writer", Name: "Chip Zdarsky"},
		{Role: "writer", Name: "Someone Else"},
	}}

	name, ok := comic.Writer()
	assert.True(t, ok)
	assert.Equal(t, "Chip Zdarsky", name)

	_, ok = (&Comic{}).Writer()
	assert.False(t, ok)
}

func TestComicOnSaleOn(t *testing.T) {
	est := time.FixedZone("EST", -5*3600)
	comic := Comic{OnSaleDate: time.Date(2024, 1, 10, 0, 0, 0, 0, est)}

	t.Run("same day ignores time of day", func(t *testing.T) {
		assert.True(t, comic.OnSaleOn(time.Date(2024, 1, 10, 23, 59, 0, 0, time.UTC)))
		assert.True(t, comic.OnSaleOn(time.Date(2024, 1, 10, 7, 0, 0, 0, est)))
	})

	t.Run("other days", func(t *testing.T) {
		assert.False(t, comic.OnSaleOn(time.Date(2024, 1, 9, 23, 0, 0, 0, est)))
		assert.False(t, comic.OnSaleOn(time.Date(2024, 1, 11, 0, 0, 0, 0, est)))
	})

	t.Run("reported date is not shifted into the caller's zone", func(t *testing.T) {
		pacific := time.FixedZone("PST", -8*3600)
		assert.True(t, comic.OnSaleOn(time.Date(2024, 1, 10, 7, 0, 0, 0, pacific)))
	})

	t.Run("missing date never matches", func(t *testing.T) {
		assert.False(t, (&Comic{}).OnSaleOn(time.Time{}))
	})
}

func TestWindowValid(t *testing.T) {
	for _, w := range []Window{LastWeek, ThisWeek, NextWeek, ThisMonth} {
		assert.True(t, w.Valid(), w)
	}
	assert.False(t, Window("yesterday").Valid())
	assert.False(t, Window("").Valid())
}
