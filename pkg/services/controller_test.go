package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kerbaras/jeffbot/pkg/data"
	"github.com/kerbaras/jeffbot/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestController(t *testing.T, catalog sources.Catalog, store *memStore) (*Controller, *data.Registry, *SessionManager) {
	t.Helper()
	registry, err := data.OpenRegistry(store)
	require.NoError(t, err)
	sessions := NewSessionManager(50*time.Millisecond, zap.NewNop(), nil)
	t.Cleanup(sessions.Wait)
	return NewController(catalog, registry, sessions, zap.NewNop(), nil), registry, sessions
}

func TestControllerComicsThisWeek(t *testing.T) {
	catalog := &mockCatalog{
		fetchSeriesWindowFunc: func(id int, _ data.Window) (*data.Comic, error) {
			switch id {
			case 2:
				return nil, &sources.CatalogError{SeriesID: 2, Kind: sources.ErrCatalogUnavailable}
			case 3:
				return nil, &sources.CatalogError{SeriesID: 3, Kind: sources.ErrNotFound}
			}
			return comicOn(id, "Issue", 10+id), nil
		},
	}
	store := &memStore{series: []data.TrackedSeries{{ID: 4, Name: "D"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}, {ID: 1, Name: "A"}}}
	controller, _, _ := newTestController(t, catalog, store)

	comics := controller.ComicsThisWeek(context.Background())
	require.Len(t, comics, 2)
	assert.Equal(t, 4, comics[0].SeriesID)
	assert.Equal(t, 1, comics[1].SeriesID)

	list := controller.ThisWeekList(context.Background())
	assert.Equal(t, "Comics out this week:\nIssue is out January 14, 2024\nIssue is out January 11, 2024", list)
}

func TestControllerBrowseThisWeekEmpty(t *testing.T) {
	catalog := &mockCatalog{
		fetchSeriesWindowFunc: func(id int, _ data.Window) (*data.Comic, error) {
			return nil, &sources.CatalogError{SeriesID: id, Kind: sources.ErrNotFound}
		},
	}
	controller, _, sessions := newTestController(t, catalog, &memStore{series: []data.TrackedSeries{{ID: 1}}})
	reply := &recordingReply{}

	session, err := controller.BrowseThisWeek(context.Background(), reply)
	require.NoError(t, err)
	assert.Nil(t, session)
	assert.Equal(t, []string{NoComicsThisWeek}, reply.Texts())
	assert.Empty(t, reply.Renders(), "no controls rendered")
	assert.Equal(t, 0, sessions.Active())
}

func TestControllerBrowseThisWeek(t *testing.T) {
	catalog := &mockCatalog{
		fetchSeriesWindowFunc: func(id int, _ data.Window) (*data.Comic, error) {
			return comicOn(id, "Issue", 10), nil
		},
	}
	controller, _, sessions := newTestController(t, catalog, &memStore{series: []data.TrackedSeries{{ID: 1}, {ID: 2}}})
	reply := &recordingReply{}

	session, err := controller.BrowseThisWeek(context.Background(), reply)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Empty(t, reply.Texts())

	first := reply.Renders()[0]
	assert.Equal(t, "1 of 2", first.Position())
	assert.False(t, first.PrevEnabled)
	assert.True(t, first.NextEnabled)

	require.NoError(t, sessions.Dispatch(session.ID(), EventNext))
	<-session.Done()
	assert.True(t, reply.Last().Expired)
	assert.Equal(t, 1, reply.Last().Index)
}

func TestControllerAddSeries(t *testing.T) {
	catalog := &mockCatalog{
		fetchSeriesMetadataFunc: func(id int) (*data.SeriesInfo, error) {
			switch id {
			case 42:
				return &data.SeriesInfo{ID: 42, Title: "Example (2020 - Present)"}, nil
			case 500:
				return nil, &sources.CatalogError{SeriesID: 500, Kind: sources.ErrCatalogUnavailable}
			}
			return nil, &sources.CatalogError{SeriesID: id, Kind: sources.ErrNotFound}
		},
	}
	controller, registry, _ := newTestController(t, catalog, &memStore{})

	t.Run("valid id with name", func(t *testing.T) {
		msg, err := controller.AddSeries(context.Background(), "42", "Example")
		require.NoError(t, err)
		assert.Equal(t, "Added series Example with id 42", msg)
		assert.Equal(t, []data.TrackedSeries{{ID: 42, Name: "Example"}}, registry.List())
	})

	t.Run("name defaults to catalog title", func(t *testing.T) {
		require.NoError(t, registry.Remove(42))
		msg, err := controller.AddSeries(context.Background(), " 42 ", "")
		require.NoError(t, err)
		assert.Equal(t, "Added series Example (2020 - Present) with id 42", msg)
	})

	t.Run("unknown series", func(t *testing.T) {
		msg, err := controller.AddSeries(context.Background(), "7", "Nope")
		require.NoError(t, err)
		assert.Equal(t, "7 is not a valid series id", msg)
		assert.False(t, registry.Contains(7))
	})

	t.Run("not a number", func(t *testing.T) {
		for _, raw := range []string{"abc", "-3", "0", ""} {
			msg, err := controller.AddSeries(context.Background(), raw, "X")
			require.NoError(t, err)
			assert.Contains(t, msg, "is not a valid series id")
		}
	})

	t.Run("catalog down", func(t *testing.T) {
		msg, err := controller.AddSeries(context.Background(), "500", "Down")
		require.NoError(t, err)
		assert.Contains(t, msg, "try again later")
		assert.False(t, registry.Contains(500))
	})
}

func TestControllerAddSeriesWriteFailure(t *testing.T) {
	controller, registry, _ := newTestController(t, &mockCatalog{}, &memStore{saveErr: errors.New("read-only filesystem")})

	msg, err := controller.AddSeries(context.Background(), "42", "Example")
	assert.ErrorIs(t, err, data.ErrRegistryWrite)
	assert.Contains(t, msg, "could not be saved")
	assert.True(t, registry.Contains(42))
}

func TestControllerRemoveSeries(t *testing.T) {
	store := &memStore{series: []data.TrackedSeries{{ID: 42, Name: "Example"}, {ID: 43, Name: "Other"}}}
	controller, registry, _ := newTestController(t, &mockCatalog{}, store)

	msg, err := controller.RemoveSeries("42")
	require.NoError(t, err)
	assert.Equal(t, "Removed series with id 42", msg)
	assert.Equal(t, []data.TrackedSeries{{ID: 43, Name: "Other"}}, registry.List())

	msg, err = controller.RemoveSeries("9999")
	require.NoError(t, err)
	assert.Equal(t, "Removed series with id 9999", msg)
	assert.Len(t, registry.List(), 1)

	msg, err = controller.RemoveSeries("forty-two")
	require.NoError(t, err)
	assert.Equal(t, "forty-two is not a valid series id", msg)
}

func TestControllerListSeries(t *testing.T) {
	controller, _, _ := newTestController(t, &mockCatalog{}, &memStore{})
	assert.Equal(t, NoSeriesTracked, controller.ListSeries())

	_, err := controller.AddSeries(context.Background(), "1", "Daredevil")
	require.NoError(t, err)
	_, err = controller.AddSeries(context.Background(), "2", "Venom")
	require.NoError(t, err)
	assert.Equal(t, "Series: Daredevil ID: 1\nSeries: Venom ID: 2", controller.ListSeries())
	assert.Equal(t, []data.TrackedSeries{{ID: 1, Name: "Daredevil"}, {ID: 2, Name: "Venom"}}, controller.TrackedSeries())
}
