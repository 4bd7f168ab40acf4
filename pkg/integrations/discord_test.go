package integrations

import (
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/kerbaras/jeffbot/pkg/data"
	"github.com/kerbaras/jeffbot/pkg/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testComic() data.Comic {
	return data.Comic{
		Title:       "Daredevil (2023) #7",
		OnSaleDate:  time.Date(2024, time.January, 10, 0, 0, 0, 0, time.FixedZone("EST", -5*3600)),
		DetailURL:   "http://marvel.com/comics/issue/111",
		Description: "Matt Murdock returns.",
		CoverURL:    "http://i.annihil.us/abc/portrait_uncanny.jpg",
		Creators:    []data.Creator{{Role: "writer", Name: "Saladin Ahmed"}},
	}
}

func buttons(t *testing.T, components []discordgo.MessageComponent) []discordgo.Button {
	t.Helper()
	require.Len(t, components, 1)
	row, ok := components[0].(discordgo.ActionsRow)
	require.True(t, ok)

	out := make([]discordgo.Button, 0, len(row.Components))
	for _, c := range row.Components {
		b, ok := c.(discordgo.Button)
		require.True(t, ok)
		out = append(out, b)
	}
	return out
}

func TestCommandsMatchRegisteredNames(t *testing.T) {
	names := make([]string, len(Commands))
	for i, c := range Commands {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"comics_this_week", "print_series", "add_series", "remove_series"}, names)

	add := Commands[2]
	require.Len(t, add.Options, 2)
	assert.True(t, add.Options[0].Required)
	assert.False(t, add.Options[1].Required, "series_name is optional")
}

func TestComicEmbed(t *testing.T) {
	comic := testComic()
	embed := comicEmbed(&comic)

	assert.Equal(t, "Daredevil (2023) #7", embed.Title)
	assert.Equal(t, "http://marvel.com/comics/issue/111", embed.URL)
	require.NotNil(t, embed.Image)
	assert.Equal(t, comic.CoverURL, embed.Image.URL)
	require.Len(t, embed.Fields, 2)
	assert.Equal(t, "January 10, 2024", embed.Fields[0].Value)
	assert.Equal(t, "Saladin Ahmed", embed.Fields[1].Value)
}

func TestComicEmbedPlaceholders(t *testing.T) {
	comic := data.Comic{Title: "Bare #1", Description: strings.Repeat("x", 5000)}
	embed := comicEmbed(&comic)

	assert.Nil(t, embed.Image)
	assert.Equal(t, services.UnknownWriter, embed.Fields[1].Value)
	assert.Equal(t, "date unknown", embed.Fields[0].Value)
	assert.LessOrEqual(t, len(embed.Description), maxDescription)
}

func TestPageComponents(t *testing.T) {
	view := services.PageView{SessionID: "abc", Comic: testComic(), Index: 0, Total: 3, NextEnabled: true}

	b := buttons(t, pageComponents(view))
	require.Len(t, b, 3)
	assert.True(t, b[0].Disabled, "previous disabled on the first item")
	assert.Equal(t, "1 of 3", b[1].Label)
	assert.True(t, b[1].Disabled, "position is read-only")
	assert.False(t, b[2].Disabled)
	assert.Equal(t, "page:abc:next", b[2].CustomID)
	assert.Equal(t, "page:abc:prev", b[0].CustomID)
}

func TestPageComponentsExpired(t *testing.T) {
	view := services.PageView{SessionID: "abc", Comic: testComic(), Index: 1, Total: 3, Expired: true}

	for _, b := range buttons(t, pageComponents(view)) {
		assert.True(t, b.Disabled, b.Label)
	}
	assert.Contains(t, pageEmbed(view).Footer.Text, "2 of 3")
	assert.Contains(t, pageEmbed(view).Footer.Text, "closed")
}

func TestParseCustomID(t *testing.T) {
	id, ev, ok := parseCustomID(customID("f47ac10b-58cc-4372-a567-0e02b2c3d479", services.EventNext))
	require.True(t, ok)
	assert.Equal(t, "f47ac10b-58cc-4372-a567-0e02b2c3d479", id)
	assert.Equal(t, services.EventNext, ev)

	_, ev, ok = parseCustomID("page:abc:prev")
	require.True(t, ok)
	assert.Equal(t, services.EventPrev, ev)

	for _, bad := range []string{"", "page:abc:position", "page::next", "other:abc:next", "page:abc:timeout", "page:abc"} {
		_, _, ok := parseCustomID(bad)
		assert.False(t, ok, bad)
	}
}

func TestOptionValues(t *testing.T) {
	cmd := discordgo.ApplicationCommandInteractionData{
		Name: "add_series",
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "series_id", Type: discordgo.ApplicationCommandOptionString, Value: "42"},
			{Name: "series_name", Type: discordgo.ApplicationCommandOptionString, Value: "Example"},
		},
	}

	assert.Equal(t, map[string]string{"series_id": "42", "series_name": "Example"}, optionValues(cmd))
}
