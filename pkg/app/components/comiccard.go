package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/jeffbot/pkg/app/styles"
	"github.com/kerbaras/jeffbot/pkg/services"
)

const descriptionLimit = 280

// ComicCard draws one page of a browsing session.
type ComicCard struct {
	View  services.PageView
	Width int
}

func NewComicCard(view services.PageView, width int) *ComicCard {
	return &ComicCard{View: view, Width: width}
}

func (c *ComicCard) Render() string {
	comic := &c.View.Comic

	cardStyle := styles.ActiveCardStyle
	if c.View.Expired {
		cardStyle = styles.ExpiredCardStyle
	}

	title := styles.TitleStyle.Render(comic.Title)
	onSale := styles.TextStyle.Render(fmt.Sprintf("On sale: %s", services.ReleaseDate(comic)))
	writer := styles.TextStyle.Render(fmt.Sprintf("Writer: %s", services.WriterName(comic)))

	desc := comic.Description
	if len(desc) > descriptionLimit {
		desc = desc[:descriptionLimit-3] + "..."
	}

	rows := []string{title, onSale, writer}
	if desc != "" {
		rows = append(rows, "", styles.TextStyle.Render(desc))
	}
	if comic.DetailURL != "" {
		rows = append(rows, "", styles.MutedStyle.Render(comic.DetailURL))
	}
	if comic.CoverURL != "" {
		rows = append(rows, styles.MutedStyle.Render(fmt.Sprintf("Cover: %s", comic.CoverURL)))
	}

	card := cardStyle.Width(c.Width - 4).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	return lipgloss.JoinVertical(lipgloss.Left, card, c.controls())
}

func (c *ComicCard) controls() string {
	position := c.View.Position()
	if c.View.Expired {
		position += " (browsing closed)"
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		styles.Button("◀ Previous", c.View.PrevEnabled),
		styles.MutedStyle.Padding(0, 2).Render(position),
		styles.Button("Next ▶", c.View.NextEnabled),
	)
}
