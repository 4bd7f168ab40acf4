package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/jeffbot/pkg/app/styles"
	"github.com/kerbaras/jeffbot/pkg/data"
	"github.com/kerbaras/jeffbot/pkg/services"
)

type SeriesList struct {
	Items         []data.TrackedSeries
	SelectedIndex int
	Width         int
	Height        int
}

func NewSeriesList() *SeriesList {
	return &SeriesList{
		Items:         []data.TrackedSeries{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
	}
}

func (m *SeriesList) SetItems(items []data.TrackedSeries) {
	m.Items = items
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
}

func (m *SeriesList) Next() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Items) {
		m.SelectedIndex = 0
	}
}

func (m *SeriesList) Prev() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Items) - 1
	}
}

func (m *SeriesList) Selected() *data.TrackedSeries {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return &m.Items[m.SelectedIndex]
}

func (m *SeriesList) View() string {
	if len(m.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render(services.NoSeriesTracked)
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	var b strings.Builder
	for i, item := range m.Items {
		cardStyle := styles.CardStyle
		if i == m.SelectedIndex {
			cardStyle = styles.ActiveCardStyle
		}

		name := item.Name
		if name == "" {
			name = "(unnamed)"
		}
		cardContent := lipgloss.JoinVertical(
			lipgloss.Left,
			styles.TitleStyle.Render(name),
			styles.MutedStyle.Render(fmt.Sprintf("Series ID: %d", item.ID)),
		)

		b.WriteString(cardStyle.Width(m.Width - 4).Render(cardContent))
		b.WriteString("\n")
	}

	return b.String()
}
