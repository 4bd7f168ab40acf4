package screens

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/jeffbot/pkg/app/components"
	"github.com/kerbaras/jeffbot/pkg/app/styles"
	"github.com/kerbaras/jeffbot/pkg/data"
)

// SeriesScreen lists tracked series and lets the user add or remove them.
type SeriesScreen struct {
	ctx        context.Context
	backend    Backend
	seriesList *components.SeriesList
	input      textinput.Model
	busy       bool
	status     string
	width      int
	height     int
	err        error
}

func NewSeriesScreen(ctx context.Context, backend Backend) *SeriesScreen {
	ti := textinput.New()
	ti.Placeholder = "series id [name]"
	ti.CharLimit = 100
	ti.Width = 50

	return &SeriesScreen{
		ctx:        ctx,
		backend:    backend,
		seriesList: components.NewSeriesList(),
		input:      ti,
	}
}

func (s *SeriesScreen) Init() tea.Cmd {
	return s.loadSeries
}

func (s *SeriesScreen) Typing() bool { return s.input.Focused() }

func (s *SeriesScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height
		s.seriesList.Width = msg.Width - 4
		s.seriesList.Height = msg.Height - 10

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		if s.input.Focused() {
			switch msg.String() {
			case "enter":
				value := strings.TrimSpace(s.input.Value())
				if value == "" {
					return s, nil
				}
				s.input.Reset()
				s.input.Blur()
				s.busy = true
				return s, s.addSeries(value)
			case "esc":
				s.input.Blur()
				return s, nil
			}
			s.input, cmd = s.input.Update(msg)
			return s, cmd
		}

		switch msg.String() {
		case "up", "k":
			s.seriesList.Prev()
		case "down", "j":
			s.seriesList.Next()
		case "r":
			return s, s.loadSeries
		case "a":
			return s, s.input.Focus()
		case "d":
			if selected := s.seriesList.Selected(); selected != nil {
				s.busy = true
				return s, s.removeSeries(selected.ID)
			}
		}

	case seriesLoadedMsg:
		s.seriesList.SetItems(msg.items)

	case seriesChangedMsg:
		s.busy = false
		s.status = msg.text
		s.err = msg.err
		return s, s.loadSeries
	}

	return s, nil
}

func (s *SeriesScreen) View() string {
	header := styles.TitleStyle.Render("Tracked series")

	inputStyle := styles.InputStyle
	if s.input.Focused() {
		inputStyle = styles.FocusedInputStyle
	}
	inputView := inputStyle.Render(s.input.View())

	var statusMsg string
	switch {
	case s.err != nil:
		statusMsg = styles.StatusError.Render(fmt.Sprintf("%s (%s)", s.status, s.err)) + "\n\n"
	case s.busy:
		statusMsg = styles.StatusInfo.Render("Working...") + "\n\n"
	case s.status != "":
		statusMsg = styles.StatusSuccess.Render(s.status) + "\n\n"
	}

	help := styles.HelpStyle.Render(
		"↑/k: up • ↓/j: down • a: add • enter: confirm • esc: cancel • d: remove • r: refresh • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s\n\n%s%s\n%s", header, inputView, statusMsg, s.seriesList.View(), help)
}

// Messages
type seriesLoadedMsg struct {
	items []data.TrackedSeries
}

type seriesChangedMsg struct {
	text string
	err  error
}

// Commands
func (s *SeriesScreen) loadSeries() tea.Msg {
	return seriesLoadedMsg{items: s.backend.TrackedSeries()}
}

// addSeries takes "id" or "id name with spaces".
func (s *SeriesScreen) addSeries(value string) tea.Cmd {
	rawID, name, _ := strings.Cut(value, " ")
	return func() tea.Msg {
		text, err := s.backend.AddSeries(s.ctx, rawID, name)
		return seriesChangedMsg{text: text, err: err}
	}
}

func (s *SeriesScreen) removeSeries(id int) tea.Cmd {
	return func() tea.Msg {
		text, err := s.backend.RemoveSeries(strconv.Itoa(id))
		return seriesChangedMsg{text: text, err: err}
	}
}
