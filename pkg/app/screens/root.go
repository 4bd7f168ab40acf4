package screens

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/jeffbot/pkg/app/styles"
)

type screenType int

const (
	weekView screenType = iota
	seriesView
)

type RootScreen struct {
	currentView screenType
	week        *WeekScreen
	series      *SeriesScreen

	width  int
	height int
}

func NewRootScreen(ctx context.Context, backend Backend, idle time.Duration) *RootScreen {
	return &RootScreen{
		currentView: weekView,
		week:        NewWeekScreen(ctx, backend, idle),
		series:      NewSeriesScreen(ctx, backend),
	}
}

func (r *RootScreen) Init() tea.Cmd {
	return tea.Batch(r.week.Init(), r.series.Init())
}

func (r *RootScreen) active() screen {
	if r.currentView == seriesView {
		return r.series
	}
	return r.week
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c":
			return r, tea.Quit
		case "q":
			if !r.active().Typing() {
				return r, tea.Quit
			}
		case "tab":
			if !r.active().Typing() {
				r.currentView = (r.currentView + 1) % 2
				return r, nil
			}
		}
		_, cmd := r.active().Update(msg)
		return r, cmd
	}

	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		r.width = msg.Width
		r.height = msg.Height
	}

	// Everything else is either a resize or the result of a command, and
	// each screen ignores what it did not ask for.
	_, weekCmd := r.week.Update(msg)
	_, seriesCmd := r.series.Update(msg)
	return r, tea.Batch(weekCmd, seriesCmd)
}

func (r *RootScreen) View() string {
	return fmt.Sprintf("%s\n\n%s", r.renderTabs(), r.active().View())
}

func (r *RootScreen) renderTabs() string {
	weekTab := "This Week"
	seriesTab := "Series"

	if r.currentView == weekView {
		weekTab = styles.ActiveTabStyle.Render(weekTab)
		seriesTab = styles.InactiveTabStyle.Render(seriesTab)
	} else {
		weekTab = styles.InactiveTabStyle.Render(weekTab)
		seriesTab = styles.ActiveTabStyle.Render(seriesTab)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, weekTab, seriesTab)
}
