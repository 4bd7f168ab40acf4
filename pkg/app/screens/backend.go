package screens

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/jeffbot/pkg/data"
)

// Backend is the slice of services.Controller the terminal UI drives.
type Backend interface {
	ComicsThisWeek(ctx context.Context) []data.Comic
	TrackedSeries() []data.TrackedSeries
	AddSeries(ctx context.Context, rawID, name string) (string, error)
	RemoveSeries(rawID string) (string, error)
}

type screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (tea.Model, tea.Cmd)
	View() string
	// Typing reports whether a text input owns the keyboard.
	Typing() bool
}
