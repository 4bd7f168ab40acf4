package app

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/jeffbot/pkg/app/screens"
)

// App is the local terminal front end over the same controller the chat
// bot uses.
type App struct {
	backend screens.Backend
	idle    time.Duration
}

func NewApp(backend screens.Backend, idle time.Duration) *App {
	return &App{backend: backend, idle: idle}
}

func (a *App) Run(ctx context.Context) error {
	model := screens.NewRootScreen(ctx, a.backend, a.idle)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
