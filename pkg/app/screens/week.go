package screens

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/jeffbot/pkg/app/components"
	"github.com/kerbaras/jeffbot/pkg/app/styles"
	"github.com/kerbaras/jeffbot/pkg/data"
	"github.com/kerbaras/jeffbot/pkg/services"
)

// WeekScreen pages through this week's comics. Idle expiry works like the
// chat sessions: every navigation key re-arms the timer, and a tick from an
// older arm is ignored.
type WeekScreen struct {
	ctx     context.Context
	backend Backend
	idle    time.Duration

	pager      *services.Pagination
	generation int
	loading    bool
	width      int
	height     int
}

func NewWeekScreen(ctx context.Context, backend Backend, idle time.Duration) *WeekScreen {
	return &WeekScreen{
		ctx:     ctx,
		backend: backend,
		idle:    idle,
		loading: true,
		width:   80,
	}
}

func (s *WeekScreen) Init() tea.Cmd {
	return s.load
}

func (s *WeekScreen) Typing() bool { return false }

func (s *WeekScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		s.width = msg.Width
		s.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h":
			return s, s.navigate(services.EventPrev)
		case "right", "l":
			return s, s.navigate(services.EventNext)
		case "r":
			if s.loading {
				return s, nil
			}
			s.loading = true
			return s, s.load
		}

	case weekLoadedMsg:
		s.loading = false
		s.generation++
		pager, err := services.NewPagination(msg.comics)
		if errors.Is(err, services.ErrNoItems) {
			s.pager = nil
			return s, nil
		}
		s.pager = pager
		return s, s.armIdle()

	case idleMsg:
		if s.pager != nil && msg.generation == s.generation {
			s.pager.Apply(services.EventTimeout)
		}
	}

	return s, nil
}

func (s *WeekScreen) navigate(ev services.Event) tea.Cmd {
	if s.pager == nil || s.pager.State() == services.Expired {
		return nil
	}
	s.pager.Apply(ev)
	s.generation++
	return s.armIdle()
}

func (s *WeekScreen) armIdle() tea.Cmd {
	generation := s.generation
	return tea.Tick(s.idle, func(time.Time) tea.Msg {
		return idleMsg{generation: generation}
	})
}

// Page returns the current page, or false when nothing is loaded.
func (s *WeekScreen) Page() (services.PageView, bool) {
	if s.pager == nil {
		return services.PageView{}, false
	}
	return s.pager.View(), true
}

func (s *WeekScreen) View() string {
	header := styles.TitleStyle.Render("Comics out this week")

	var body string
	switch {
	case s.loading:
		body = styles.StatusInfo.Render("Fetching this week's comics...")
	case s.pager == nil:
		body = styles.MutedStyle.Render(services.NoComicsThisWeek)
	default:
		body = components.NewComicCard(s.pager.View(), s.width).Render()
	}

	help := styles.HelpStyle.Render(
		"←/h: previous • →/l: next • r: refresh • tab: switch view • q: quit",
	)

	return fmt.Sprintf("%s\n\n%s\n%s", header, body, help)
}

// Messages
type weekLoadedMsg struct {
	comics []data.Comic
}

type idleMsg struct {
	generation int
}

// Commands
func (s *WeekScreen) load() tea.Msg {
	return weekLoadedMsg{comics: s.backend.ComicsThisWeek(s.ctx)}
}
