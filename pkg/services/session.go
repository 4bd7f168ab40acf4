package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kerbaras/jeffbot/pkg/data"
	"github.com/kerbaras/jeffbot/pkg/metrics"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("pagination session not found")
	ErrSessionClosed   = errors.New("pagination session closed")
)

// renderTimeout bounds the final render after the request context is gone.
const renderTimeout = 5 * time.Second

// Session owns one Pagination and its idle timer. All state changes happen
// on the session's own goroutine.
type Session struct {
	id     string
	idle   time.Duration
	reply  Reply
	logger *zap.Logger

	mu    sync.Mutex
	pager *Pagination

	events chan Event
	done   chan struct{}
}

func (s *Session) ID() string { return s.id }

// Done is closed once the session has expired and rendered its final view.
func (s *Session) Done() <-chan struct{} { return s.done }

func (s *Session) View() PageView {
	s.mu.Lock()
	defer s.mu.Unlock()
	view := s.pager.View()
	view.SessionID = s.id
	return view
}

func (s *Session) apply(ev Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pager.Apply(ev)
}

func (s *Session) render(ctx context.Context) {
	if err := s.reply.Render(ctx, s.View()); err != nil {
		s.logger.Warn("Failed to render page", zap.String("session", s.id), zap.Error(err))
	}
}

func (s *Session) run(ctx context.Context) {
	defer close(s.done)

	timer := time.NewTimer(s.idle)
	defer timer.Stop()

	for {
		select {
		case ev := <-s.events:
			if s.apply(ev) {
				s.render(ctx)
			}
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(s.idle)
		case <-timer.C:
			s.expire(ctx)
			return
		case <-ctx.Done():
			s.expire(ctx)
			return
		}
	}
}

func (s *Session) expire(ctx context.Context) {
	s.apply(EventTimeout)
	renderCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), renderTimeout)
	defer cancel()
	s.render(renderCtx)
	s.logger.Debug("Pagination session expired", zap.String("session", s.id))
}

// SessionManager routes navigation events to live sessions by id.
type SessionManager struct {
	idle    time.Duration
	logger  *zap.Logger
	metrics *metrics.Collectors

	mu       sync.Mutex
	sessions map[string]*Session
	wg       sync.WaitGroup
}

func NewSessionManager(idle time.Duration, logger *zap.Logger, m *metrics.Collectors) *SessionManager {
	return &SessionManager{
		idle:     idle,
		logger:   logger,
		metrics:  m,
		sessions: make(map[string]*Session),
	}
}

// Start renders the first page and begins the idle countdown. It returns
// ErrNoItems without rendering anything when items is empty.
func (m *SessionManager) Start(ctx context.Context, items []data.Comic, reply Reply) (*Session, error) {
	pager, err := NewPagination(items)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:     uuid.NewString(),
		idle:   m.idle,
		reply:  reply,
		logger: m.logger,
		pager:  pager,
		events: make(chan Event),
		done:   make(chan struct{}),
	}

	s.render(ctx)

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()
	m.metrics.SessionStarted()

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		s.run(ctx)
		m.mu.Lock()
		delete(m.sessions, s.id)
		m.mu.Unlock()
		m.metrics.SessionEnded()
	}()

	return s, nil
}

// Dispatch delivers a navigation event. Timeouts are internal and cannot
// be dispatched.
func (m *SessionManager) Dispatch(id string, ev Event) error {
	if ev == EventTimeout {
		return errors.New("timeout cannot be dispatched")
	}

	m.mu.Lock()
	s, ok := m.sessions[id]
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}

	select {
	case s.events <- ev:
		return nil
	case <-s.done:
		return ErrSessionClosed
	}
}

func (m *SessionManager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Wait blocks until every session goroutine has exited.
func (m *SessionManager) Wait() {
	m.wg.Wait()
}
