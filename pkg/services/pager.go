package services

import (
	"errors"
	"fmt"

	"github.com/kerbaras/jeffbot/pkg/data"
)

// ErrNoItems is returned when paging over an empty result set.
var ErrNoItems = errors.New("no items to page through")

type PageState int

const (
	Active PageState = iota
	Expired
)

func (s PageState) String() string {
	if s == Active {
		return "active"
	}
	return "expired"
}

type Event int

const (
	EventPrev Event = iota
	EventNext
	EventTimeout
)

func (e Event) String() string {
	switch e {
	case EventPrev:
		return "prev"
	case EventNext:
		return "next"
	case EventTimeout:
		return "timeout"
	}
	return fmt.Sprintf("event(%d)", int(e))
}

type transition struct {
	guard func(p *Pagination) bool
	apply func(p *Pagination)
}

// transitions is the complete state table. Expired has no outgoing edges.
var transitions = map[PageState]map[Event]transition{
	Active: {
		EventPrev: {
			guard: func(p *Pagination) bool { return p.cursor > 0 },
			apply: func(p *Pagination) { p.cursor-- },
		},
		EventNext: {
			guard: func(p *Pagination) bool { return p.cursor < len(p.items)-1 },
			apply: func(p *Pagination) { p.cursor++ },
		},
		EventTimeout: {
			guard: func(p *Pagination) bool { return true },
			apply: func(p *Pagination) { p.state = Expired },
		},
	},
}

// Pagination walks a non-empty result set one item at a time.
type Pagination struct {
	items  []data.Comic
	cursor int
	state  PageState
}

func NewPagination(items []data.Comic) (*Pagination, error) {
	if len(items) == 0 {
		return nil, ErrNoItems
	}
	return &Pagination{items: items}, nil
}

// Apply feeds ev through the state table and reports whether anything
// changed. Events whose guard fails are ignored.
func (p *Pagination) Apply(ev Event) bool {
	t, ok := transitions[p.state][ev]
	if !ok || !t.guard(p) {
		return false
	}
	t.apply(p)
	return true
}

func (p *Pagination) Cursor() int      { return p.cursor }
func (p *Pagination) Len() int         { return len(p.items) }
func (p *Pagination) State() PageState { return p.state }

func (p *Pagination) View() PageView {
	active := p.state == Active
	return PageView{
		Comic:       p.items[p.cursor],
		Index:       p.cursor,
		Total:       len(p.items),
		PrevEnabled: active && p.cursor > 0,
		NextEnabled: active && p.cursor < len(p.items)-1,
		Expired:     !active,
	}
}

// PageView is what a renderer needs to draw one page.
type PageView struct {
	SessionID   string
	Comic       data.Comic
	Index       int
	Total       int
	PrevEnabled bool
	NextEnabled bool
	Expired     bool
}

// Position is the read-only "N of M" indicator.
func (v PageView) Position() string {
	return fmt.Sprintf("%d of %d", v.Index+1, v.Total)
}
