package data

import (
	"fmt"
	"time"
)

// TrackedSeries is a catalog series the bot watches for new issues.
type TrackedSeries struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Label returns the series name, falling back to its id.
func (s TrackedSeries) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return fmt.Sprintf("#%d", s.ID)
}

// Creator is a person credited on an issue.
type Creator struct {
	Role string
	Name string
}

type Comic struct {
	SeriesID    int
	Title       string
	OnSaleDate  time.Time // zero when the catalog omitted it
	DetailURL   string
	Creators    []Creator
	Description string
	CoverURL    string
}

// Writer returns the first creator credited as writer.
func (c *Comic) Writer() (string, bool) {
	for _, creator := range c.Creators {
		if creator.Role == "writer" {
			return creator.Name, true
		}
	}
	return "", false
}

func (c *Comic) HasOnSaleDate() bool {
	return !c.OnSaleDate.IsZero()
}

// OnSaleOn reports whether the issue goes on sale on the calendar day of t.
// The on-sale day is the date the catalog reported, in the catalog's own
// offset; t is compared in whatever location it carries.
func (c *Comic) OnSaleOn(t time.Time) bool {
	if !c.HasOnSaleDate() {
		return false
	}
	y1, m1, d1 := c.OnSaleDate.Date()
	y2, m2, d2 := t.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// SeriesInfo is the catalog's description of a series.
type SeriesInfo struct {
	ID        int
	Title     string
	StartYear int
	EndYear   int
}

// Window is a relative date range understood by the catalog.
type Window string

const (
	LastWeek  Window = "lastWeek"
	ThisWeek  Window = "thisWeek"
	NextWeek  Window = "nextWeek"
	ThisMonth Window = "thisMonth"
)

func (w Window) Valid() bool {
	switch w {
	case LastWeek, ThisWeek, NextWeek, ThisMonth:
		return true
	}
	return false
}
