package services

import (
	"context"

	"github.com/kerbaras/jeffbot/pkg/data"
)

// Announcement is a release notice for the configured channel.
type Announcement struct {
	Content string
	Comic   *data.Comic
}

// Messenger delivers announcements to the destination channel.
type Messenger interface {
	Announce(ctx context.Context, a Announcement) error
}

// Reply is the response to one user request. Render replaces the previous
// rendering in place.
type Reply interface {
	Text(ctx context.Context, content string) error
	Render(ctx context.Context, view PageView) error
}
