package domain

import (
	"context"
	"time"
)

// ActivityEntry is one audit-trail line describing an administrative action.
type ActivityEntry struct {
	EventType   string    `json:"event_type"`
	UserID      string    `json:"user_id,omitempty"`
	Description string    `json:"description"`
	IPAddress   string    `json:"ip_address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ActivitySink records audit entries. Persistence of the trail is a
// collaborator concern; handlers log and continue when a sink fails.
type ActivitySink interface {
	Record(ctx context.Context, entry ActivityEntry) error
}
