package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jcallister/backdesk/pkg/domain"
)

// ActivityLog persists audit entries to the activity_log table. It
// implements domain.ActivitySink.
type ActivityLog struct {
	db *sql.DB
}

// NewActivityLog creates an ActivityLog backed by the given database.
func NewActivityLog(db *sql.DB) *ActivityLog {
	return &ActivityLog{db: db}
}

// Record writes one audit row.
func (l *ActivityLog) Record(ctx context.Context, entry domain.ActivityEntry) error {
	created := entry.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	var userID interface{}
	if entry.UserID != "" {
		userID = entry.UserID
	}

	_, err := l.db.ExecContext(ctx,
		"INSERT INTO activity_log (id, event_type, user_id, description, ip_address, created_date) VALUES (?, ?, ?, ?, ?, ?)",
		uuid.New().String(), entry.EventType, userID, entry.Description, entry.IPAddress, created.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	return nil
}

// CountForUser returns the number of audit rows attributed to a user.
func (l *ActivityLog) CountForUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := l.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM activity_log WHERE user_id = ?", userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count activity: %w", err)
	}
	return n, nil
}
