package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jcallister/backdesk/pkg/domain"
)

// UserColumns is the projection and whitelist for the users table.
var UserColumns = []string{"id", "email", "first_name", "last_name", "role", "status", "created_date", "last_updated"}

// UserSearchColumns are the columns free-text user search matches against.
var UserSearchColumns = []string{"email", "first_name", "last_name"}

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = fmt.Errorf("not found")

// UserStore handles user persistence.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

// Adapter returns the capable store adapter over the users table.
func (s *UserStore) Adapter() domain.StoreAdapter {
	return NewTableAdapter(s.db, "users", UserColumns, UserSearchColumns, "created_date")
}

// UserInput carries the writable user fields.
type UserInput struct {
	Email     string
	FirstName string
	LastName  string
	Role      string
	Status    string
}

// UserUpdate carries a partial update; nil fields are left untouched.
type UserUpdate struct {
	Email     *string
	FirstName *string
	LastName  *string
	Role      *string
	Status    *string
}

// Create inserts a new user and returns the stored record.
func (s *UserStore) Create(ctx context.Context, input UserInput) (domain.Record, error) {
	if input.Role == "" {
		input.Role = "user"
	}
	if input.Status == "" {
		input.Status = "active"
	}

	id := uuid.New().String()
	now := time.Now().Unix()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, first_name, last_name, role, status, created_date, last_updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		id, input.Email, input.FirstName, input.LastName, input.Role, input.Status, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.GetByID(ctx, id)
}

// GetByID retrieves one user, or ErrNotFound.
func (s *UserStore) GetByID(ctx context.Context, id string) (domain.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, email, first_name, last_name, role, status, created_date, last_updated FROM users WHERE id = ?", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNotFound
	}
	return records[0], nil
}

// EmailExists reports whether another user already holds the email.
func (s *UserStore) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		"SELECT id FROM users WHERE email = ? AND id != ?", email, excludeID).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	return true, nil
}

// Update applies a partial update and returns the stored record.
func (s *UserStore) Update(ctx context.Context, id string, update UserUpdate) (domain.Record, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}

	set := "last_updated = ?"
	args := []interface{}{time.Now().Unix()}
	apply := func(col string, v *string) {
		if v != nil {
			set += ", " + col + " = ?"
			args = append(args, *v)
		}
	}
	apply("email", update.Email)
	apply("first_name", update.FirstName)
	apply("last_name", update.LastName)
	apply("role", update.Role)
	apply("status", update.Status)
	args = append(args, id)

	if _, err := s.db.ExecContext(ctx, "UPDATE users SET "+set+" WHERE id = ?", args...); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.GetByID(ctx, id)
}

// Delete removes one user, detaching their audit-trail rows first so the
// trail itself survives.
func (s *UserStore) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "UPDATE activity_log SET user_id = NULL WHERE user_id = ?", id); err != nil {
		return fmt.Errorf("failed to detach activity log: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM users WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
