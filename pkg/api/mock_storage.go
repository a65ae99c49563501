package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jcallister/backdesk/pkg/domain"
	"github.com/jcallister/backdesk/pkg/sqlstore"
)

// MockUserStore provides an in-memory implementation of UserStore for
// testing. Its adapter reports no native query capabilities so handler
// tests exercise the engine's in-memory stages.
type MockUserStore struct {
	mu          sync.RWMutex
	users       map[string]domain.Record
	order       []string
	nextID      int
	createCalls int

	// FailWith, when set, makes every operation return that error.
	FailWith error
}

// NewMockUserStore creates a new empty mock user store.
func NewMockUserStore() *MockUserStore {
	return &MockUserStore{
		users: make(map[string]domain.Record),
	}
}

func (m *MockUserStore) Create(ctx context.Context, input sqlstore.UserInput) (domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}

	m.createCalls++
	m.nextID++
	id := fmt.Sprintf("user-%d", m.nextID)

	role := input.Role
	if role == "" {
		role = "user"
	}
	status := input.Status
	if status == "" {
		status = "active"
	}

	now := time.Now().UTC()
	user := domain.Record{
		"id":           id,
		"email":        input.Email,
		"first_name":   input.FirstName,
		"last_name":    input.LastName,
		"role":         role,
		"status":       status,
		"created_date": now,
		"last_updated": now,
	}
	m.users[id] = user
	m.order = append(m.order, id)
	return user.Clone(), nil
}

func (m *MockUserStore) GetByID(ctx context.Context, id string) (domain.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}
	user, exists := m.users[id]
	if !exists {
		return nil, sqlstore.ErrNotFound
	}
	return user.Clone(), nil
}

func (m *MockUserStore) EmailExists(ctx context.Context, email, excludeID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.FailWith != nil {
		return false, m.FailWith
	}
	for id, user := range m.users {
		if id != excludeID && user.FieldString("email") == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockUserStore) Update(ctx context.Context, id string, update sqlstore.UserUpdate) (domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}
	user, exists := m.users[id]
	if !exists {
		return nil, sqlstore.ErrNotFound
	}

	if update.Email != nil {
		user["email"] = *update.Email
	}
	if update.FirstName != nil {
		user["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		user["last_name"] = *update.LastName
	}
	if update.Role != nil {
		user["role"] = *update.Role
	}
	if update.Status != nil {
		user["status"] = *update.Status
	}
	user["last_updated"] = time.Now().UTC()
	return user.Clone(), nil
}

func (m *MockUserStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	if _, exists := m.users[id]; !exists {
		return sqlstore.ErrNotFound
	}
	delete(m.users, id)
	for i, existing := range m.order {
		if existing == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

// Adapter returns a scan-only adapter over the stored users in insertion
// order.
func (m *MockUserStore) Adapter() domain.StoreAdapter {
	return &mockUserAdapter{store: m}
}

// GetCreateCalls returns the number of Create invocations.
func (m *MockUserStore) GetCreateCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.createCalls
}

// Count returns the number of stored users.
func (m *MockUserStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

type mockUserAdapter struct {
	store *MockUserStore
}

func (a *mockUserAdapter) FetchAll(ctx context.Context) ([]domain.Record, error) {
	a.store.mu.RLock()
	defer a.store.mu.RUnlock()

	if a.store.FailWith != nil {
		return nil, &domain.StoreUnavailableError{Backend: "mock", Err: a.store.FailWith}
	}
	records := make([]domain.Record, 0, len(a.store.order))
	for _, id := range a.store.order {
		records = append(records, a.store.users[id].Clone())
	}
	return records, nil
}

func (a *mockUserAdapter) Query(ctx context.Context, spec domain.QuerySpec) ([]domain.Record, error) {
	return a.FetchAll(ctx)
}

func (a *mockUserAdapter) SupportsNative(op domain.Operation) bool {
	return false
}

func (a *mockUserAdapter) SearchFields() []string {
	return []string{"email", "first_name", "last_name"}
}

// MockActivitySink records activity entries for assertions.
type MockActivitySink struct {
	mu      sync.Mutex
	entries []domain.ActivityEntry

	// FailWith, when set, makes Record return that error.
	FailWith error
}

// NewMockActivitySink creates a new empty sink.
func NewMockActivitySink() *MockActivitySink {
	return &MockActivitySink{}
}

func (m *MockActivitySink) Record(ctx context.Context, entry domain.ActivityEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return m.FailWith
	}
	m.entries = append(m.entries, entry)
	return nil
}

// Entries returns a copy of everything recorded so far.
func (m *MockActivitySink) Entries() []domain.ActivityEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ActivityEntry(nil), m.entries...)
}
