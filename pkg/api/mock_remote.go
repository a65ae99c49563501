package api

import (
	"context"
	"sync"

	"github.com/jcallister/backdesk/pkg/indexes"
)

// mockRemoteCall records one CreateIndex invocation.
type mockRemoteCall struct {
	CollectionGroup string
	Payload         indexes.Payload
}

// MockRemoteIndexAPI provides a scripted implementation of
// indexes.RemoteIndexAPI for testing. Responses are consumed in call
// order; once exhausted, further calls succeed.
type MockRemoteIndexAPI struct {
	mu        sync.Mutex
	calls     []mockRemoteCall
	responses []error
}

// NewMockRemoteIndexAPI creates a mock whose first calls fail with the
// given errors, in order. A nil entry means success.
func NewMockRemoteIndexAPI(responses ...error) *MockRemoteIndexAPI {
	return &MockRemoteIndexAPI{responses: responses}
}

func (m *MockRemoteIndexAPI) CreateIndex(ctx context.Context, collectionGroup string, payload indexes.Payload) (*indexes.OperationHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := len(m.calls)
	m.calls = append(m.calls, mockRemoteCall{CollectionGroup: collectionGroup, Payload: payload})

	if call < len(m.responses) && m.responses[call] != nil {
		return nil, m.responses[call]
	}
	return &indexes.OperationHandle{Name: "operations/mock-op"}, nil
}

// Calls returns the number of CreateIndex invocations.
func (m *MockRemoteIndexAPI) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
