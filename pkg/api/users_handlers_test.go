package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcallister/backdesk/pkg/docstore"
	"github.com/jcallister/backdesk/pkg/sqlstore"
)

// newTestHandler wires a handler against in-memory fakes. The index file
// path may be empty for tests that never touch index endpoints.
func newTestHandler(indexFile string, remote *MockRemoteIndexAPI) (*Handler, *MockUserStore, *docstore.Store, *MockActivitySink) {
	users := NewMockUserStore()
	categories := docstore.NewStore()
	activity := NewMockActivitySink()

	cfg := IndexConfig{FilePath: indexFile, ProjectID: "demo-project", DatabaseID: "(default)"}

	// A typed nil would defeat the handler's nil check on the interface.
	var h *Handler
	if remote != nil {
		h = NewHandler(users, categories, activity, cfg, remote)
	} else {
		h = NewHandler(users, categories, activity, cfg, nil)
	}
	return h, users, categories, activity
}

func newTestRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	h.RegisterRoutes(router)
	return router
}

func seedMockUsers(t *testing.T, users *MockUserStore, inputs ...sqlstore.UserInput) []string {
	t.Helper()
	ids := make([]string, 0, len(inputs))
	for _, input := range inputs {
		user, err := users.Create(context.Background(), input)
		require.NoError(t, err)
		ids = append(ids, user.ID())
	}
	return ids
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Error.Code
}

func TestHandler_HandleListUsers(t *testing.T) {
	tests := []struct {
		name           string
		queryParams    string
		expectedStatus int
		expectedEmails []string
		expectedTotal  float64
	}{
		{
			name:           "all users default sort",
			queryParams:    "?sort=email&order=asc",
			expectedStatus: http.StatusOK,
			expectedEmails: []string{"alice@example.com", "bob@example.com", "carol@example.com"},
			expectedTotal:  3,
		},
		{
			name:           "search matches email substring",
			queryParams:    "?search=ali&sort=email&order=asc",
			expectedStatus: http.StatusOK,
			expectedEmails: []string{"alice@example.com"},
			expectedTotal:  1,
		},
		{
			name:           "role filter",
			queryParams:    "?role=admin&sort=email&order=asc",
			expectedStatus: http.StatusOK,
			expectedEmails: []string{"bob@example.com"},
			expectedTotal:  1,
		},
		{
			name:           "second page",
			queryParams:    "?sort=email&order=asc&page=2&per_page=2",
			expectedStatus: http.StatusOK,
			expectedEmails: []string{"carol@example.com"},
			expectedTotal:  3,
		},
		{
			name:           "invalid page",
			queryParams:    "?page=0",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-numeric page",
			queryParams:    "?page=abc",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, users, _, _ := newTestHandler("", nil)
			seedMockUsers(t, users,
				sqlstore.UserInput{Email: "alice@example.com", FirstName: "Alice", Role: "user"},
				sqlstore.UserInput{Email: "bob@example.com", FirstName: "Bob", Role: "admin"},
				sqlstore.UserInput{Email: "carol@example.com", FirstName: "Carol", Role: "user"},
			)
			router := newTestRouter(h)

			req := httptest.NewRequest("GET", "/api/users"+tt.queryParams, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus != http.StatusOK {
				assert.Equal(t, "VALIDATION_ERROR", errorCode(t, w))
				return
			}

			body := decodeBody(t, w)
			pagination := body["pagination"].(map[string]interface{})
			assert.Equal(t, tt.expectedTotal, pagination["total"])

			items := body["users"].([]interface{})
			emails := make([]string, 0, len(items))
			for _, item := range items {
				emails = append(emails, item.(map[string]interface{})["email"].(string))
			}
			assert.Equal(t, tt.expectedEmails, emails)
		})
	}
}

func TestHandler_HandleCreateUser(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "valid user",
			body:           map[string]interface{}{"email": "dave@example.com", "first_name": "Dave"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing email",
			body:           map[string]interface{}{"first_name": "Nobody"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "malformed email",
			body:           map[string]interface{}{"email": "not-an-email"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "unknown role",
			body:           map[string]interface{}{"email": "dave@example.com", "role": "root"},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "duplicate email",
			body:           map[string]interface{}{"email": "alice@example.com"},
			expectedStatus: http.StatusConflict,
			expectedCode:   "EMAIL_EXISTS",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, users, _, activity := newTestHandler("", nil)
			seedMockUsers(t, users, sqlstore.UserInput{Email: "alice@example.com"})
			router := newTestRouter(h)

			payload, err := json.Marshal(tt.body)
			require.NoError(t, err)

			req := httptest.NewRequest("POST", "/api/users", bytes.NewBuffer(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusCreated {
				body := decodeBody(t, w)
				assert.Equal(t, "User created successfully", body["message"])
				user := body["user"].(map[string]interface{})
				assert.Equal(t, "dave@example.com", user["email"])
				assert.Equal(t, "user", user["role"])
				assert.Equal(t, 2, users.Count())

				entries := activity.Entries()
				require.Len(t, entries, 1)
				assert.Equal(t, "user_created", entries[0].EventType)
				assert.Contains(t, entries[0].Description, "dave@example.com")
			} else {
				assert.Equal(t, tt.expectedCode, errorCode(t, w))
				assert.Equal(t, 1, users.Count())
				assert.Empty(t, activity.Entries())
			}
		})
	}
}

func TestHandler_HandleGetUser(t *testing.T) {
	h, users, _, _ := newTestHandler("", nil)
	ids := seedMockUsers(t, users, sqlstore.UserInput{Email: "alice@example.com", FirstName: "Alice"})
	router := newTestRouter(h)

	t.Run("existing user", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/users/"+ids[0], nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "alice@example.com", body["email"])
	})

	t.Run("missing user", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/users/nope", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "USER_NOT_FOUND", errorCode(t, w))
	})
}

func TestHandler_HandleUpdateUser(t *testing.T) {
	tests := []struct {
		name           string
		targetOffset   int
		body           map[string]interface{}
		expectedStatus int
		expectedCode   string
	}{
		{
			name:           "partial update",
			body:           map[string]interface{}{"first_name": "Alicia", "status": "inactive"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "empty update rejected",
			body:           map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "VALIDATION_ERROR",
		},
		{
			name:           "email collision",
			body:           map[string]interface{}{"email": "bob@example.com"},
			expectedStatus: http.StatusConflict,
			expectedCode:   "EMAIL_EXISTS",
		},
		{
			name:           "own email is not a collision",
			body:           map[string]interface{}{"email": "alice@example.com"},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "missing user",
			targetOffset:   -1,
			body:           map[string]interface{}{"first_name": "Ghost"},
			expectedStatus: http.StatusNotFound,
			expectedCode:   "USER_NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, users, _, activity := newTestHandler("", nil)
			ids := seedMockUsers(t, users,
				sqlstore.UserInput{Email: "alice@example.com", FirstName: "Alice"},
				sqlstore.UserInput{Email: "bob@example.com", FirstName: "Bob"},
			)
			router := newTestRouter(h)

			target := ids[0]
			if tt.targetOffset < 0 {
				target = "missing-id"
			}

			payload, err := json.Marshal(tt.body)
			require.NoError(t, err)

			req := httptest.NewRequest("PUT", "/api/users/"+target, bytes.NewBuffer(payload))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus == http.StatusOK {
				body := decodeBody(t, w)
				assert.Equal(t, "User updated successfully", body["message"])

				entries := activity.Entries()
				require.Len(t, entries, 1)
				assert.Equal(t, "user_updated", entries[0].EventType)
			} else {
				assert.Equal(t, tt.expectedCode, errorCode(t, w))
				assert.Empty(t, activity.Entries())
			}
		})
	}
}

func TestHandler_HandleDeleteUser(t *testing.T) {
	h, users, _, activity := newTestHandler("", nil)
	ids := seedMockUsers(t, users, sqlstore.UserInput{Email: "alice@example.com"})
	router := newTestRouter(h)

	t.Run("existing user", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/users/"+ids[0], nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 0, users.Count())

		entries := activity.Entries()
		require.Len(t, entries, 1)
		assert.Equal(t, "user_deleted", entries[0].EventType)
		assert.Contains(t, entries[0].Description, "alice@example.com")
	})

	t.Run("missing user", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/api/users/"+ids[0], nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "USER_NOT_FOUND", errorCode(t, w))
	})
}

func TestHandler_HandleListUsers_StoreUnavailable(t *testing.T) {
	h, users, _, _ := newTestHandler("", nil)
	users.FailWith = fmt.Errorf("connection refused")
	router := newTestRouter(h)

	req := httptest.NewRequest("GET", "/api/users", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "STORE_UNAVAILABLE", errorCode(t, w))
}

func TestHandler_HandleListRoles(t *testing.T) {
	h, _, _, _ := newTestHandler("", nil)
	router := newTestRouter(h)

	req := httptest.NewRequest("GET", "/api/users/roles", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	roles := body["roles"].([]interface{})
	require.Len(t, roles, 3)
	assert.Equal(t, "user", roles[0].(map[string]interface{})["value"])
}

func TestHandler_HandleHealth(t *testing.T) {
	h, _, _, _ := newTestHandler("", nil)
	router := newTestRouter(h)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "healthy", body["status"])
}
