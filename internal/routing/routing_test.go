package routing_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"todoapp/internal/routing"
	"todoapp/pkg/handlers"
	"todoapp/pkg/task"
	"todoapp/pkg/task/mocks"
	"todoapp/pkg/user"
)

var secret = []byte("routing-secret")

func newRouter(t *testing.T) (*mux.Router, *mocks.ServiceTask) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tasks := new(mocks.ServiceTask)

	r := mux.NewRouter()
	routing.Register(r, secret,
		handlers.NewAuthHandler(user.NewService(nil), logger, secret, time.Hour),
		handlers.NewTaskHandler(tasks, logger),
		logger,
	)
	return r, tasks
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := handlers.GenerateToken(userID, userID+"@example.com", secret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _ := newRouter(t)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAuthRoutesSkipJWT(t *testing.T) {
	r, _ := newRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", bytes.NewBufferString(`{"email":"","password":""}`))
	req.Header.Set("Content-Type", "application/json")

	w := serve(r, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "Authorization header missing")
}

func TestTaskRoutes(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
		auth   string
		setup  func(m *mocks.ServiceTask)
		status int
		body   string
	}{
		{
			name:   "no token",
			method: http.MethodGet,
			path:   "/api/u1/tasks",
			status: http.StatusUnauthorized,
			body:   `{"detail":"Authorization header missing"}`,
		},
		{
			name:   "other user's list",
			method: http.MethodGet,
			path:   "/api/u1/tasks",
			auth:   "u2",
			status: http.StatusForbidden,
			body:   `{"detail":"Cannot access other users' tasks"}`,
		},
		{
			name:   "own list",
			method: http.MethodGet,
			path:   "/api/u1/tasks",
			auth:   "u1",
			setup: func(m *mocks.ServiceTask) {
				m.On("List", mock.Anything, "u1").Return([]*task.Task{}, nil)
			},
			status: http.StatusOK,
			body:   `[]`,
		},
		{
			name:   "toggle",
			method: http.MethodPatch,
			path:   "/api/u1/tasks/t1/complete",
			auth:   "u1",
			setup: func(m *mocks.ServiceTask) {
				m.On("Toggle", mock.Anything, "u1", "t1").Return(&task.Task{ID: "t1", UserID: "u1", Title: "A", Completed: true}, nil)
			},
			status: http.StatusOK,
		},
		{
			name:   "delete missing",
			method: http.MethodDelete,
			path:   "/api/u1/tasks/t9",
			auth:   "u1",
			setup: func(m *mocks.ServiceTask) {
				m.On("Delete", mock.Anything, "u1", "t9").Return(task.ErrNotFound)
			},
			status: http.StatusNotFound,
			body:   `{"detail":"Task not found"}`,
		},
		{
			name:   "method not routed",
			method: http.MethodPost,
			path:   "/api/u1/tasks/t1",
			auth:   "u1",
			status: http.StatusMethodNotAllowed,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			r, m := newRouter(t)
			if test.setup != nil {
				test.setup(m)
			}
			req := httptest.NewRequest(test.method, test.path, nil)
			if test.auth != "" {
				req.Header.Set("Authorization", bearer(t, test.auth))
			}

			w := serve(r, req)

			assert.Equal(t, test.status, w.Code)
			if test.body != "" {
				assert.JSONEq(t, test.body, w.Body.String())
			}
			m.AssertExpectations(t)
		})
	}
}
