package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"todoapp/pkg/claims"
	"todoapp/pkg/handlers"
	"todoapp/pkg/task"
	"todoapp/pkg/task/mocks"
)

func newTaskHandler() (*handlers.TaskHandler, *mocks.ServiceTask) {
	m := new(mocks.ServiceTask)
	return handlers.NewTaskHandler(m, slog.Default()), m
}

func taskRequest(method, body string, vars map[string]string, subject string) *http.Request {
	r := httptest.NewRequest(method, "/api/u1/tasks", bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	if subject != "" {
		c := &claims.Claims{UserID: subject}
		c.Subject = subject
		r = r.WithContext(context.WithValue(r.Context(), claims.TokenContextKey, c))
	}
	return mux.SetURLVars(r, vars)
}

func decodeDetail(t *testing.T, w *httptest.ResponseRecorder) any {
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["detail"]
}

func TestListTasks(t *testing.T) {
	vars := map[string]string{"user_id": "u1"}

	t.Run("success", func(t *testing.T) {
		handler, m := newTaskHandler()
		m.On("List", mock.Anything, "u1").Return([]*task.Task{{ID: "t1", UserID: "u1", Title: "A"}}, nil)
		w := httptest.NewRecorder()

		handler.ListTasks(w, taskRequest(http.MethodGet, "", vars, "u1"))

		assert.Equal(t, http.StatusOK, w.Code)
		var got []task.Task
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got, 1)
		assert.Contains(t, w.Body.String(), `"description":null`)
	})

	t.Run("missing claims", func(t *testing.T) {
		handler, m := newTaskHandler()
		w := httptest.NewRecorder()

		handler.ListTasks(w, taskRequest(http.MethodGet, "", vars, ""))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		m.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("other user", func(t *testing.T) {
		handler, m := newTaskHandler()
		w := httptest.NewRecorder()

		handler.ListTasks(w, taskRequest(http.MethodGet, "", vars, "u2"))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Cannot access other users' tasks", decodeDetail(t, w))
		m.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})

	t.Run("service error", func(t *testing.T) {
		handler, m := newTaskHandler()
		m.On("List", mock.Anything, "u1").Return(nil, errors.New("mongo down"))
		w := httptest.NewRecorder()

		handler.ListTasks(w, taskRequest(http.MethodGet, "", vars, "u1"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "mongo down")
	})
}

func TestCreateTask(t *testing.T) {
	vars := map[string]string{"user_id": "u1"}

	t.Run("created", func(t *testing.T) {
		handler, m := newTaskHandler()
		m.On("Create", mock.Anything, "u1", task.Draft{Title: "Buy milk"}).
			Return(&task.Task{ID: "t1", UserID: "u1", Title: "Buy milk"}, nil)
		w := httptest.NewRecorder()

		handler.CreateTask(w, taskRequest(http.MethodPost, `{"title":"Buy milk"}`, vars, "u1"))

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"t1"`)
		m.AssertExpectations(t)
	})

	t.Run("validation error has structured detail", func(t *testing.T) {
		handler, m := newTaskHandler()
		m.On("Create", mock.Anything, "u1", task.Draft{Title: ""}).
			Return(nil, &task.ValidationError{Field: "title", Msg: "required"})
		w := httptest.NewRecorder()

		handler.CreateTask(w, taskRequest(http.MethodPost, `{"title":""}`, vars, "u1"))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, map[string]any{"field": "title", "msg": "required"}, decodeDetail(t, w))
	})

	t.Run("invalid json", func(t *testing.T) {
		handler, _ := newTaskHandler()
		w := httptest.NewRecorder()

		handler.CreateTask(w, taskRequest(http.MethodPost, `{"title": }`, vars, "u1"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "bad json", decodeDetail(t, w))
	})
}

func TestGetTask(t *testing.T) {
	vars := map[string]string{"user_id": "u1", "task_id": "t9"}

	handler, m := newTaskHandler()
	m.On("Get", mock.Anything, "u1", "t9").Return(nil, task.ErrNotFound)
	w := httptest.NewRecorder()

	handler.GetTask(w, taskRequest(http.MethodGet, "", vars, "u1"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Task not found", decodeDetail(t, w))
}

func TestUpdateTask(t *testing.T) {
	vars := map[string]string{"user_id": "u1", "task_id": "t1"}
	title := "Renamed"

	handler, m := newTaskHandler()
	m.On("Update", mock.Anything, "u1", "t1", task.Patch{Title: &title}).
		Return(&task.Task{ID: "t1", Title: title}, nil)
	w := httptest.NewRecorder()

	handler.UpdateTask(w, taskRequest(http.MethodPut, `{"title":"Renamed"}`, vars, "u1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Renamed")
	m.AssertExpectations(t)
}

func TestToggleComplete(t *testing.T) {
	vars := map[string]string{"user_id": "u1", "task_id": "t1"}

	handler, m := newTaskHandler()
	m.On("Toggle", mock.Anything, "u1", "t1").Return(&task.Task{ID: "t1", Completed: true}, nil)
	w := httptest.NewRecorder()

	handler.ToggleComplete(w, taskRequest(http.MethodPatch, "", vars, "u1"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"completed":true`)
}

func TestDeleteTask(t *testing.T) {
	vars := map[string]string{"user_id": "u1", "task_id": "t1"}

	t.Run("no content", func(t *testing.T) {
		handler, m := newTaskHandler()
		m.On("Delete", mock.Anything, "u1", "t1").Return(nil)
		w := httptest.NewRecorder()

		handler.DeleteTask(w, taskRequest(http.MethodDelete, "", vars, "u1"))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("forbidden", func(t *testing.T) {
		handler, m := newTaskHandler()
		w := httptest.NewRecorder()

		handler.DeleteTask(w, taskRequest(http.MethodDelete, "", vars, "intruder"))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "Cannot delete other users' tasks", decodeDetail(t, w))
		m.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})
}
