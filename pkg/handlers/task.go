package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"todoapp/pkg/task"
)

const (
	muxVarUserID = "user_id"
	muxVarTaskID = "task_id"
)

type TaskHandler struct {
	Service task.ServiceTask
	Logger  *slog.Logger
}

func NewTaskHandler(service task.ServiceTask, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r, "Cannot access other users' tasks")
	if !ok {
		return
	}

	tasks, err := h.Service.List(r.Context(), userID)
	if err != nil {
		h.fail(w, "list tasks", err)
		return
	}

	writeJSON(w, h.Logger, http.StatusOK, tasks)
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r, "Cannot create tasks for other users")
	if !ok {
		return
	}

	var draft task.Draft
	if ok := DecodeJSONBody(w, r, &draft); !ok {
		return
	}

	created, err := h.Service.Create(r.Context(), userID, draft)
	if err != nil {
		h.fail(w, "create task", err)
		return
	}

	if ok := writeJSON(w, h.Logger, http.StatusCreated, created); ok {
		h.Logger.Info("task created", "user", userID, muxVarTaskID, created.ID)
	}
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r, "Cannot access other users' tasks")
	if !ok {
		return
	}

	t, err := h.Service.Get(r.Context(), userID, mux.Vars(r)[muxVarTaskID])
	if err != nil {
		h.fail(w, "get task", err)
		return
	}

	writeJSON(w, h.Logger, http.StatusOK, t)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r, "Cannot update other users' tasks")
	if !ok {
		return
	}

	var patch task.Patch
	if ok := DecodeJSONBody(w, r, &patch); !ok {
		return
	}

	taskID := mux.Vars(r)[muxVarTaskID]
	updated, err := h.Service.Update(r.Context(), userID, taskID, patch)
	if err != nil {
		h.fail(w, "update task", err)
		return
	}

	if ok := writeJSON(w, h.Logger, http.StatusOK, updated); ok {
		h.Logger.Info("task updated", "user", userID, muxVarTaskID, taskID)
	}
}

func (h *TaskHandler) ToggleComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r, "Cannot update other users' tasks")
	if !ok {
		return
	}

	taskID := mux.Vars(r)[muxVarTaskID]
	toggled, err := h.Service.Toggle(r.Context(), userID, taskID)
	if err != nil {
		h.fail(w, "toggle task", err)
		return
	}

	if ok := writeJSON(w, h.Logger, http.StatusOK, toggled); ok {
		h.Logger.Info("task toggled", "user", userID, muxVarTaskID, taskID, "completed", toggled.Completed)
	}
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.owner(w, r, "Cannot delete other users' tasks")
	if !ok {
		return
	}

	taskID := mux.Vars(r)[muxVarTaskID]
	if err := h.Service.Delete(r.Context(), userID, taskID); err != nil {
		h.fail(w, "delete task", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	h.Logger.Info("task deleted", "user", userID, muxVarTaskID, taskID)
}

// owner returns the path user_id once it is known to match the token subject.
func (h *TaskHandler) owner(w http.ResponseWriter, r *http.Request, forbidden string) (string, bool) {
	c, ok := getClaimsFromContext(w, r)
	if !ok {
		return "", false
	}

	userID := mux.Vars(r)[muxVarUserID]
	if userID != c.Identity() {
		h.Logger.Info("forbidden", "user", c.Identity(), "path_user", userID)
		writeError(w, http.StatusForbidden, forbidden)
		return "", false
	}
	return userID, true
}

func (h *TaskHandler) fail(w http.ResponseWriter, op string, err error) {
	var vErr *task.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeError(w, http.StatusUnprocessableEntity, vErr)
	case errors.Is(err, task.ErrNotFound):
		writeError(w, http.StatusNotFound, "Task not found")
	default:
		h.Logger.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
