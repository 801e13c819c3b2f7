// Package tasklist keeps one user's task collection in sync with the backend.
// Mutations never merge into the cached list; callers re-fetch with List.
package tasklist

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"todoapp/pkg/task"
)

var (
	ErrNotAuthorized = errors.New("not authorized")
	ErrInFlight      = errors.New("operation already in progress")
	ErrCancelled     = errors.New("cancelled")
)

const DeletePrompt = "Are you sure you want to delete this task?"

// Backend is the subset of the REST client the controller needs.
type Backend interface {
	ListTasks(ctx context.Context, userID string) ([]task.Task, error)
	GetTask(ctx context.Context, userID, taskID string) (task.Task, error)
	CreateTask(ctx context.Context, userID string, draft task.Draft) (task.Task, error)
	UpdateTask(ctx context.Context, userID, taskID string, patch task.Patch) (task.Task, error)
	ToggleComplete(ctx context.Context, userID, taskID string) (task.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
}

type Confirmer interface {
	Confirm(prompt string) bool
}

type ConfirmFunc func(prompt string) bool

func (f ConfirmFunc) Confirm(prompt string) bool { return f(prompt) }

type Filter string

const (
	All       Filter = "all"
	Active    Filter = "active"
	Completed Filter = "completed"
)

func ParseFilter(s string) (Filter, error) {
	switch f := Filter(s); f {
	case All, Active, Completed:
		return f, nil
	case "":
		return All, nil
	default:
		return "", errors.New("unknown filter " + s + ": want all, active or completed")
	}
}

func (f Filter) Match(t task.Task) bool {
	switch f {
	case Active:
		return !t.Completed
	case Completed:
		return t.Completed
	default:
		return true
	}
}

type Counts struct {
	All       int
	Active    int
	Completed int
}

// Controller is owned by one view. Its lock is never held across a backend
// call.
type Controller struct {
	backend Backend
	logger  *slog.Logger

	mu       sync.Mutex
	tasks    []task.Task
	creating bool
	pending  map[string]struct{}
}

func NewController(backend Backend, logger *slog.Logger) *Controller {
	return &Controller{
		backend: backend,
		logger:  logger,
		tasks:   []task.Task{},
		pending: make(map[string]struct{}),
	}
}

// List fetches the collection and replaces the cache wholesale.
func (c *Controller) List(ctx context.Context, userID string) ([]task.Task, error) {
	if userID == "" {
		return nil, ErrNotAuthorized
	}

	tasks, err := c.backend.ListTasks(ctx, userID)
	if err != nil {
		c.logger.Warn("list tasks", "user", userID, "error", err)
		return nil, err
	}

	c.mu.Lock()
	c.tasks = append([]task.Task{}, tasks...)
	out := c.snapshot()
	c.mu.Unlock()

	return out, nil
}

func (c *Controller) Get(ctx context.Context, userID, taskID string) (task.Task, error) {
	if userID == "" {
		return task.Task{}, ErrNotAuthorized
	}
	return c.backend.GetTask(ctx, userID, taskID)
}

// Create validates locally, then posts. The cache is left alone.
func (c *Controller) Create(ctx context.Context, userID, title, description string) (task.Task, error) {
	if userID == "" {
		return task.Task{}, ErrNotAuthorized
	}
	draft, err := task.NewDraft(title, description)
	if err != nil {
		return task.Task{}, err
	}

	c.mu.Lock()
	if c.creating {
		c.mu.Unlock()
		return task.Task{}, ErrInFlight
	}
	c.creating = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.creating = false
		c.mu.Unlock()
	}()

	created, err := c.backend.CreateTask(ctx, userID, draft)
	if err != nil {
		c.logger.Warn("create task", "user", userID, "error", err)
		return task.Task{}, err
	}
	c.logger.Info("task created", "user", userID, "task", created.ID)
	return created, nil
}

// Update sends a partial edit and replaces the cached record, if any, with
// what the backend returned. It shares the per-task guard with toggle and
// delete.
func (c *Controller) Update(ctx context.Context, userID, taskID string, patch task.Patch) (task.Task, error) {
	if userID == "" {
		return task.Task{}, ErrNotAuthorized
	}
	if err := patch.Validate(); err != nil {
		return task.Task{}, err
	}
	if err := c.begin(taskID); err != nil {
		return task.Task{}, err
	}
	defer c.end(taskID)

	updated, err := c.backend.UpdateTask(ctx, userID, taskID, patch)
	if err != nil {
		c.logger.Warn("update task", "user", userID, "task", taskID, "error", err)
		return task.Task{}, err
	}

	c.mu.Lock()
	for i := range c.tasks {
		if c.tasks[i].ID == updated.ID {
			c.tasks[i] = updated
			break
		}
	}
	c.mu.Unlock()

	return updated, nil
}

// ToggleComplete flips the task on the backend. The cache keeps its old value
// until the caller lists again.
func (c *Controller) ToggleComplete(ctx context.Context, userID, taskID string) error {
	if userID == "" {
		return ErrNotAuthorized
	}
	if err := c.begin(taskID); err != nil {
		return err
	}
	defer c.end(taskID)

	if _, err := c.backend.ToggleComplete(ctx, userID, taskID); err != nil {
		c.logger.Warn("toggle task", "user", userID, "task", taskID, "error", err)
		return err
	}
	return nil
}

// Delete asks for confirmation before calling the backend. On failure the
// task stays cached and the error is returned for display.
func (c *Controller) Delete(ctx context.Context, userID, taskID string, confirm Confirmer) error {
	if userID == "" {
		return ErrNotAuthorized
	}
	if c.inFlight(taskID) {
		return ErrInFlight
	}
	if confirm == nil || !confirm.Confirm(DeletePrompt) {
		return ErrCancelled
	}
	if err := c.begin(taskID); err != nil {
		return err
	}
	defer c.end(taskID)

	if err := c.backend.DeleteTask(ctx, userID, taskID); err != nil {
		c.logger.Warn("delete task", "user", userID, "task", taskID, "error", err)
		return err
	}
	c.logger.Info("task deleted", "user", userID, "task", taskID)
	return nil
}

// Tasks returns a copy of the cached collection.
func (c *Controller) Tasks() []task.Task {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot()
}

func (c *Controller) Filter(f Filter) []task.Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]task.Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func (c *Controller) Counts() Counts {
	c.mu.Lock()
	defer c.mu.Unlock()

	counts := Counts{All: len(c.tasks)}
	for _, t := range c.tasks {
		if t.Completed {
			counts.Completed++
		} else {
			counts.Active++
		}
	}
	return counts
}

func (c *Controller) begin(taskID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.pending[taskID]; busy {
		return ErrInFlight
	}
	c.pending[taskID] = struct{}{}
	return nil
}

func (c *Controller) end(taskID string) {
	c.mu.Lock()
	delete(c.pending, taskID)
	c.mu.Unlock()
}

func (c *Controller) inFlight(taskID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, busy := c.pending[taskID]
	return busy
}

func (c *Controller) snapshot() []task.Task {
	return append([]task.Task{}, c.tasks...)
}
