package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"todoapp/pkg/task"
)

// Backend is a testify mock of tasklist.Backend.
type Backend struct {
	mock.Mock
}

func (m *Backend) ListTasks(ctx context.Context, userID string) ([]task.Task, error) {
	args := m.Called(ctx, userID)
	if tasks := args.Get(0); tasks != nil {
		return tasks.([]task.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Backend) GetTask(ctx context.Context, userID, taskID string) (task.Task, error) {
	args := m.Called(ctx, userID, taskID)
	return args.Get(0).(task.Task), args.Error(1)
}

func (m *Backend) CreateTask(ctx context.Context, userID string, draft task.Draft) (task.Task, error) {
	args := m.Called(ctx, userID, draft)
	return args.Get(0).(task.Task), args.Error(1)
}

func (m *Backend) UpdateTask(ctx context.Context, userID, taskID string, patch task.Patch) (task.Task, error) {
	args := m.Called(ctx, userID, taskID, patch)
	return args.Get(0).(task.Task), args.Error(1)
}

func (m *Backend) ToggleComplete(ctx context.Context, userID, taskID string) (task.Task, error) {
	args := m.Called(ctx, userID, taskID)
	return args.Get(0).(task.Task), args.Error(1)
}

func (m *Backend) DeleteTask(ctx context.Context, userID, taskID string) error {
	return m.Called(ctx, userID, taskID).Error(0)
}
