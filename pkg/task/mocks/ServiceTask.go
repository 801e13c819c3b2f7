package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"todoapp/pkg/task"
)

// ServiceTask is a testify mock of task.ServiceTask.
type ServiceTask struct {
	mock.Mock
}

func (m *ServiceTask) List(ctx context.Context, userID string) ([]*task.Task, error) {
	args := m.Called(ctx, userID)
	if tasks := args.Get(0); tasks != nil {
		return tasks.([]*task.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ServiceTask) Get(ctx context.Context, userID, id string) (*task.Task, error) {
	args := m.Called(ctx, userID, id)
	return taskOrNil(args.Get(0)), args.Error(1)
}

func (m *ServiceTask) Create(ctx context.Context, userID string, draft task.Draft) (*task.Task, error) {
	args := m.Called(ctx, userID, draft)
	return taskOrNil(args.Get(0)), args.Error(1)
}

func (m *ServiceTask) Update(ctx context.Context, userID, id string, patch task.Patch) (*task.Task, error) {
	args := m.Called(ctx, userID, id, patch)
	return taskOrNil(args.Get(0)), args.Error(1)
}

func (m *ServiceTask) Toggle(ctx context.Context, userID, id string) (*task.Task, error) {
	args := m.Called(ctx, userID, id)
	return taskOrNil(args.Get(0)), args.Error(1)
}

func (m *ServiceTask) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}
