package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"todoapp/pkg/task"
)

// Repository is a testify mock of task.Repository.
type Repository struct {
	mock.Mock
}

func (m *Repository) Create(ctx context.Context, t *task.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *Repository) GetByID(ctx context.Context, userID, id string) (*task.Task, error) {
	args := m.Called(ctx, userID, id)
	return taskOrNil(args.Get(0)), args.Error(1)
}

func (m *Repository) GetByUser(ctx context.Context, userID string) ([]*task.Task, error) {
	args := m.Called(ctx, userID)
	if tasks := args.Get(0); tasks != nil {
		return tasks.([]*task.Task), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Repository) Update(ctx context.Context, userID, id string, patch task.Patch) (*task.Task, error) {
	args := m.Called(ctx, userID, id, patch)
	return taskOrNil(args.Get(0)), args.Error(1)
}

func (m *Repository) Toggle(ctx context.Context, userID, id string) (*task.Task, error) {
	args := m.Called(ctx, userID, id)
	return taskOrNil(args.Get(0)), args.Error(1)
}

func (m *Repository) Delete(ctx context.Context, userID, id string) error {
	return m.Called(ctx, userID, id).Error(0)
}

func taskOrNil(v any) *task.Task {
	if t, ok := v.(*task.Task); ok {
		return t
	}
	return nil
}
