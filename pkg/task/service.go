package task

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ServiceTask interface {
	List(ctx context.Context, userID string) ([]*Task, error)
	Get(ctx context.Context, userID, id string) (*Task, error)
	Create(ctx context.Context, userID string, draft Draft) (*Task, error)
	Update(ctx context.Context, userID, id string, patch Patch) (*Task, error)
	Toggle(ctx context.Context, userID, id string) (*Task, error)
	Delete(ctx context.Context, userID, id string) error
}

type TaskService struct {
	Repo Repository
}

func NewService(repo Repository) *TaskService {
	return &TaskService{Repo: repo}
}

func (s *TaskService) List(ctx context.Context, userID string) ([]*Task, error) {
	return s.Repo.GetByUser(ctx, userID)
}

func (s *TaskService) Get(ctx context.Context, userID, id string) (*Task, error) {
	return s.Repo.GetByID(ctx, userID, id)
}

func (s *TaskService) Create(ctx context.Context, userID string, draft Draft) (*Task, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       draft.Title,
		Description: draft.Description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Repo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, userID, id string, patch Patch) (*Task, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}
	return s.Repo.Update(ctx, userID, id, patch)
}

func (s *TaskService) Toggle(ctx context.Context, userID, id string) (*Task, error) {
	return s.Repo.Toggle(ctx, userID, id)
}

func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	return s.Repo.Delete(ctx, userID, id)
}
