package task

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
)

var (
	ErrNotFound      = errors.New("task not found")
	ErrAlreadyExists = errors.New("task already exists")
)

// Task is the shared wire and storage representation. Description is nil
// when the task has none, which encodes as JSON null.
type Task struct {
	ID          string    `json:"id" bson:"_id"`
	UserID      string    `json:"user_id" bson:"user_id"`
	Title       string    `json:"title" bson:"title"`
	Description *string   `json:"description" bson:"description"`
	Completed   bool      `json:"completed" bson:"completed"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// Draft is the body of a create request.
type Draft struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

type ValidationError struct {
	Field string `json:"field"`
	Msg   string `json:"msg"`
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Msg
}

// NewDraft trims user input, drops an empty description and validates the result.
func NewDraft(title, description string) (Draft, error) {
	d := Draft{
		Title:       strings.TrimSpace(title),
		Description: optional(description),
	}
	return d, d.Validate()
}

func (d Draft) Validate() error {
	if err := validateTitle(d.Title); err != nil {
		return err
	}
	if d.Description != nil {
		return validateDescription(*d.Description)
	}
	return nil
}

// NewPatch builds a patch from edit-form input the same way NewDraft does.
func NewPatch(title, description *string, completed *bool) (Patch, error) {
	p := Patch{Completed: completed}
	if title != nil {
		t := strings.TrimSpace(*title)
		p.Title = &t
	}
	if description != nil {
		p.Description = optional(*description)
	}
	return p, p.Validate()
}

func (p Patch) Validate() error {
	if p.Title != nil {
		if err := validateTitle(*p.Title); err != nil {
			return err
		}
	}
	if p.Description != nil {
		return validateDescription(*p.Description)
	}
	return nil
}

func (p Patch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Completed == nil
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Msg: "Title is required"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLen {
		return &ValidationError{Field: "title", Msg: "Title must be less than 200 characters"}
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > MaxDescriptionLen {
		return &ValidationError{Field: "description", Msg: "Description must be less than 1000 characters"}
	}
	return nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

type Repository interface {
	Create(ctx context.Context, task *Task) error
	GetByID(ctx context.Context, userID, id string) (*Task, error)
	GetByUser(ctx context.Context, userID string) ([]*Task, error)
	Update(ctx context.Context, userID, id string, patch Patch) (*Task, error)
	Toggle(ctx context.Context, userID, id string) (*Task, error)
	Delete(ctx context.Context, userID, id string) error
}
