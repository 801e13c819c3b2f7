package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLen = 8

var (
	ErrMissingCredentials = errors.New("email and password are required")
	ErrShortPassword      = errors.New("password must be at least 8 characters")
)

type ServiceInterface interface {
	Signup(ctx context.Context, email, password, name string) (*User, error)
	Signin(ctx context.Context, email, password string) (*User, error)
}

type Service struct {
	Repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{Repo: repo}
}

func (s *Service) Signup(ctx context.Context, email, password, name string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return nil, ErrShortPassword
	}
	if name = strings.TrimSpace(name); name == "" {
		name = email
	}

	exist, err := s.Repo.FindByEmail(ctx, email)
	if exist != nil && err == nil {
		return nil, ErrAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password error: %w", err)
	}

	user := &User{
		ID:       uuid.NewString(),
		Email:    email,
		Name:     name,
		Password: string(hashedPassword),
	}

	if err := s.Repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *Service) Signin(ctx context.Context, email, password string) (*User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrMissingCredentials
	}

	user, err := s.Repo.FindByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
