// Package api is the HTTP client for the todo backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"todoapp/pkg/task"
)

// TokenSource supplies the bearer token for authenticated calls.
// *session.Gate satisfies it.
type TokenSource interface {
	Token() (string, error)
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	logger  *slog.Logger
}

func New(baseURL string, httpClient *http.Client, tokens TokenSource, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		tokens:  tokens,
		logger:  logger,
	}
}

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type SigninResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (c *Client) Signup(ctx context.Context, email, password, name string) error {
	body := map[string]string{"email": email, "password": password, "name": name}
	return c.do(ctx, "signup", http.MethodPost, "/auth/signup", body, nil, false)
}

func (c *Client) Signin(ctx context.Context, email, password string) (SigninResult, error) {
	var res SigninResult
	body := map[string]string{"email": email, "password": password}
	err := c.do(ctx, "signin", http.MethodPost, "/auth/signin", body, &res, false)
	return res, err
}

func (c *Client) ListTasks(ctx context.Context, userID string) ([]task.Task, error) {
	var tasks []task.Task
	if err := c.do(ctx, "list tasks", http.MethodGet, tasksPath(userID), nil, &tasks, true); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, userID, taskID string) (task.Task, error) {
	var t task.Task
	err := c.do(ctx, "get task", http.MethodGet, taskPath(userID, taskID), nil, &t, true)
	return t, err
}

func (c *Client) CreateTask(ctx context.Context, userID string, draft task.Draft) (task.Task, error) {
	var t task.Task
	err := c.do(ctx, "create task", http.MethodPost, tasksPath(userID), draft, &t, true)
	return t, err
}

func (c *Client) UpdateTask(ctx context.Context, userID, taskID string, patch task.Patch) (task.Task, error) {
	var t task.Task
	err := c.do(ctx, "update task", http.MethodPut, taskPath(userID, taskID), patch, &t, true)
	return t, err
}

func (c *Client) ToggleComplete(ctx context.Context, userID, taskID string) (task.Task, error) {
	var t task.Task
	err := c.do(ctx, "toggle task", http.MethodPatch, taskPath(userID, taskID)+"/complete", nil, &t, true)
	return t, err
}

func (c *Client) DeleteTask(ctx context.Context, userID, taskID string) error {
	return c.do(ctx, "delete task", http.MethodDelete, taskPath(userID, taskID), nil, nil, true)
}

func tasksPath(userID string) string {
	return "/" + url.PathEscape(userID) + "/tasks"
}

func taskPath(userID, taskID string) string {
	return tasksPath(userID) + "/" + url.PathEscape(taskID)
}

func (c *Client) do(ctx context.Context, op, method, path string, in, out any, auth bool) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return &TransportError{Op: op, Err: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth {
		token, err := c.tokens.Token()
		if err != nil {
			return &TransportError{Op: op, Err: err}
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "op", op, "error", err)
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("response", "op", op, "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Detail json.RawMessage `json:"detail"`
		}
		data, _ := io.ReadAll(resp.Body)
		if len(data) > 0 {
			_ = json.Unmarshal(data, &payload)
		}
		terr := &TransportError{Op: op, Status: resp.StatusCode, Detail: payload.Detail}
		if auth && resp.StatusCode == http.StatusUnauthorized {
			terr.Err = ErrUnauthorized
		}
		return terr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Status: resp.StatusCode, Err: err}
	}
	return nil
}
