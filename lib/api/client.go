// Copyright 2026 The Taskdeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/taskdeck/taskdeck/lib/tasks"
)

// TokenProvider supplies the current session token, or "" when the
// process is anonymous. The session controller implements this.
type TokenProvider interface {
	Token() string
}

// Error is a response the server returned with a non-success status. The
// Message comes from the response body's "message" field when present,
// or the raw body otherwise.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: server returned %d: %s", e.StatusCode, e.Message)
}

// ErrBadResponse wraps a success response whose payload does not match
// the expected shape. Malformed tasks are rejected at this boundary
// instead of propagating half-empty entries into the UI.
var ErrBadResponse = errors.New("api: malformed response from server")

// Config holds the settings for creating a Client.
type Config struct {
	// BaseURL is the service root (e.g., "https://tasks.example.com").
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default().
	Logger *slog.Logger
	// Tokens supplies the bearer token. If nil, requests are always
	// unauthenticated.
	Tokens TokenProvider
}

// Client talks to the task-management service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	tokens     TokenProvider
}

// NewClient validates the configuration and builds a client. The base
// URL is stored with its trailing slash stripped and request URLs are
// built by concatenation.
func NewClient(config Config) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
		tokens:     config.Tokens,
	}, nil
}

// do performs one request and returns the response body. On 2xx, the
// body. On any other status, a *Error. A transport failure (nothing
// reached the server) is returned as a wrapped plain error, never a
// *Error — callers distinguish the two with errors.As.
func (c *Client) do(ctx context.Context, method, path string, requestBody any) ([]byte, error) {
	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: creating request: %w", err)
	}

	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
	}
	request.Header.Set("X-Request-ID", uuid.NewString())

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("api: reading response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	serverError := &Error{StatusCode: response.StatusCode}
	var envelope struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(responseBody, &envelope) == nil && envelope.Message != "" {
		serverError.Message = envelope.Message
	} else {
		serverError.Message = strings.TrimSpace(string(responseBody))
	}

	c.logger.Debug("server rejected request",
		"method", method,
		"path", path,
		"status", response.StatusCode,
	)
	return nil, serverError
}

// authResponse is the body of both auth endpoints: a token on successful
// login, a message otherwise.
type authResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// LoginUser exchanges credentials for a session token. A response
// without a token — whatever its status — is a rejected login; the
// server's message is preserved in the returned *Error.
func (c *Client) LoginUser(ctx context.Context, email, password string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	var auth authResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return "", fmt.Errorf("%w: login payload is not JSON: %v", ErrBadResponse, err)
	}
	if auth.Token == "" {
		message := auth.Message
		if message == "" {
			message = "login rejected"
		}
		return "", &Error{StatusCode: http.StatusUnauthorized, Message: message}
	}
	return auth.Token, nil
}

// Signup registers a new account and returns the server's message
// (e.g., "User registered successfully"). Rejections such as
// "User already exists" arrive as a *Error carrying that message.
func (c *Client) Signup(ctx context.Context, name, email, password string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/auth/signup", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	var auth authResponse
	if err := json.Unmarshal(body, &auth); err != nil {
		return "", fmt.Errorf("%w: signup payload is not JSON: %v", ErrBadResponse, err)
	}
	return auth.Message, nil
}

// ListTasks fetches the full collection for the authenticated user.
func (c *Client) ListTasks(ctx context.Context) ([]tasks.Task, error) {
	body, err := c.do(ctx, http.MethodGet, "/tasks", nil)
	if err != nil {
		return nil, err
	}

	var list []tasks.Task
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("%w: task list payload: %v", ErrBadResponse, err)
	}
	for i := range list {
		if err := checkTaskShape(list[i]); err != nil {
			return nil, err
		}
	}
	return list, nil
}

// GetTask fetches a single task by id.
func (c *Client) GetTask(ctx context.Context, id string) (tasks.Task, error) {
	body, err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil)
	if err != nil {
		return tasks.Task{}, err
	}
	return decodeTask(body)
}

// CreateTask submits a draft and returns the server-assigned task.
func (c *Client) CreateTask(ctx context.Context, draft tasks.Draft) (tasks.Task, error) {
	body, err := c.do(ctx, http.MethodPost, "/tasks", draft)
	if err != nil {
		return tasks.Task{}, err
	}
	return decodeTask(body)
}

// UpdateTask replaces the task's editable fields and returns the updated
// task.
func (c *Client) UpdateTask(ctx context.Context, id string, draft tasks.Draft) (tasks.Task, error) {
	body, err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), draft)
	if err != nil {
		return tasks.Task{}, err
	}
	return decodeTask(body)
}

// DeleteTask removes the task server-side. Any non-2xx response —
// including "already deleted" — is surfaced as a *Error.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil)
	return err
}

func decodeTask(body []byte) (tasks.Task, error) {
	var task tasks.Task
	if err := json.Unmarshal(body, &task); err != nil {
		return tasks.Task{}, fmt.Errorf("%w: task payload: %v", ErrBadResponse, err)
	}
	if err := checkTaskShape(task); err != nil {
		return tasks.Task{}, err
	}
	return task, nil
}

// checkTaskShape is the explicit decode boundary for server responses: a
// task without an id or title is rejected here rather than rendered as a
// blank row.
func checkTaskShape(task tasks.Task) error {
	if task.ID == "" {
		return fmt.Errorf("%w: task missing _id", ErrBadResponse)
	}
	if task.Title == "" {
		return fmt.Errorf("%w: task %s missing title", ErrBadResponse, task.ID)
	}
	return nil
}
