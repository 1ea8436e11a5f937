// Package httpapi implements the service.Service interface against the
// remote JSON task API.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"todo/internal/config"
	"todo/internal/service"
)

const (
	// TasksPath is the collection endpoint.
	TasksPath = "/tasks"

	// RequestIDHeader carries a per-request correlation id.
	RequestIDHeader = "X-Request-Id"
)

// Client implements service.Service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client for the API selected by cfg.
func New(cfg *config.Config, opts ...Option) *Client {
	return NewWithHTTPClient(cfg.APIURL, &http.Client{Timeout: cfg.Timeout}, opts...)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(baseURL string, httpClient *http.Client, opts ...Option) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	c := &Client{
		baseURL:    config.NormalizeURL(baseURL),
		httpClient: httpClient,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListTasks returns all tasks in server order.
func (c *Client) ListTasks(ctx context.Context) ([]service.Task, error) {
	var tasks []service.Task
	if err := c.do(ctx, http.MethodGet, TasksPath, nil, &tasks); err != nil {
		return nil, err
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	return tasks, nil
}

// GetTask returns a single task.
func (c *Client) GetTask(ctx context.Context, id int) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodGet, taskPath(id), nil, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// CreateTask creates a task.
func (c *Client) CreateTask(ctx context.Context, req service.CreateTaskRequest) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodPost, TasksPath, req, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// UpdateTask applies a partial update.
func (c *Client) UpdateTask(ctx context.Context, id int, req service.UpdateTaskRequest) (service.Task, error) {
	var task service.Task
	if err := c.do(ctx, http.MethodPut, taskPath(id), req, &task); err != nil {
		return service.Task{}, err
	}
	return task, nil
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, taskPath(id), nil, nil)
}

// ToggleTask sets only the completed flag.
func (c *Client) ToggleTask(ctx context.Context, id int, completed bool) (service.Task, error) {
	return c.UpdateTask(ctx, id, service.CompletedOnly(completed))
}

func taskPath(id int) string {
	return fmt.Sprintf("%s/%d", TasksPath, id)
}

// errorBody is the error shape returned on non-2xx responses.
type errorBody struct {
	Error string `json:"error"`
}

// do performs one round trip. body (if non-nil) is sent as JSON and a
// successful response is decoded into out (if non-nil). Every failure is
// returned as *service.APIError.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	url := c.baseURL + path
	requestID := uuid.NewString()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return service.TransportError(err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return service.TransportError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	c.logger.Debug("api request",
		slog.String("method", method),
		slog.String("url", url),
		slog.String("request_id", requestID))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed",
			slog.String("request_id", requestID),
			slog.Any("err", err))
		return service.TransportError(err)
	}
	defer resp.Body.Close() //nolint:errcheck

	c.logger.Debug("api response",
		slog.String("request_id", requestID),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return service.TransportError(fmt.Errorf("decode response: %w", err))
	}
	return nil
}

// decodeError builds an APIError from a non-2xx response, using the body's
// error field when it is present and parsable.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)

	var eb errorBody
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &eb); err != nil {
			eb.Error = ""
		}
	}
	msg := strings.TrimSpace(eb.Error)
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, statusText(resp))
	}
	return service.HTTPError(resp.StatusCode, msg)
}

// statusText returns the reason phrase the server sent, falling back to the
// standard text for the code.
func statusText(resp *http.Response) string {
	reason := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if reason == "" {
		return http.StatusText(resp.StatusCode)
	}
	return reason
}
