// Package memapi provides an in-memory implementation of the task API,
// both as a service.Service and as an HTTP handler.
package memapi

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"todo/internal/service"
)

// Error messages returned by the in-memory API.
const (
	MsgTitleRequired = "Title is required"
	MsgNotFound      = "Task not found"
	MsgInvalidColor  = "Invalid color"
)

// Memory is a mutex-guarded in-memory task collection.
// Tasks are listed newest first.
type Memory struct {
	mu     sync.RWMutex
	tasks  []service.Task // newest first
	nextID int
	now    func() time.Time
}

// NewMemory creates an empty collection.
func NewMemory() *Memory {
	return &Memory{
		nextID: 1,
		now:    time.Now,
	}
}

// SetClock overrides the timestamp source (for testing).
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func (m *Memory) timestamp() string {
	return m.now().UTC().Format(time.RFC3339)
}

func (m *Memory) indexOf(id int) int {
	for i, t := range m.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func notFound() *service.APIError {
	return &service.APIError{Status: http.StatusNotFound, Message: MsgNotFound}
}

func badRequest(msg string) *service.APIError {
	return &service.APIError{Status: http.StatusBadRequest, Message: msg}
}

// ListTasks implements service.Service.
func (m *Memory) ListTasks(ctx context.Context) ([]service.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]service.Task, len(m.tasks))
	copy(result, m.tasks)
	return result, nil
}

// GetTask implements service.Service.
func (m *Memory) GetTask(ctx context.Context, id int) (service.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.indexOf(id)
	if i < 0 {
		return service.Task{}, notFound()
	}
	return m.tasks[i], nil
}

// CreateTask implements service.Service.
func (m *Memory) CreateTask(ctx context.Context, req service.CreateTaskRequest) (service.Task, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return service.Task{}, badRequest(MsgTitleRequired)
	}
	if req.Color != "" && !req.Color.Valid() {
		return service.Task{}, badRequest(MsgInvalidColor)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	ts := m.timestamp()
	task := service.Task{
		ID:        m.nextID,
		Title:     title,
		Color:     req.Color,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	m.nextID++
	m.tasks = append([]service.Task{task}, m.tasks...)
	return task, nil
}

// UpdateTask implements service.Service.
func (m *Memory) UpdateTask(ctx context.Context, id int, req service.UpdateTaskRequest) (service.Task, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return service.Task{}, badRequest(MsgTitleRequired)
	}
	if req.Color != nil && *req.Color != "" && !req.Color.Valid() {
		return service.Task{}, badRequest(MsgInvalidColor)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return service.Task{}, notFound()
	}

	task := m.tasks[i]
	if req.Title != nil {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Color != nil {
		task.Color = *req.Color
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	task.UpdatedAt = m.timestamp()
	m.tasks[i] = task
	return task, nil
}

// DeleteTask implements service.Service.
func (m *Memory) DeleteTask(ctx context.Context, id int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.indexOf(id)
	if i < 0 {
		return notFound()
	}
	m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
	return nil
}

// ToggleTask implements service.Service.
func (m *Memory) ToggleTask(ctx context.Context, id int, completed bool) (service.Task, error) {
	return m.UpdateTask(ctx, id, service.CompletedOnly(completed))
}
