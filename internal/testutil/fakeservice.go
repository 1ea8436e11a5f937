// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"todo/internal/memapi"
	"todo/internal/service"
)

// FixedTime is the clock used by FakeService timestamps.
var FixedTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mem *memapi.Memory

	mu    sync.Mutex
	calls map[string]int

	// Error injection for testing
	ListTasksErr  error
	GetTaskErr    error
	CreateTaskErr error
	UpdateTaskErr error
	DeleteTaskErr error
	ToggleTaskErr error

	// ListTasksResult, when non-nil, is returned by ListTasks instead of the
	// stored tasks.
	ListTasksResult []service.Task
}

// NewFakeService creates an empty FakeService with a fixed clock.
func NewFakeService() *FakeService {
	mem := memapi.NewMemory()
	mem.SetClock(func() time.Time { return FixedTime })
	return &FakeService{
		mem:   mem,
		calls: make(map[string]int),
	}
}

// AddTask stores a task through the in-memory API and returns it.
// Panics if title is blank.
func (f *FakeService) AddTask(title string, color service.Color) service.Task {
	task, err := f.mem.CreateTask(context.Background(), service.CreateTaskRequest{Title: title, Color: color})
	if err != nil {
		panic(err)
	}
	return task
}

// Calls returns how many times the named method was invoked.
func (f *FakeService) Calls(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *FakeService) record(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[method]++
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.record("ListTasks")
	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	if f.ListTasksResult != nil {
		result := make([]service.Task, len(f.ListTasksResult))
		copy(result, f.ListTasksResult)
		return result, nil
	}
	return f.mem.ListTasks(ctx)
}

// GetTask implements service.Service.
func (f *FakeService) GetTask(ctx context.Context, id int) (service.Task, error) {
	f.record("GetTask")
	if f.GetTaskErr != nil {
		return service.Task{}, f.GetTaskErr
	}
	return f.mem.GetTask(ctx, id)
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, req service.CreateTaskRequest) (service.Task, error) {
	f.record("CreateTask")
	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	return f.mem.CreateTask(ctx, req)
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int, req service.UpdateTaskRequest) (service.Task, error) {
	f.record("UpdateTask")
	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	return f.mem.UpdateTask(ctx, id, req)
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int) error {
	f.record("DeleteTask")
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	return f.mem.DeleteTask(ctx, id)
}

// ToggleTask implements service.Service.
func (f *FakeService) ToggleTask(ctx context.Context, id int, completed bool) (service.Task, error) {
	f.record("ToggleTask")
	if f.ToggleTaskErr != nil {
		return service.Task{}, f.ToggleTaskErr
	}
	return f.mem.ToggleTask(ctx, id, completed)
}

// NewFakeAPI starts an HTTP server serving the task API over svc.
// The server is closed when the test finishes.
func NewFakeAPI(t testing.TB, svc service.Service) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(memapi.NewHandler(svc, nil))
	t.Cleanup(srv.Close)
	return srv
}

// NewStaticAPI starts an HTTP server that answers every request with the
// given status and body. The server is closed when the test finishes.
func NewStaticAPI(t testing.TB, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(status)
		if body != "" {
			w.Write([]byte(body)) //nolint:errcheck
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}
