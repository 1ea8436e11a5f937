// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All remote API calls go through this interface.
// Views and the store never build HTTP requests directly.
//
// Every method fails with *APIError.
type Service interface {
	// ListTasks returns all tasks in server order.
	ListTasks(ctx context.Context) ([]Task, error)

	// GetTask returns a single task. Unknown ids fail with status 404.
	GetTask(ctx context.Context, id int) (Task, error)

	// CreateTask creates a task. The server assigns id and timestamps.
	CreateTask(ctx context.Context, req CreateTaskRequest) (Task, error)

	// UpdateTask applies a partial update and returns the updated task.
	UpdateTask(ctx context.Context, id int, req UpdateTaskRequest) (Task, error)

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id int) error

	// ToggleTask sets only the completed flag.
	ToggleTask(ctx context.Context, id int, completed bool) (Task, error)
}
