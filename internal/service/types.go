// Package service defines the backend-agnostic interface for task operations.
package service

// Task represents a single task item as returned by the API.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Color       Color  `json:"color,omitempty"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CreateTaskRequest is the body of a create call.
// Title is required by the API; Color is optional.
type CreateTaskRequest struct {
	Title string `json:"title"`
	Color Color  `json:"color,omitempty"`
}

// UpdateTaskRequest is the body of a partial update.
// Only non-nil fields are sent.
type UpdateTaskRequest struct {
	Title     *string `json:"title,omitempty"`
	Color     *Color  `json:"color,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// IsEmpty reports whether the request would change nothing.
func (r UpdateTaskRequest) IsEmpty() bool {
	return r.Title == nil && r.Color == nil && r.Completed == nil
}

// CompletedOnly returns an update request that only sets the completed flag.
func CompletedOnly(completed bool) UpdateTaskRequest {
	return UpdateTaskRequest{Completed: &completed}
}
