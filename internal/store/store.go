// Package store holds the session's task list and mediates every change to it
// through the task service.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"todo/internal/service"
)

// Fallback messages used when a failure is not an *service.APIError.
const (
	MsgFetchFailed  = "Failed to fetch todos"
	MsgCreateFailed = "Failed to create todo"
	MsgUpdateFailed = "Failed to update todo"
	MsgDeleteFailed = "Failed to delete todo"
	MsgToggleFailed = "Failed to toggle todo"
	MsgLoadFailed   = "Failed to load todo"
)

// ErrDisposed is returned by actions called after Dispose.
var ErrDisposed = errors.New("store disposed")

// Store is the single in-memory source of truth for the task list.
// Views read snapshots and call action methods; nothing else mutates state.
type Store struct {
	svc    service.Service
	logger *slog.Logger

	mu       sync.Mutex
	state    State
	seq      uint64
	subs     map[int]func(State)
	nextSub  int
	mounted  bool
	disposed bool

	// notifyMu orders deliveries; delivered is the seq last handed out.
	notifyMu  sync.Mutex
	delivered uint64
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for failed actions.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an empty, unmounted store backed by svc.
func New(svc service.Service, opts ...Option) *Store {
	s := &Store{
		svc:    svc,
		logger: slog.Default(),
		state:  State{Tasks: []service.Task{}},
		subs:   make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init mounts the store and performs the initial fetch.
// Only the first call fetches; later calls return immediately.
func (s *Store) Init(ctx context.Context) {
	s.mu.Lock()
	if s.mounted || s.disposed {
		s.mu.Unlock()
		return
	}
	s.mounted = true
	s.mu.Unlock()

	s.FetchAll(ctx)
}

// Dispose unmounts the store: subscribers are dropped, state is reset and
// further actions fail with ErrDisposed.
func (s *Store) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disposed = true
	s.subs = make(map[int]func(State))
	s.state = State{Tasks: []service.Task{}}
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers fn to be called with the new state after every
// transition. fn runs on the goroutine that performed the action, outside
// the state lock. Deliveries are serialized and never go backwards: when
// concurrent actions finish out of order, the older snapshot is dropped.
// fn must not call the store's actions synchronously; Snapshot is fine.
// The returned function unregisters fn.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
		})
	}
}

// dispatch applies t atomically and notifies subscribers.
// Transitions after Dispose are dropped.
func (s *Store) dispatch(t transition) {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.state = t(s.state)
	s.seq++
	seq := s.seq
	next := s.state
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if seq <= s.delivered {
		// A newer state was already published
		return
	}
	s.delivered = seq
	for _, fn := range subs {
		fn(next)
	}
}

func (s *Store) isDisposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// fail records err as the active error and returns it unchanged.
func (s *Store) fail(action, fallback string, err error) error {
	msg := fallback
	status := -1
	if apiErr, ok := service.AsAPIError(err); ok {
		msg = apiErr.Message
		status = apiErr.Status
	}
	s.logger.Debug("task action failed",
		slog.String("action", action),
		slog.Int("status", status),
		slog.String("error", msg))
	s.dispatch(setError(msg))
	return err
}

// FetchAll reloads the whole list. Failures are recorded in the state and
// leave the list unchanged; they are never returned.
func (s *Store) FetchAll(ctx context.Context) {
	if s.isDisposed() {
		return
	}
	s.dispatch(beginLoad())
	tasks, err := s.svc.ListTasks(ctx)
	if err != nil {
		s.fail("fetch", MsgFetchFailed, err)
		return
	}
	s.dispatch(setAll(tasks))
}

// Create creates a task and prepends it to the list.
// Validation is left to the service.
func (s *Store) Create(ctx context.Context, req service.CreateTaskRequest) (service.Task, error) {
	if s.isDisposed() {
		return service.Task{}, ErrDisposed
	}
	task, err := s.svc.CreateTask(ctx, req)
	if err != nil {
		return service.Task{}, s.fail("create", MsgCreateFailed, err)
	}
	s.dispatch(added(task))
	return task, nil
}

// Update applies a partial update and replaces the task in the list.
func (s *Store) Update(ctx context.Context, id int, req service.UpdateTaskRequest) (service.Task, error) {
	if s.isDisposed() {
		return service.Task{}, ErrDisposed
	}
	task, err := s.svc.UpdateTask(ctx, id, req)
	if err != nil {
		return service.Task{}, s.fail("update", MsgUpdateFailed, err)
	}
	s.dispatch(replaced(task))
	return task, nil
}

// Toggle sets the completed flag and replaces the task in the list.
func (s *Store) Toggle(ctx context.Context, id int, completed bool) (service.Task, error) {
	if s.isDisposed() {
		return service.Task{}, ErrDisposed
	}
	task, err := s.svc.ToggleTask(ctx, id, completed)
	if err != nil {
		return service.Task{}, s.fail("toggle", MsgToggleFailed, err)
	}
	s.dispatch(replaced(task))
	return task, nil
}

// Remove deletes a task and drops it from the list.
func (s *Store) Remove(ctx context.Context, id int) error {
	if s.isDisposed() {
		return ErrDisposed
	}
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		return s.fail("delete", MsgDeleteFailed, err)
	}
	s.dispatch(removed(id))
	return nil
}

// Get loads a single task. A task already in the list is refreshed in
// place; a task not in the list is returned without being added.
func (s *Store) Get(ctx context.Context, id int) (service.Task, error) {
	if s.isDisposed() {
		return service.Task{}, ErrDisposed
	}
	task, err := s.svc.GetTask(ctx, id)
	if err != nil {
		return service.Task{}, s.fail("get", MsgLoadFailed, err)
	}
	s.dispatch(replaced(task))
	return task, nil
}

// ClearError dismisses the active error without retrying anything.
func (s *Store) ClearError() {
	s.dispatch(setError(""))
}
