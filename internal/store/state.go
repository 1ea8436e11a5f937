package store

import "todo/internal/service"

// State is an immutable snapshot of the store.
// Callers must not modify Tasks; every transition builds a new slice.
type State struct {
	// Tasks in server order, newest first after creation.
	Tasks []service.Task

	// Loading is true while a full fetch is in flight.
	Loading bool

	// Error is the active error message. Empty means no error.
	Error string
}

// Find returns the task with the given id.
func (s State) Find(id int) (service.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// CompletedCount returns the number of completed tasks.
func (s State) CompletedCount() int {
	n := 0
	for _, t := range s.Tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

// transition is a pure state change.
type transition func(State) State

func beginLoad() transition {
	return func(s State) State {
		s.Loading = true
		return s
	}
}

// setError records msg as the active error. An empty msg clears it.
func setError(msg string) transition {
	return func(s State) State {
		s.Error = msg
		s.Loading = false
		return s
	}
}

// setAll replaces the list. Repeated ids keep their first occurrence.
func setAll(tasks []service.Task) transition {
	return func(s State) State {
		seen := make(map[int]bool, len(tasks))
		list := make([]service.Task, 0, len(tasks))
		for _, t := range tasks {
			if seen[t.ID] {
				continue
			}
			seen[t.ID] = true
			list = append(list, t)
		}
		s.Tasks = list
		s.Loading = false
		s.Error = ""
		return s
	}
}

// added prepends task, dropping any existing entry with the same id.
func added(task service.Task) transition {
	return func(s State) State {
		list := make([]service.Task, 0, len(s.Tasks)+1)
		list = append(list, task)
		for _, t := range s.Tasks {
			if t.ID != task.ID {
				list = append(list, t)
			}
		}
		s.Tasks = list
		s.Error = ""
		return s
	}
}

// replaced swaps in task for the entry with the same id.
func replaced(task service.Task) transition {
	return func(s State) State {
		list := make([]service.Task, len(s.Tasks))
		for i, t := range s.Tasks {
			if t.ID == task.ID {
				t = task
			}
			list[i] = t
		}
		s.Tasks = list
		s.Error = ""
		return s
	}
}

func removed(id int) transition {
	return func(s State) State {
		list := make([]service.Task, 0, len(s.Tasks))
		for _, t := range s.Tasks {
			if t.ID != id {
				list = append(list, t)
			}
		}
		s.Tasks = list
		s.Error = ""
		return s
	}
}
