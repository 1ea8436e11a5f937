package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/store"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoCmd{})
	Register(&ToggleCmd{})
}

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string      { return "done" }
func (c *DoneCmd) Aliases() []string { return nil }
func (c *DoneCmd) Synopsis() string  { return "Mark tasks completed" }
func (c *DoneCmd) Usage() string     { return "todo done <id...>" }
func (c *DoneCmd) NeedsAPI() bool    { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	done := true
	return runSetCompleted(ctx, cfg, st, args, &done, out, errOut)
}

// UndoCmd implements the undo command.
type UndoCmd struct{}

func (c *UndoCmd) Name() string      { return "undo" }
func (c *UndoCmd) Aliases() []string { return []string{"reopen"} }
func (c *UndoCmd) Synopsis() string  { return "Mark tasks not completed" }
func (c *UndoCmd) Usage() string     { return "todo undo <id...>" }
func (c *UndoCmd) NeedsAPI() bool    { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	open := false
	return runSetCompleted(ctx, cfg, st, args, &open, out, errOut)
}

// ToggleCmd implements the toggle command.
// The new value is the opposite of the task's state in the fetched list.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string      { return "toggle" }
func (c *ToggleCmd) Aliases() []string { return nil }
func (c *ToggleCmd) Synopsis() string  { return "Flip the completed state of tasks" }
func (c *ToggleCmd) Usage() string     { return "todo toggle <id...>" }
func (c *ToggleCmd) NeedsAPI() bool    { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	return runSetCompleted(ctx, cfg, st, args, nil, out, errOut)
}

// runSetCompleted is the shared implementation for done, undo and toggle.
// A nil target flips each task's state as found in the fetched list.
func runSetCompleted(ctx context.Context, cfg *config.Config, st *store.Store, args []string, target *bool, out, errOut io.Writer) int {
	ids, err := ParseTaskIDs(args)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	for _, id := range ids {
		var completed bool
		if target != nil {
			completed = *target
		} else {
			state := st.Snapshot()
			task, found := state.Find(id)
			if !found {
				if state.Error != "" {
					fmt.Fprintf(errOut, "error: %s\n", state.Error)
					return exitcode.BackendError
				}
				fmt.Fprintf(errOut, "error: task not found: %d\n", id)
				return exitcode.UserError
			}
			completed = !task.Completed
		}

		if _, err := st.Toggle(ctx, id, completed); err != nil {
			return reportError(errOut, err)
		}
	}

	return ok(cfg, out)
}
