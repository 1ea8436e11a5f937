package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `todo` (no args) and `todo list`.
type ListCmd struct{}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "todo list" }
func (c *ListCmd) NeedsAPI() bool    { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	// The dispatcher already performed the initial fetch
	state := st.Snapshot()
	if state.Error != "" {
		fmt.Fprintf(errOut, "error: %s\n", state.Error)
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		output.FormatStats(out, len(state.Tasks), state.CompletedCount())
	}

	if len(state.Tasks) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, output.EmptyHint)
		}
		return exitcode.Success
	}

	for _, task := range state.Tasks {
		output.FormatTask(out, task)
	}
	return exitcode.Success
}
