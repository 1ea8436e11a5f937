package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/service"
	"todo/internal/store"
)

func init() {
	Register(&EditCmd{})
}

// optionalString is a flag.Value that remembers whether it was set,
// so an explicit empty value can be told apart from an absent flag.
type optionalString struct {
	value string
	set   bool
}

func (o *optionalString) String() string { return o.value }

func (o *optionalString) Set(v string) error {
	o.value = v
	o.set = true
	return nil
}

// EditCmd implements the edit command.
type EditCmd struct {
	title optionalString
	color optionalString
	done  bool
	open  bool
}

// SetTitle sets the title flag (for testing).
func (c *EditCmd) SetTitle(title string) { c.title.Set(title) }

// SetColor sets the color flag (for testing).
func (c *EditCmd) SetColor(color string) { c.color.Set(color) }

// SetDone sets the done flag (for testing).
func (c *EditCmd) SetDone(done bool) { c.done = done }

// SetOpen sets the open flag (for testing).
func (c *EditCmd) SetOpen(open bool) { c.open = open }

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return []string{"update"} }
func (c *EditCmd) Synopsis() string  { return "Change a task's title, color or state" }
func (c *EditCmd) Usage() string {
	return "todo edit [--title <title>] [--color <color>] [--done|--open] <id>"
}
func (c *EditCmd) NeedsAPI() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title = optionalString{}
	c.color = optionalString{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.color, "color", "")
	fs.BoolVar(&c.done, "done", false, "")
	fs.BoolVar(&c.open, "open", false, "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if len(args) == 0 {
		fmt.Fprintf(errOut, "error: %v\n", ErrTaskIDRequired)
		return exitcode.UserError
	}
	if len(args) > 1 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[1])
		return exitcode.UserError
	}

	id, err := ParseTaskID(args[0])
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	req, err := c.request()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	if _, err := st.Update(ctx, id, req); err != nil {
		return reportError(errOut, err)
	}
	return ok(cfg, out)
}

// request builds the partial update from the flags that were given.
func (c *EditCmd) request() (service.UpdateTaskRequest, error) {
	var req service.UpdateTaskRequest

	if c.done && c.open {
		return req, fmt.Errorf("--done and --open are mutually exclusive")
	}

	if c.title.set {
		title := strings.TrimSpace(c.title.value)
		if title == "" {
			return req, fmt.Errorf("title required")
		}
		req.Title = &title
	}

	if c.color.set {
		color, err := service.ParseColor(c.color.value)
		if err != nil {
			return req, err
		}
		req.Color = &color
	}

	if c.done || c.open {
		completed := c.done
		req.Completed = &completed
	}

	if req.IsEmpty() {
		return req, fmt.Errorf("nothing to change (use --title, --color, --done or --open)")
	}
	return req, nil
}
