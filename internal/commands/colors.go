package commands

import (
	"context"
	"flag"
	"io"

	"todo/internal/config"
	"todo/internal/exitcode"
	"todo/internal/output"
	"todo/internal/service"
	"todo/internal/store"
)

func init() {
	Register(&ColorsCmd{})
}

// ColorsCmd implements the colors command.
type ColorsCmd struct{}

func (c *ColorsCmd) Name() string      { return "colors" }
func (c *ColorsCmd) Aliases() []string { return nil }
func (c *ColorsCmd) Synopsis() string  { return "List task colors" }
func (c *ColorsCmd) Usage() string     { return "todo colors" }
func (c *ColorsCmd) NeedsAPI() bool    { return false }

func (c *ColorsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ColorsCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	for _, color := range service.Palette {
		output.FormatColor(out, color, cfg.DefaultColor)
	}
	return exitcode.Success
}
