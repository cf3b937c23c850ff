// Package cli wires configuration, storage and the task store into the
// todos command line.
package cli

import (
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/pdxmph/todos-tui/internal/config"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "todos",
		Usage: "A small terminal task list",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file",
				Value:   config.Path(),
			},
			&cli.StringFlag{
				Name:  "backend",
				Usage: "Storage backend (sqlite, file, memory); overrides the config file",
			},
			&cli.StringFlag{
				Name:  "path",
				Usage: "Storage location; overrides the config file",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewTUICommand(),
			NewInitCommand(),
			NewAddCommand(),
			NewListCommand(),
			NewToggleCommand(),
			NewRemoveCommand(),
			NewClearCompletedCommand(),
			NewClearAllCommand(),
			NewStatsCommand(),
			NewBackendsCommand(),
		},
		DefaultCommand: "tui",
	}
}

// output returns where command results are printed
func output(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
