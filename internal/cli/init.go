package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/pdxmph/todos-tui/internal/storage"
	"github.com/pdxmph/todos-tui/internal/todo"
)

// NewInitCommand returns the init subcommand.
func NewInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Create the config file and storage",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "demo",
				Usage: "Seed the list with sample tasks",
			},
		},
		Action: runInit,
	}
}

func runInit(_ context.Context, cmd *cli.Command) error {
	w := output(cmd)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	configPath := cmd.String("config")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("write config: %w", err)
		}
		fmt.Fprintf(w, "Wrote config to %s\n", configPath)
	}

	if cfg.Storage.Backend == "sqlite" {
		if err := storage.Initialize(cfg.Storage.Path); err != nil {
			return err
		}
		fmt.Fprintf(w, "Created database at %s\n", cfg.Storage.Path)
	}

	if !cmd.Bool("demo") {
		return nil
	}

	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	n := todo.SeedDemo(sess.store)
	fmt.Fprintf(w, "Added %d sample %s\n", n, pluralize(n, "task"))
	return nil
}
