package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/pdxmph/todos-tui/internal/storage"
	"github.com/pdxmph/todos-tui/internal/todo"
)

// NewAddCommand returns the add subcommand.
func NewAddCommand() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "Add a task",
		ArgsUsage: "<text>",
		Action:    runAdd,
	}
}

// NewListCommand returns the list subcommand.
func NewListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List tasks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "all, active or completed",
				Value:   string(todo.FilterAll),
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "table, json or yaml",
				Value: "table",
			},
		},
		Action: runList,
	}
}

// NewToggleCommand returns the toggle subcommand.
func NewToggleCommand() *cli.Command {
	return &cli.Command{
		Name:      "toggle",
		Aliases:   []string{"done"},
		Usage:     "Flip a task between active and completed",
		ArgsUsage: "<task_id>",
		Action:    runToggle,
	}
}

// NewRemoveCommand returns the rm subcommand.
func NewRemoveCommand() *cli.Command {
	return &cli.Command{
		Name:      "rm",
		Usage:     "Delete a task",
		ArgsUsage: "<task_id>",
		Action:    runRemove,
	}
}

// NewClearCompletedCommand returns the clear-completed subcommand.
func NewClearCompletedCommand() *cli.Command {
	return &cli.Command{
		Name:   "clear-completed",
		Usage:  "Delete every completed task",
		Action: runClearCompleted,
	}
}

// NewClearAllCommand returns the clear-all subcommand.
func NewClearAllCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear-all",
		Usage: "Delete every task",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "Confirm deleting everything",
			},
		},
		Action: runClearAll,
	}
}

// NewStatsCommand returns the stats subcommand.
func NewStatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Show task counts",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "format",
				Usage: "text, json or yaml",
				Value: "text",
			},
		},
		Action: runStats,
	}
}

// NewBackendsCommand returns the backends subcommand.
func NewBackendsCommand() *cli.Command {
	return &cli.Command{
		Name:  "backends",
		Usage: "List available storage backends",
		Action: func(_ context.Context, cmd *cli.Command) error {
			for _, name := range storage.ListBackends() {
				fmt.Fprintln(output(cmd), name)
			}
			return nil
		},
	}
}

func runAdd(_ context.Context, cmd *cli.Command) error {
	text := strings.Join(cmd.Args().Slice(), " ")

	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	t, ok := sess.store.Create(text)
	if !ok {
		_, rejection := todo.ValidateText(text)
		return fmt.Errorf("add task: %s", rejection)
	}

	fmt.Fprintf(output(cmd), "Added %s: %s\n", t.ID, t.Text)
	return nil
}

func runList(_ context.Context, cmd *cli.Command) error {
	filter, err := todo.ParseFilter(cmd.String("filter"))
	if err != nil {
		return err
	}

	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	list := sess.store.ListBy(filter)
	w := output(cmd)

	switch cmd.String("format") {
	case "json":
		return writeJSON(w, list)
	case "yaml":
		return writeYAML(w, list)
	case "table", "":
		return writeTable(w, list)
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", cmd.String("format"))
	}
}

func runToggle(_ context.Context, cmd *cli.Command) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	id, err := resolveID(sess.store, cmd.Args().First())
	if err != nil {
		return err
	}

	sess.store.Toggle(id)
	t, _ := sess.store.FindByID(id)

	status := "active"
	if t.Completed {
		status = "completed"
	}
	fmt.Fprintf(output(cmd), "Marked %s %s: %s\n", t.ID, status, t.Text)
	return nil
}

func runRemove(_ context.Context, cmd *cli.Command) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	id, err := resolveID(sess.store, cmd.Args().First())
	if err != nil {
		return err
	}

	t, _ := sess.store.FindByID(id)
	sess.store.Delete(id)
	fmt.Fprintf(output(cmd), "Deleted %s: %s\n", t.ID, t.Text)
	return nil
}

func runClearCompleted(_ context.Context, cmd *cli.Command) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	n := sess.store.ClearCompleted()
	fmt.Fprintf(output(cmd), "Cleared %d completed %s\n", n, pluralize(n, "task"))
	return nil
}

func runClearAll(_ context.Context, cmd *cli.Command) error {
	if !cmd.Bool("yes") {
		return fmt.Errorf("refusing to delete every task without --yes")
	}

	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	n := sess.store.Stats().Total
	sess.store.ClearAll()
	fmt.Fprintf(output(cmd), "Deleted %d %s\n", n, pluralize(n, "task"))
	return nil
}

func runStats(_ context.Context, cmd *cli.Command) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer sess.Close()

	st := sess.store.Stats()
	w := output(cmd)

	switch cmd.String("format") {
	case "json":
		return writeJSON(w, st)
	case "yaml":
		return writeYAML(w, st)
	case "text", "":
		fmt.Fprintf(w, "total: %d\nactive: %d\ncompleted: %d\n", st.Total, st.Active, st.Completed)
		return nil
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", cmd.String("format"))
	}
}

// resolveID accepts a full id or an unambiguous prefix of one
func resolveID(store *todo.Store, arg string) (string, error) {
	if arg == "" {
		return "", fmt.Errorf("missing task id")
	}
	if t, ok := store.FindByID(arg); ok {
		return t.ID, nil
	}

	var matches []string
	for _, t := range store.ListBy(todo.FilterAll) {
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("task %s not found", arg)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("task id %s is ambiguous (%d matches)", arg, len(matches))
	}
}

func writeTable(w io.Writer, list []todo.Task) error {
	if len(list) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tCREATED\tTEXT")
	for _, t := range list {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			t.ID,
			done,
			t.CreatedAt.Local().Format("2006-01-02 15:04"),
			t.Text,
		)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
