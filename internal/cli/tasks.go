package cli

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"editdesk-cli/internal/format"
	"editdesk-cli/internal/model"
	"editdesk-cli/internal/tasks"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"todo"},
		Short:   "Local to-do list",
	}

	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksToggleCmd(app, "done", "Toggle a task's completed flag", (*tasks.Controller).ToggleCompleted))
	cmd.AddCommand(newTasksToggleCmd(app, "star", "Toggle a task's star", (*tasks.Controller).ToggleStar))
	cmd.AddCommand(newTasksEditCmd(app))
	cmd.AddCommand(newTasksRmCmd(app))

	return cmd
}

func tasksEnvelope(app *App, ts []model.Task) format.Envelope {
	return format.Envelope{
		Data: ts,
		Meta: map[string]any{"count": len(ts)},
		Text: func(w io.Writer) error {
			printer(w, app).Tasks(ts)
			return nil
		},
	}
}

func newTasksAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadController(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok, err := c.Add(strings.Join(args, " "))
			if err != nil {
				return writeErr(cmd, err)
			}
			if !ok {
				return writeErr(cmd, errors.New("task text is empty"))
			}
			return writeOut(cmd, app, format.Envelope{
				Data:  t,
				Hints: []string{"editdesk tasks done " + strconv.FormatInt(t.ID, 10)},
				Text: func(w io.Writer) error {
					printer(w, app).Message("added task " + strconv.FormatInt(t.ID, 10))
					return nil
				},
			})
		},
	}
}

func newTasksListCmd(app *App) *cobra.Command {
	var pending bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks in display order",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadController(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ts := c.List()
			if pending {
				out := ts[:0:0]
				for _, t := range ts {
					if !t.Completed {
						out = append(out, t)
					}
				}
				ts = out
			}
			return writeOut(cmd, app, tasksEnvelope(app, ts))
		},
	}
	cmd.Flags().BoolVar(&pending, "pending", false, "Only incomplete tasks")
	return cmd
}

func newTasksToggleCmd(app *App, use, short string, toggle func(*tasks.Controller, int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <task-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := loadController(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := c.Find(id); !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			if err := toggle(c, id); err != nil {
				return writeErr(cmd, err)
			}
			t, _ := c.Find(id)
			return writeOut(cmd, app, format.Envelope{Data: t, Text: func(w io.Writer) error {
				printer(w, app).Tasks([]model.Task{t})
				return nil
			}})
		},
	}
}

func newTasksEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <task-id> <text...>",
		Short: "Replace a task's text (blank text keeps the old one)",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := loadController(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, ok := c.Find(id); !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			if err := c.EditText(id, strings.Join(args[1:], " ")); err != nil {
				return writeErr(cmd, err)
			}
			t, _ := c.Find(id)
			return writeOut(cmd, app, format.Envelope{Data: t, Text: func(w io.Writer) error {
				printer(w, app).Tasks([]model.Task{t})
				return nil
			}})
		},
	}
}

func newTasksRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <task-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			c, err := loadController(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, ok := c.Find(id)
			if !ok {
				return writeErr(cmd, errNotFound("task", args[0]))
			}
			if err := c.Delete(id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, format.Envelope{Data: map[string]any{"deleted": t.ID}, Text: func(w io.Writer) error {
				printer(w, app).Message("deleted task " + strconv.FormatInt(t.ID, 10))
				return nil
			}})
		},
	}
}
