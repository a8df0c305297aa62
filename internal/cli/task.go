package cli

import (
	"encoding/json"
	"fmt"

	"github.com/runoshun/todo/internal/app"
	"github.com/runoshun/todo/internal/usecase"
	"github.com/spf13/cobra"
)

// newAddCommand creates the add command for creating tasks.
func newAddCommand(c *app.Container) *cobra.Command {
	var opts struct {
		due      string
		category string
		priority string
	}

	cmd := &cobra.Command{
		Use:   "add <text>...",
		Short: "Add a new task",
		Long: `Add a new task to the list.

The text may be given as several arguments; they are joined with spaces.
The due date accepts YYYY-MM-DD, today, tomorrow or +Nd (days from today).

Examples:
  todo add Buy milk --category shopping
  todo add "File taxes" --due 2026-04-15 --priority high
  todo add Call mom --due tomorrow`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.NewTaskUseCase().Execute(cmd.Context(), usecase.NewTaskInput{
				Text:     joinArgs(args),
				Due:      opts.due,
				Category: opts.category,
				Priority: opts.priority,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created task %s: %s\n", out.Task.ID.Short(), out.Task.Text)
			warnSave(cmd, out.SaveErr)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.due, "due", "d", "", "Due date (YYYY-MM-DD, today, tomorrow, +Nd)")
	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "Category (default from config)")
	cmd.Flags().StringVarP(&opts.priority, "priority", "p", "", "Priority: low, medium, high (default from config)")

	return cmd
}

// newEditCommand creates the edit command for changing a task.
func newEditCommand(c *app.Container) *cobra.Command {
	var opts struct {
		text     string
		due      string
		category string
		priority string
		editor   bool
	}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a task",
		Long: `Edit an existing task.

Only the given fields change. Use --due none to clear the due date.
With --editor the task opens in $EDITOR as a document with a YAML header
holding due, category and priority, followed by the text.

Examples:
  todo edit 1a2b --text "Buy oat milk"
  todo edit 1a2b --due none --priority medium
  todo edit 1a2b --editor`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.editor {
				out, err := c.EditTaskInEditorUseCase().Execute(cmd.Context(), usecase.EditTaskInEditorInput{
					Ref: args[0],
				})
				if err != nil {
					return err
				}
				if !out.Changed {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No changes to task %s\n", out.Task.ID.Short())
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s\n", out.Task.ID.Short(), out.Task.Text)
				warnSave(cmd, out.SaveErr)
				return nil
			}

			in := usecase.EditTaskInput{Ref: args[0]}
			if cmd.Flags().Changed("text") {
				in.Text = &opts.text
			}
			if cmd.Flags().Changed("due") {
				in.Due = &opts.due
			}
			if cmd.Flags().Changed("category") {
				in.Category = &opts.category
			}
			if cmd.Flags().Changed("priority") {
				in.Priority = &opts.priority
			}

			out, err := c.EditTaskUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s: %s\n", out.Task.ID.Short(), out.Task.Text)
			warnSave(cmd, out.SaveErr)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.text, "text", "t", "", "New task text")
	cmd.Flags().StringVarP(&opts.due, "due", "d", "", "New due date (none clears it)")
	cmd.Flags().StringVarP(&opts.category, "category", "c", "", "New category")
	cmd.Flags().StringVarP(&opts.priority, "priority", "p", "", "New priority")
	cmd.Flags().BoolVarP(&opts.editor, "editor", "e", false, "Edit in $EDITOR")
	cmd.MarkFlagsMutuallyExclusive("editor", "text")
	cmd.MarkFlagsMutuallyExclusive("editor", "due")
	cmd.MarkFlagsMutuallyExclusive("editor", "category")
	cmd.MarkFlagsMutuallyExclusive("editor", "priority")

	return cmd
}

// newToggleCommand creates the toggle command for flipping completion.
func newToggleCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Toggle a task between pending and completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ToggleTaskUseCase().Execute(cmd.Context(), usecase.ToggleTaskInput{Ref: args[0]})
			if err != nil {
				return err
			}

			state := "pending"
			if out.Task.Completed {
				state = "completed"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s: %s\n", out.Task.ID.Short(), state, out.Task.Text)
			warnSave(cmd, out.SaveErr)
			return nil
		},
	}
}

// newRmCommand creates the rm command for deleting tasks.
func newRmCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.DeleteTaskUseCase().Execute(cmd.Context(), usecase.DeleteTaskInput{Ref: args[0]})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s: %s\n", out.Task.ID.Short(), out.Task.Text)
			warnSave(cmd, out.SaveErr)
			return nil
		},
	}
}

// newListCommand creates the list command for showing tasks.
func newListCommand(c *app.Container) *cobra.Command {
	var opts struct {
		search   string
		category string
		priority string
		status   string
		json     bool
	}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks",
		Long: `List tasks in display order.

Pending tasks come first, then higher priority, then the earliest due
date (undated last), then creation time. The filters combine.

Examples:
  todo list
  todo list --status pending --category work
  todo list --search milk --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{
				Search:   opts.search,
				Category: opts.category,
				Priority: opts.priority,
				Status:   opts.status,
			})
			if err != nil {
				return err
			}

			if opts.json {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out.Tasks)
			}

			w := cmd.OutOrStdout()
			if len(out.Tasks) == 0 {
				if out.Filtered {
					_, _ = fmt.Fprintln(w, "No tasks match the filter.")
				} else {
					_, _ = fmt.Fprintln(w, "No tasks yet. Add one with: todo add <text>")
				}
				return nil
			}
			printTaskList(w, out.Tasks, out.Now)
			_, _ = fmt.Fprintf(w, "\n%s\n", formatStats(out.Stats))
			if out.Filtered {
				_, _ = fmt.Fprintf(w, "Showing %d of %d\n", len(out.Tasks), out.Stats.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "Show tasks whose text contains this (case-insensitive)")
	cmd.Flags().StringVarP(&opts.category, "category", "c", "all", "Filter by category")
	cmd.Flags().StringVarP(&opts.priority, "priority", "p", "all", "Filter by priority")
	cmd.Flags().StringVar(&opts.status, "status", "all", "Filter by status: all, pending, completed")
	cmd.Flags().BoolVar(&opts.json, "json", false, "Output as JSON")

	return cmd
}

// newShowCommand creates the show command for displaying one task.
func newShowCommand(c *app.Container) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show task details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := c.ShowTaskUseCase().Execute(cmd.Context(), usecase.ShowTaskInput{Ref: args[0]})
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(out.Task)
			}
			printTaskDetail(cmd.OutOrStdout(), out.Task, out.DueState, c.Clock.Now())
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

// newStatsCommand creates the stats command for showing counts.
func newStatsCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowStatsUseCase().Execute(cmd.Context(), usecase.ShowStatsInput{})
			if err != nil {
				return err
			}
			printStats(cmd.OutOrStdout(), out)
			return nil
		},
	}
}
