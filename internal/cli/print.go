package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/runoshun/todo/internal/domain"
	"github.com/runoshun/todo/internal/usecase"
	"github.com/spf13/cobra"
)

// joinArgs joins positional arguments into one task text.
func joinArgs(args []string) string {
	return strings.Join(args, " ")
}

// warnSave reports a failed save. The change stays in memory for this run only.
func warnSave(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: changes were not saved: %v\n", err)
}

// printTaskList prints tasks in a table format.
func printTaskList(w io.Writer, tasks []*domain.Task, now time.Time) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tDONE\tPRIORITY\tCATEGORY\tDUE\tTEXT")

	for _, t := range tasks {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID.Short(),
			checkbox(t.Completed),
			t.Priority.Display(),
			t.Category.Display(),
			formatDue(t, now),
			t.Text,
		)
	}

	_ = tw.Flush()
}

// printTaskDetail prints every field of one task.
func printTaskDetail(w io.Writer, t *domain.Task, state domain.DueState, now time.Time) {
	status := "pending"
	if t.Completed {
		status = "completed"
	}

	_, _ = fmt.Fprintf(w, "ID:       %s\n", t.ID)
	_, _ = fmt.Fprintf(w, "Text:     %s\n", t.Text)
	_, _ = fmt.Fprintf(w, "Status:   %s\n", status)
	_, _ = fmt.Fprintf(w, "Priority: %s\n", t.Priority.Display())
	_, _ = fmt.Fprintf(w, "Category: %s\n", t.Category.Display())
	if t.HasDueDate() {
		_, _ = fmt.Fprintf(w, "Due:      %s (%s)\n", t.DueDate.String(), state)
	} else {
		_, _ = fmt.Fprintln(w, "Due:      -")
	}
	_, _ = fmt.Fprintf(w, "Created:  %s\n", t.CreatedAt.In(now.Location()).Format("2006-01-02 15:04"))
}

// printStats prints totals and the per-category breakdown.
func printStats(w io.Writer, out *usecase.ShowStatsOutput) {
	_, _ = fmt.Fprintln(w, formatStats(out.Stats))
	_, _ = fmt.Fprintf(w, "Overdue: %d, Due today: %d\n\n", out.Overdue, out.DueToday)

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	_, _ = fmt.Fprintln(tw, "CATEGORY\tTOTAL\tPENDING")
	for _, cc := range out.ByCategory {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\n", cc.Category.Display(), cc.Total, cc.Pending)
	}
	_ = tw.Flush()
}

func formatStats(s domain.Stats) string {
	return fmt.Sprintf("Total: %d, Completed: %d, Pending: %d", s.Total, s.Completed, s.Pending)
}

func checkbox(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

// formatDue returns the due column. Overdue pending tasks are marked with "!".
func formatDue(t *domain.Task, now time.Time) string {
	if !t.HasDueDate() {
		return "-"
	}
	s := t.DueDate.Display(now)
	if !t.Completed && t.DueState(now) == domain.DueOverdue {
		s += " !"
	}
	return s
}
