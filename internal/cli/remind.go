package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/runoshun/todo/internal/app"
	"github.com/runoshun/todo/internal/scheduler"
	"github.com/runoshun/todo/internal/usecase"
	"github.com/spf13/cobra"
)

// newRemindCommand creates the remind command for a single reminder sweep.
func newRemindCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Send reminders for tasks due today or tomorrow",
		Long: `Run one reminder sweep and exit.

Each pending task due today or tomorrow is reminded once per due date.
Editing the due date re-arms its reminders. Suitable for cron.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.CheckRemindersUseCase().Execute(cmd.Context(), usecase.CheckRemindersInput{})
			if err != nil {
				return err
			}

			if len(out.Reminders) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No reminders due.")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Sent %d reminder(s).\n", len(out.Reminders))
			warnSave(cmd, out.SaveErr)
			return nil
		},
	}
}

// newWatchCommand creates the watch command for periodic reminder sweeps.
func newWatchCommand(c *app.Container) *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep sending reminders until interrupted",
		Long: `Run a reminder sweep at start and then on every interval until
interrupted. The task list is re-read before each sweep so changes made
by other todo processes are kept.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			every := interval
			if every <= 0 {
				every = c.AppConfig.Notify.Interval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Watching for due tasks every %s (Ctrl+C to stop)\n", every)

			runner := &scheduler.Runner{
				Clock:         c.Clock,
				SweepInterval: every,
				Sweep: func(ctx context.Context, _ time.Time) {
					sweepOnce(ctx, cmd, c)
				},
			}
			return runner.Run(ctx)
		},
	}

	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Sweep interval (default from config)")

	return cmd
}

// sweepOnce reloads the snapshot and runs one reminder sweep.
// A failed reload skips the sweep so latches are never written over newer data.
func sweepOnce(ctx context.Context, cmd *cobra.Command, c *app.Container) {
	if err := c.Load(ctx); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		return
	}
	out, err := c.CheckRemindersUseCase().Execute(ctx, usecase.CheckRemindersInput{})
	if err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
		return
	}
	warnSave(cmd, out.SaveErr)
}
