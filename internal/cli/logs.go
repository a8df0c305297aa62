package cli

import (
	"fmt"

	"github.com/runoshun/todo/internal/app"
	"github.com/runoshun/todo/internal/usecase"
	"github.com/spf13/cobra"
)

// newLogsCommand creates the logs command for viewing the activity log.
func newLogsCommand(c *app.Container) *cobra.Command {
	var lines int

	cmd := &cobra.Command{
		Use:   "logs [id]",
		Short: "Show the activity log",
		Long: `Show the activity log.

With a task id only the entries about that task are shown.

Examples:
  todo logs
  todo logs -n 20
  todo logs 1a2b`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := usecase.ShowLogsInput{Lines: lines}
			if len(args) > 0 {
				in.Ref = args[0]
			}

			out, err := c.ShowLogsUseCase().Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			if out.Content == "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "No log entries in %s\n", out.LogPath)
				return nil
			}
			_, _ = fmt.Fprint(cmd.OutOrStdout(), out.Content)
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 0, "Number of lines to show from the end (0 = all)")

	return cmd
}
