package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/runoshun/todo/internal/app"
	"github.com/runoshun/todo/internal/usecase"
	"github.com/spf13/cobra"
)

// shortRevision is how many characters of a revision id are printed.
const shortRevision = 12

// newStoreCommand creates the store command for inspecting the persistence backend.
func newStoreCommand(c *app.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Show where tasks are stored",
		Long: `Show the storage backend, its location and the saved revisions.

The git backend keeps one revision per save. The json and sqlite
backends keep only the latest one.

Examples:
  todo store
  todo store -n 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := c.ShowStoreUseCase().Execute(cmd.Context(), usecase.ShowStoreInput{Limit: limit})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			encrypted := "no"
			if out.Encrypted {
				encrypted = "yes"
			}
			_, _ = fmt.Fprintf(w, "Backend:   %s\n", out.Backend)
			_, _ = fmt.Fprintf(w, "Location:  %s\n", out.Location)
			_, _ = fmt.Fprintf(w, "Encrypted: %s\n\n", encrypted)

			if len(out.Revisions) == 0 {
				_, _ = fmt.Fprintln(w, "No snapshot saved yet.")
				return nil
			}

			loc := c.Clock.Now().Location()
			tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
			_, _ = fmt.Fprintln(tw, "REVISION\tSAVED\tSIZE")
			for _, r := range out.Revisions {
				id := r.ID
				if id == "" {
					id = "-"
				} else if len(id) > shortRevision {
					id = id[:shortRevision]
				}
				_, _ = fmt.Fprintf(tw, "%s\t%s\t%d B\n", id, r.SavedAt.In(loc).Format("2006-01-02 15:04:05"), r.Size)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of revisions to show (0 = all)")

	return cmd
}
