package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/runoshun/todo/internal/app"
	"github.com/runoshun/todo/internal/usecase"
	"github.com/spf13/cobra"
)

// newExportCommand creates the export command.
func newExportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		format string
		output string
	}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all tasks as JSON or YAML",
		Long: `Write every task to stdout or a file.

JSON output has the same shape as the stored snapshot.
The format defaults to the output file extension, then to JSON.

Examples:
  todo export > backup.json
  todo export --format yaml -o tasks.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format := opts.format
			if format == "" {
				format = formatFromPath(opts.output)
			}

			out, err := c.ExportTasksUseCase().Execute(cmd.Context(), usecase.ExportTasksInput{Format: format})
			if err != nil {
				return err
			}

			if opts.output == "" || opts.output == "-" {
				_, err := cmd.OutOrStdout().Write(out.Data)
				return err
			}
			if err := os.WriteFile(opts.output, out.Data, 0o600); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %d task(s) to %s\n", out.Count, opts.output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Output format: json, yaml")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (default stdout)")

	return cmd
}

// newImportCommand creates the import command.
func newImportCommand(c *app.Container) *cobra.Command {
	var opts struct {
		format  string
		replace bool
	}

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import tasks from a JSON or YAML export",
		Long: `Add tasks from an export file, or from stdin with "-".

Imported tasks keep their ids unless an id is already taken.
With --replace the current list is discarded first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd, args[0])
			if err != nil {
				return err
			}

			format := opts.format
			if format == "" {
				format = formatFromPath(args[0])
			}

			out, err := c.ImportTasksUseCase().Execute(cmd.Context(), usecase.ImportTasksInput{
				Format:  format,
				Data:    data,
				Replace: opts.replace,
			})
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d task(s)", out.Added)
			if out.Renamed > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), ", %d with new ids", out.Renamed)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout())
			warnSave(cmd, out.SaveErr)
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "Input format: json, yaml (default: detect)")
	cmd.Flags().BoolVar(&opts.replace, "replace", false, "Replace the current list instead of merging")

	return cmd
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	return data, nil
}

// formatFromPath maps a file extension to an export format.
// Unknown extensions yield "" so the caller falls back to its default.
func formatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return usecase.FormatJSON
	case ".yaml", ".yml":
		return usecase.FormatYAML
	default:
		return ""
	}
}
