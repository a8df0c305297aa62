// Package cli provides the command-line interface for todo.
package cli

import (
	"fmt"

	"github.com/runoshun/todo/internal/app"
	"github.com/spf13/cobra"
)

// Command group IDs.
const (
	groupTask   = "task"
	groupRemind = "remind"
	groupSetup  = "setup"
)

// ConfigFlag names the persistent flag selecting the config file.
// main reads it before the container exists.
const ConfigFlag = "config"

// launchTUIFunc launches the interactive view, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for todo.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "todo",
		Short: "Task list with due-date reminders",
		Long: `todo keeps a personal task list with categories, priorities and due dates,
and reminds you of tasks due today or tomorrow.

Run without a subcommand to open the interactive list.
Task ids can be abbreviated to any unique prefix.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil {
				return nil
			}

			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}

			if !needsTasks(cmd) {
				return nil
			}
			if err := c.Load(cmd.Context()); err != nil {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\nChanges will not be saved until the snapshot can be read.\n", err)
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			return launchTUIFunc(c)
		},
	}

	root.PersistentFlags().StringVar(&configPath, ConfigFlag, "", "Config file (default $XDG_CONFIG_HOME/todo/config.toml)")

	// Define command groups
	root.AddGroup(
		&cobra.Group{ID: groupTask, Title: "Task Management:"},
		&cobra.Group{ID: groupRemind, Title: "Reminders:"},
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
	)

	// Task management commands
	addCmd := newAddCommand(c)
	addCmd.GroupID = groupTask

	editCmd := newEditCommand(c)
	editCmd.GroupID = groupTask

	toggleCmd := newToggleCommand(c)
	toggleCmd.GroupID = groupTask

	rmCmd := newRmCommand(c)
	rmCmd.GroupID = groupTask

	listCmd := newListCommand(c)
	listCmd.GroupID = groupTask

	showCmd := newShowCommand(c)
	showCmd.GroupID = groupTask

	statsCmd := newStatsCommand(c)
	statsCmd.GroupID = groupTask

	exportCmd := newExportCommand(c)
	exportCmd.GroupID = groupTask

	importCmd := newImportCommand(c)
	importCmd.GroupID = groupTask

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupTask

	// Reminder commands
	remindCmd := newRemindCommand(c)
	remindCmd.GroupID = groupRemind

	watchCmd := newWatchCommand(c)
	watchCmd.GroupID = groupRemind

	// Setup commands
	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	logsCmd := newLogsCommand(c)
	logsCmd.GroupID = groupSetup

	storeCmd := newStoreCommand(c)
	storeCmd.GroupID = groupSetup

	root.AddCommand(
		addCmd,
		editCmd,
		toggleCmd,
		rmCmd,
		listCmd,
		showCmd,
		statsCmd,
		exportCmd,
		importCmd,
		tuiCmd,
		remindCmd,
		watchCmd,
		configCmd,
		logsCmd,
		storeCmd,
	)

	return root
}

// needsTasks reports whether cmd works on the task collection.
// The config and store commands must keep working when the snapshot is unreadable.
func needsTasks(cmd *cobra.Command) bool {
	for p := cmd; p != nil; p = p.Parent() {
		if p.Name() == "config" {
			return false
		}
	}
	switch cmd.Name() {
	case "help", "watch", "store":
		return false
	}
	return true
}
