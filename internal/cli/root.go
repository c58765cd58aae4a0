package cli

import (
	"fmt"
	"os"

	"github.com/sandeepkv93/tasktimer/internal/store"
	"github.com/spf13/cobra"
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	taskType   string
	dataDir    string
	backend    string
	configPath string
	verbose    bool
}

// NewRootCommand builds a fresh command tree. Each call has its own flag
// state, so tests can execute several trees in one process.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "tasktimer",
		Short: "Track time spent on tasks",
		Long: `tasktimer keeps named task timers in a data directory next to the binary.

Tasks live in the "current" category until archived. Time adjustments use
XXhYYm tokens such as 1h30m, 45m or 2h.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.taskType, "tasktype", "t", string(store.CategoryCurrent), "Task category to operate on (current, archive)")
	pf.StringVar(&opts.dataDir, "data-dir", "", "Directory holding task data (default: executable directory)")
	pf.StringVar(&opts.backend, "backend", "", "Storage backend (json, sqlite)")
	pf.StringVar(&opts.configPath, "config", "", "Config file (default: $XDG_CONFIG_HOME/tasktimer/config.yaml)")
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging on stderr")

	root.AddCommand(
		newListCommand(opts),
		newCreateCommand(opts),
		newTaskCommand(opts, taskCommandDef{use: "delete", short: "Delete a task by id"}),
		newDeleteNameCommand(opts),
		newTaskCommand(opts, taskCommandDef{use: "start", short: "Start a task timer"}),
		newTaskCommand(opts, taskCommandDef{use: "stop", short: "Stop a task timer and keep the elapsed time"}),
		newTaskCommand(opts, taskCommandDef{use: "cancel", short: "Stop a task timer and discard the elapsed time"}),
		newRenameCommand(opts),
		newTimeCommand(opts, taskCommandDef{use: "add", short: "Add time to a task"}),
		newTimeCommand(opts, taskCommandDef{use: "sub", short: "Subtract time from a task"}),
		newTimeCommand(opts, taskCommandDef{use: "set", short: "Set the total time of a stopped task"}),
		newTaskCommand(opts, taskCommandDef{use: "archive", short: "Move a stopped task to the archive"}),
		newClearCommand(opts),
		newWatchCommand(opts),
	)
	return root
}

// Execute runs the command tree with os.Args.
func Execute(version string) error {
	root := NewRootCommand()
	root.Version = version
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
