package cli

import (
	"github.com/sandeepkv93/tasktimer/internal/commands"
	"github.com/spf13/cobra"
)

type taskCommandDef struct {
	use   string
	short string
}

func newListCommand(opts *globalOptions) *cobra.Command {
	var args commands.ListArgs
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List running tasks, or all tasks with --all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommand(cmd, opts, commands.List(args))
		},
	}
	cmd.Flags().BoolVarP(&args.All, "all", "a", false, "Include stopped tasks")
	cmd.Flags().BoolVar(&args.Timestamp, "timestamp", false, "Show when each task was last started")
	cmd.Flags().BoolVarP(&args.Base, "base", "b", false, "Show the stored time next to the live time")
	return cmd
}

func newCreateCommand(opts *globalOptions) *cobra.Command {
	var start bool
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, opts, commands.Create(args[0], start))
		},
	}
	cmd.Flags().BoolVarP(&start, "start", "s", false, "Start the timer right away")
	return cmd
}

// newTaskCommand builds the commands that take a single task id.
func newTaskCommand(opts *globalOptions, def taskCommandDef) *cobra.Command {
	return &cobra.Command{
		Use:   def.use + " <id>",
		Short: def.short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := commands.ParseTaskID(args[0])
			if err != nil {
				return err
			}
			return runCommand(cmd, opts, commands.OnTask(commands.Type(def.use), id))
		},
	}
}

func newTimeCommand(opts *globalOptions, def taskCommandDef) *cobra.Command {
	return &cobra.Command{
		Use:     def.use + " <id> <time>",
		Short:   def.short,
		Example: "  tasktimer " + def.use + " 3 1h30m",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := commands.ParseTaskID(args[0])
			if err != nil {
				return err
			}
			return runCommand(cmd, opts, commands.WithTime(commands.Type(def.use), id, args[1]))
		},
	}
}

func newDeleteNameCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-name <name>",
		Short: "Delete the task with the given name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCommand(cmd, opts, commands.DeleteName(args[0]))
		},
	}
}

func newRenameCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name>",
		Short: "Rename a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := commands.ParseTaskID(args[0])
			if err != nil {
				return err
			}
			return runCommand(cmd, opts, commands.Rename(id, args[1]))
		},
	}
}

func newClearCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every task in the category after confirmation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCommand(cmd, opts, commands.Clear())
		},
	}
}
