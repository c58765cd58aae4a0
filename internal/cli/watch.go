package cli

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasktimer/internal/store"
	"github.com/sandeepkv93/tasktimer/internal/update"
	"github.com/spf13/cobra"
)

func newWatchCommand(opts *globalOptions) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Show a live view of the timers with a command palette",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			category, err := opts.category()
			if err != nil {
				return err
			}
			env, err := opts.open(cmd)
			if err != nil {
				return err
			}
			defer env.Close()

			p := tea.NewProgram(newWatchModel(env, category, all),
				tea.WithAltScreen(),
				tea.WithContext(cmd.Context()),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Start with stopped tasks visible")
	return cmd
}

// newWatchModel shares the dispatcher's styles so the view follows the
// colour profile of the command's output.
func newWatchModel(env *environment, category store.Category, all bool) update.Model {
	return update.NewModel(env.dispatcher, category, update.Config{
		Refresh:       time.Duration(env.cfg.RefreshSeconds) * time.Second,
		ShowAll:       all,
		Styles:        env.dispatcher.Styles,
		MarkdownStyle: "dark",
	})
}
