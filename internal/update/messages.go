package update

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasktimer/internal/commands"
	"github.com/sandeepkv93/tasktimer/internal/store"
)

const statusTimeout = 5 * time.Second

// ListingMsg carries a fresh snapshot. Tick marks loads that belong to the
// periodic refresh chain and must schedule the next tick.
type ListingMsg struct {
	Listing store.Listing
	Err     error
	Tick    bool
}

type RefreshTickMsg struct{}

// CommandResultMsg reports a palette command that reached the store.
type CommandResultMsg struct {
	Result commands.Result
}

// ClearStatusMsg empties the status line if it still shows status Seq.
type ClearStatusMsg struct {
	Seq int
}

// AppErrorMsg reports a palette command that failed in storage.
type AppErrorMsg struct {
	Err error
}

func (m Model) loadCmd(tick bool) tea.Cmd {
	runner, category, opts := m.runner, m.Category, m.listOptions()
	return func() tea.Msg {
		listing, err := runner.Snapshot(context.Background(), category, opts)
		return ListingMsg{Listing: listing, Err: err, Tick: tick}
	}
}

func (m Model) runCmd(cmd commands.Command) tea.Cmd {
	runner, category := m.runner, m.Category
	return func() tea.Msg {
		res, err := runner.Run(context.Background(), category, cmd)
		if err != nil {
			return AppErrorMsg{Err: err}
		}
		return CommandResultMsg{Result: res}
	}
}

func refreshTickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return RefreshTickMsg{} })
}

func clearStatusCmd(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return ClearStatusMsg{Seq: seq} })
}
