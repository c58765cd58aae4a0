package update

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/sandeepkv93/tasktimer/internal/commands"
	"github.com/sandeepkv93/tasktimer/internal/store"
	"github.com/sandeepkv93/tasktimer/internal/views"
)

// Runner executes commands against persisted stores. *app.Dispatcher
// satisfies it.
type Runner interface {
	Run(ctx context.Context, category store.Category, cmd commands.Command) (commands.Result, error)
	Snapshot(ctx context.Context, category store.Category, opts store.ListOptions) (store.Listing, error)
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Palette   string
	ToggleAll string
	Refresh   string
	Help      string
	Quit      string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Config struct {
	Refresh       time.Duration
	ShowAll       bool
	Styles        views.Styles
	MarkdownStyle string
}

type Model struct {
	Category    store.Category
	ShowAll     bool
	Listing     store.Listing
	Palette     CommandPaletteState
	HelpVisible bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error
	// Busy is set while a palette command is in flight.
	Busy bool

	statusSeq     int
	runner        Runner
	refresh       time.Duration
	styles        views.Styles
	markdownStyle string
	taskTable     table.Model
	commandInput  textinput.Model
	helpModel     help.Model
}

func NewModel(runner Runner, category store.Category, cfg Config) Model {
	if cfg.Refresh <= 0 {
		cfg.Refresh = time.Second
	}
	if cfg.MarkdownStyle == "" {
		cfg.MarkdownStyle = "dark"
	}

	input := textinput.New()
	input.Placeholder = "start 3 | add 3 1h30m | create name --start"
	input.Prompt = "> "
	input.CharLimit = 256

	tbl := table.New(
		table.WithColumns([]table.Column{
			{Title: " ", Width: 1},
			{Title: "ID", Width: 5},
			{Title: "Name", Width: 32},
			{Title: "Current", Width: 10},
			{Title: "Base", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	return Model{
		Category: category,
		ShowAll:  cfg.ShowAll,
		Listing:  store.Listing{Options: store.ListOptions{All: cfg.ShowAll}},
		Keys: GlobalKeyMap{
			Palette:   "/",
			ToggleAll: "a",
			Refresh:   "r",
			Help:      "?",
			Quit:      "q",
		},
		runner:        runner,
		refresh:       cfg.Refresh,
		styles:        cfg.Styles,
		markdownStyle: cfg.MarkdownStyle,
		taskTable:     tbl,
		commandInput:  input,
		helpModel:     help.New(),
	}
}

// setStatus replaces the status line; the sequence number lets a delayed
// ClearStatusMsg tell whether the line it targets is still showing.
func (m *Model) setStatus(text string, isError bool) {
	m.statusSeq++
	m.Status = StatusBar{Text: text, IsError: isError}
}

func (m Model) listOptions() store.ListOptions {
	return store.ListOptions{All: m.ShowAll, Base: true}
}
