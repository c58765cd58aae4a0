package update

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/sandeepkv93/tasktimer/internal/views"
)

const paletteHelp = `## Commands

- ` + "`create <name> [--start]`" + ` new task
- ` + "`start|stop|cancel <id>`" + ` control a timer
- ` + "`add|sub|set <id> <1h30m>`" + ` adjust time
- ` + "`rename <id> <name>`" + ` rename
- ` + "`delete <id>`" + `, ` + "`delete-name <name>`" + ` remove
- ` + "`archive <id>`" + ` move to archive
- ` + "`list [all]`" + ` choose running or all tasks
`

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	keys := m.helpModel.View(helpKeyMap{short: bindings, full: [][]key.Binding{bindings}})
	return strings.TrimSpace(views.RenderMarkdown(paletteHelp, m.markdownStyle) + "\n\n" + keys)
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.ToggleAll, Action: "toggle all/running"},
		{Key: m.Keys.Refresh, Action: "refresh now"},
		{Key: "up/down", Action: "move selection"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
