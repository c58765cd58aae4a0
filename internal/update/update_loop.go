package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/tasktimer/internal/model"
	"github.com/sandeepkv93/tasktimer/internal/views"
)

func (m Model) Init() tea.Cmd {
	return m.loadCmd(true)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		switch typed.String() {
		case m.Keys.Palette:
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.SetValue("")
			m.commandInput.Focus()
			m.setStatus("command palette active", false)
			return m, nil
		case m.Keys.ToggleAll:
			m.ShowAll = !m.ShowAll
			if m.ShowAll {
				m.setStatus("showing all tasks", false)
			} else {
				m.setStatus("showing running tasks", false)
			}
			return m, m.loadCmd(false)
		case m.Keys.Refresh:
			return m, m.loadCmd(false)
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.taskTable, cmd = m.taskTable.Update(typed)
		return m, cmd
	case tea.WindowSizeMsg:
		if h := typed.Height - 10; h > 3 {
			m.taskTable.SetHeight(h)
		}
		return m, nil
	case ListingMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.setStatus(typed.Err.Error(), true)
		} else {
			m.Listing = typed.Listing
			m.syncTable()
		}
		if typed.Tick {
			return m, refreshTickCmd(m.refresh)
		}
		return m, nil
	case RefreshTickMsg:
		return m, m.loadCmd(true)
	case CommandResultMsg:
		m.Busy = false
		m.setStatus(typed.Result.Message, typed.Result.IsError)
		return m, tea.Batch(m.loadCmd(false), clearStatusCmd(m.statusSeq, statusTimeout))
	case ClearStatusMsg:
		if typed.Seq == m.statusSeq {
			m.Status = StatusBar{}
		}
		return m, nil
	case AppErrorMsg:
		m.Busy = false
		m.LastError = typed.Err
		if typed.Err != nil {
			m.setStatus(typed.Err.Error(), true)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) syncTable() {
	rows := make([]table.Row, 0, len(m.Listing.Entries))
	for _, e := range m.Listing.Entries {
		marker := ""
		if e.Task.Running {
			marker = "#"
		}
		rows = append(rows, table.Row{
			marker,
			fmt.Sprintf("%d", e.Task.ID),
			e.Task.Name,
			model.FormatDuration(e.Current),
			model.FormatDuration(e.Base),
		})
	}
	m.taskTable.SetRows(rows)
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	showing := "running"
	if m.ShowAll {
		showing = "all"
	}
	body := m.Listing.EmptyMessage()
	if !m.Listing.Empty() {
		body = m.taskTable.View()
	}
	palette := ""
	if m.Palette.Active {
		palette = "command: " + m.commandInput.View()
	}
	return views.RenderWatch(m.styles, views.WatchData{
		Header:  fmt.Sprintf("tasktimer watch | category: %s | showing: %s", m.Category, showing),
		Table:   body,
		Total:   views.TotalLine(m.Listing.Total),
		Status:  strings.TrimSpace(m.Status.Text),
		IsError: m.Status.IsError,
		Palette: palette,
		Help:    m.renderHelpIfVisible(),
		Footer: fmt.Sprintf("keys: %s command | %s all/running | %s refresh | %s help | %s quit",
			m.Keys.Palette, m.Keys.ToggleAll, m.Keys.Refresh, m.Keys.Help, m.Keys.Quit),
	})
}
