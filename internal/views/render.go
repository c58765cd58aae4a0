package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/tasktimer/internal/commands"
	"github.com/sandeepkv93/tasktimer/internal/model"
	"github.com/sandeepkv93/tasktimer/internal/store"
)

const timestampLayout = "02/01/2006 15:04:05"

// Styles are bound to a renderer so colour output follows the destination
// writer; a non-terminal writer gets plain text.
type Styles struct {
	Header  lipgloss.Style
	Running lipgloss.Style
	Stopped lipgloss.Style
	Total   lipgloss.Style
	Status  lipgloss.Style
	Error   lipgloss.Style
	Panel   lipgloss.Style
	Footer  lipgloss.Style
}

func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return Styles{
		Header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Running: r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Stopped: r.NewStyle(),
		Total:   r.NewStyle().Bold(true),
		Status:  r.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")),
		Panel:   r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
		Footer:  r.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// TaskLine renders one listing entry as `#[id] 'name': HH:MM:SS`, with the
// optional base duration and last start time appended.
func TaskLine(e store.ListEntry, opts store.ListOptions, loc *time.Location) string {
	prefix := ""
	if e.Task.Running {
		prefix = "#"
	}
	line := fmt.Sprintf("%s[%d] '%s': %s", prefix, e.Task.ID, e.Task.Name, model.FormatDuration(e.Current))
	if opts.Base {
		line += fmt.Sprintf(" (base %s)", model.FormatDuration(e.Base))
	}
	if opts.Timestamp && e.Task.LastStartedAt != nil {
		line += " - Last time: " + FormatTimestamp(*e.Task.LastStartedAt, loc)
	}
	return line
}

func FormatTimestamp(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(timestampLayout)
}

func TotalLine(total uint64) string {
	return "Total: " + model.FormatDuration(total)
}

func RenderListing(styles Styles, l store.Listing, loc *time.Location) string {
	if l.Empty() {
		return l.EmptyMessage()
	}
	lines := make([]string, 0, len(l.Entries)+2)
	for _, e := range l.Entries {
		line := TaskLine(e, l.Options, loc)
		if e.Task.Running {
			lines = append(lines, styles.Running.Render(line))
		} else {
			lines = append(lines, styles.Stopped.Render(line))
		}
	}
	lines = append(lines, "", styles.Total.Render(TotalLine(l.Total)))
	return strings.Join(lines, "\n")
}

func RenderResult(styles Styles, res commands.Result) string {
	if res.IsError {
		return styles.Error.Render(res.Message)
	}
	return res.Message
}

// RenderMarkdown renders md with a glamour style name ("dark", "notty", ...),
// falling back to the raw text.
func RenderMarkdown(md, style string) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	out, err := glamour.Render(md, style)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

type WatchData struct {
	Header  string
	Table   string
	Total   string
	Status  string
	IsError bool
	Palette string
	Help    string
	Footer  string
}

func RenderWatch(styles Styles, data WatchData) string {
	status := styles.Status.Render(data.Status)
	if data.IsError {
		status = styles.Error.Render(data.Status)
	}
	lines := []string{
		styles.Header.Render(data.Header),
		styles.Panel.Render(data.Table),
		styles.Total.Render(data.Total),
	}
	if data.Status != "" {
		lines = append(lines, status)
	}
	if data.Palette != "" {
		lines = append(lines, data.Palette)
	}
	if data.Help != "" {
		lines = append(lines, styles.Panel.Render(data.Help))
	}
	if data.Footer != "" {
		lines = append(lines, styles.Footer.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}
