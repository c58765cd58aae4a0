package views

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/sandeepkv93/tasktimer/internal/commands"
	"github.com/sandeepkv93/tasktimer/internal/model"
	"github.com/sandeepkv93/tasktimer/internal/store"
)

func plainStyles() Styles {
	return NewStyles(lipgloss.NewRenderer(&bytes.Buffer{}))
}

func TestTaskLine(t *testing.T) {
	started := time.Date(2026, 2, 9, 8, 5, 3, 0, time.UTC)
	running := store.ListEntry{
		Task:    model.Task{ID: 3, Name: "deep work", TotalSeconds: 60, Running: true, LastStartedAt: &started},
		Current: 3661,
		Base:    60,
	}

	if got := TaskLine(running, store.ListOptions{}, time.UTC); got != "#[3] 'deep work': 01:01:01" {
		t.Fatalf("unexpected line: %q", got)
	}
	got := TaskLine(running, store.ListOptions{Base: true, Timestamp: true}, time.UTC)
	want := "#[3] 'deep work': 01:01:01 (base 00:01:00) - Last time: 09/02/2026 08:05:03"
	if got != want {
		t.Fatalf("line = %q, want %q", got, want)
	}

	stopped := store.ListEntry{Task: model.Task{ID: 1, Name: "idle"}}
	if got := TaskLine(stopped, store.ListOptions{Timestamp: true}, time.UTC); got != "[1] 'idle': 00:00:00" {
		t.Fatalf("unexpected stopped line: %q", got)
	}
}

func TestRenderListing(t *testing.T) {
	listing := store.Listing{
		Options: store.ListOptions{All: true},
		Entries: []store.ListEntry{
			{Task: model.Task{ID: 1, Name: "a"}, Current: 60, Base: 60},
			{Task: model.Task{ID: 2, Name: "b"}, Current: 120, Base: 120},
		},
		Total: 180,
	}
	out := RenderListing(plainStyles(), listing, time.UTC)
	for _, want := range []string{"[1] 'a': 00:01:00", "[2] 'b': 00:02:00", "Total: 00:03:00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	empty := store.Listing{Options: store.ListOptions{}}
	if got := RenderListing(plainStyles(), empty, time.UTC); got != "There are no running tasks." {
		t.Fatalf("unexpected empty output: %q", got)
	}
}

func TestRenderResult(t *testing.T) {
	styles := plainStyles()
	if got := RenderResult(styles, commands.Result{Message: "Task 1 started"}); got != "Task 1 started" {
		t.Fatalf("unexpected result: %q", got)
	}
	if got := RenderResult(styles, commands.Result{Message: "nope", IsError: true}); !strings.Contains(got, "nope") {
		t.Fatalf("unexpected error result: %q", got)
	}
}

func TestRenderMarkdown(t *testing.T) {
	if got := RenderMarkdown("  ", "notty"); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
	out := RenderMarkdown("# Watch\n\nPress **q** to quit.", "notty")
	if !strings.Contains(out, "Watch") || !strings.Contains(out, "quit") {
		t.Fatalf("unexpected markdown output: %q", out)
	}
}

func TestRenderWatch(t *testing.T) {
	out := RenderWatch(plainStyles(), WatchData{
		Header: "tasktimer watch",
		Table:  "rows",
		Total:  "Total: 00:00:00",
		Status: "Task 1 started",
		Footer: "q quit",
	})
	for _, want := range []string{"tasktimer watch", "rows", "Total: 00:00:00", "Task 1 started", "q quit"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}
