package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/sandeepkv93/tasktimer/internal/store"
)

type cliEnv struct {
	dataDir   string
	configDir string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	env := cliEnv{dataDir: t.TempDir(), configDir: t.TempDir()}
	t.Setenv("XDG_CONFIG_HOME", env.configDir)
	t.Setenv("HOME", env.configDir)
	t.Setenv("TASKTIMER_DATA_DIR", "")
	t.Setenv("TASKTIMER_BACKEND", "")
	t.Setenv("TASKTIMER_VERBOSE", "")
	return env
}

func (e cliEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--data-dir", e.dataDir}, args...))
	err := root.Execute()
	return out.String(), err
}

func (e cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, "", args...)
	if err != nil {
		t.Fatalf("tasktimer %v: %v", args, err)
	}
	return out
}

func TestCreateAndList(t *testing.T) {
	env := newCLIEnv(t)

	if out := env.mustRun(t, "create", "write"); !strings.Contains(out, "Task write created with id 1") {
		t.Fatalf("unexpected create output %q", out)
	}
	if out := env.mustRun(t, "list"); !strings.Contains(out, "There are no running tasks.") {
		t.Fatalf("unexpected list output %q", out)
	}
	out := env.mustRun(t, "list", "--all")
	if !strings.Contains(out, "#[1] 'write': 00:00:00") || !strings.Contains(out, "Total: 00:00:00") {
		t.Fatalf("unexpected list --all output %q", out)
	}
	if _, err := os.Stat(filepath.Join(env.dataDir, "current.json")); err != nil {
		t.Fatalf("expected current.json in data dir: %v", err)
	}
}

func TestTimeAdjustments(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "create", "write")

	if out := env.mustRun(t, "add", "1", "1h30m"); !strings.Contains(out, "Added 1h30m to task with id 1, new timer: 01:30:00") {
		t.Fatalf("unexpected add output %q", out)
	}
	if out := env.mustRun(t, "sub", "1", "30m"); !strings.Contains(out, "new timer: 01:00:00") {
		t.Fatalf("unexpected sub output %q", out)
	}
	if out := env.mustRun(t, "sub", "1", "2h"); !strings.Contains(out, "does not have enough time") {
		t.Fatalf("unexpected sub output %q", out)
	}
	if out := env.mustRun(t, "set", "1", "2h"); !strings.Contains(out, "New time 2h set for task 1") {
		t.Fatalf("unexpected set output %q", out)
	}
	if out := env.mustRun(t, "add", "1", "abc"); !strings.Contains(out, "Invalid time") {
		t.Fatalf("unexpected add output %q", out)
	}
	if out := env.mustRun(t, "list", "-a", "-b"); !strings.Contains(out, "02:00:00") {
		t.Fatalf("unexpected list output %q", out)
	}
}

func TestStartStopCancel(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "create", "write", "--start")

	if out := env.mustRun(t, "start", "1"); !strings.Contains(out, "Task 1 is already running") {
		t.Fatalf("unexpected start output %q", out)
	}
	if out := env.mustRun(t, "list"); !strings.Contains(out, "'write'") {
		t.Fatalf("running task missing from list %q", out)
	}
	if out := env.mustRun(t, "cancel", "1"); !strings.Contains(out, "Task 1 canceled") {
		t.Fatalf("unexpected cancel output %q", out)
	}
	if out := env.mustRun(t, "stop", "1"); !strings.Contains(out, "Task 1 is not currently running") {
		t.Fatalf("unexpected stop output %q", out)
	}
	if out := env.mustRun(t, "stop", "9"); !strings.Contains(out, "Task with id 9 does not exist") {
		t.Fatalf("unexpected stop output %q", out)
	}
}

func TestRenameAndDelete(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "create", "write")
	env.mustRun(t, "create", "review")

	if out := env.mustRun(t, "rename", "1", "draft"); !strings.Contains(out, "Task 1 renamed to draft") {
		t.Fatalf("unexpected rename output %q", out)
	}
	if out := env.mustRun(t, "delete-name", "draft"); !strings.Contains(out, "Task 1 'draft' deleted") {
		t.Fatalf("unexpected delete-name output %q", out)
	}
	if out := env.mustRun(t, "delete", "2"); !strings.Contains(out, "Task 2 deleted") {
		t.Fatalf("unexpected delete output %q", out)
	}
	if out := env.mustRun(t, "list", "--all"); !strings.Contains(out, "There are no tasks.") {
		t.Fatalf("unexpected list output %q", out)
	}
}

func TestArchiveFlow(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "create", "write")

	if out := env.mustRun(t, "archive", "1"); !strings.Contains(out, "Task 1 archived with archive id 1") {
		t.Fatalf("unexpected archive output %q", out)
	}
	if out := env.mustRun(t, "-t", "archive", "list", "--all"); !strings.Contains(out, "#[1] 'write'") {
		t.Fatalf("archived task missing %q", out)
	}
	if out := env.mustRun(t, "--tasktype", "archive", "archive", "1"); !strings.Contains(out, "Cannot archive archived tasks") {
		t.Fatalf("unexpected archive output %q", out)
	}
}

func TestClearPrompts(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "create", "write")

	out, err := env.run(t, "n\n", "clear")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !strings.Contains(out, "Do you want to proceed clearing all current tasks? (Y/N)") || !strings.Contains(out, "Clearing canceled.") {
		t.Fatalf("unexpected clear output %q", out)
	}

	out, err = env.run(t, "maybe\ny\n", "clear")
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if !strings.Contains(out, "Invalid input") || !strings.Contains(out, "Tasks cleared.") {
		t.Fatalf("unexpected clear output %q", out)
	}
	if out := env.mustRun(t, "list", "-a"); !strings.Contains(out, "There are no tasks.") {
		t.Fatalf("tasks should be gone, got %q", out)
	}
}

func TestArgumentErrorsExitNonZero(t *testing.T) {
	env := newCLIEnv(t)

	if _, err := env.run(t, "", "start", "abc"); err == nil {
		t.Fatal("expected error for non-numeric id")
	}
	if _, err := env.run(t, "", "-t", "bogus", "list"); err == nil {
		t.Fatal("expected error for unknown task type")
	}
	if _, err := env.run(t, "", "--backend", "csv", "list"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if _, err := env.run(t, "", "add", "1"); err == nil {
		t.Fatal("expected error for missing time argument")
	}
	if _, err := os.Stat(filepath.Join(env.dataDir, "current.json")); !os.IsNotExist(err) {
		t.Fatalf("argument errors must not touch storage, stat err = %v", err)
	}
}

func TestSQLiteBackend(t *testing.T) {
	env := newCLIEnv(t)

	env.mustRun(t, "--backend", "sqlite", "create", "write")
	env.mustRun(t, "--backend", "sqlite", "add", "1", "45m")
	out := env.mustRun(t, "--backend", "sqlite", "list", "-a")
	if !strings.Contains(out, "#[1] 'write': 00:45:00") {
		t.Fatalf("unexpected sqlite list output %q", out)
	}
	if _, err := os.Stat(filepath.Join(env.dataDir, "tasktimer.db")); err != nil {
		t.Fatalf("expected sqlite database: %v", err)
	}
}

func TestConfigFileSetsDataDir(t *testing.T) {
	env := newCLIEnv(t)
	dataDir := t.TempDir()
	cfgPath := filepath.Join(env.configDir, "tasktimer", "config.yaml")
	if err := os.MkdirAll(filepath.Dir(cfgPath), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(cfgPath, []byte("data_dir: "+dataDir+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"create", "write"})
	if err := root.Execute(); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dataDir, "current.json")); err != nil {
		t.Fatalf("expected task file in configured data dir: %v", err)
	}
}

func TestMissingExplicitConfigFails(t *testing.T) {
	env := newCLIEnv(t)
	if _, err := env.run(t, "", "--config", filepath.Join(env.configDir, "nope.yaml"), "list"); err == nil {
		t.Fatal("expected error for missing --config file")
	}
}

func TestWatchModelFollowsCommandOutput(t *testing.T) {
	env := newCLIEnv(t)
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.TrueColor)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	opts := &globalOptions{taskType: "current", dataDir: env.dataDir}
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	opened, err := opts.open(root)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer opened.Close()

	view := newWatchModel(opened, store.CategoryCurrent, true).View()
	if !strings.Contains(view, "category: current") {
		t.Fatalf("unexpected view:\n%s", view)
	}
	if strings.Contains(view, "\x1b[") {
		t.Fatalf("view written to a buffer must not carry escape codes:\n%q", view)
	}
}

func TestSQLiteOverflowIsAMessage(t *testing.T) {
	env := newCLIEnv(t)
	env.mustRun(t, "--backend", "sqlite", "create", "long")

	out, err := env.run(t, "", "--backend", "sqlite", "add", "1", "2562047788015216h")
	if err != nil {
		t.Fatalf("overflowing add must not fail the save: %v", err)
	}
	if !strings.Contains(out, "past the maximum") {
		t.Fatalf("unexpected add output %q", out)
	}
	if out := env.mustRun(t, "--backend", "sqlite", "list", "-a"); !strings.Contains(out, "#[1] 'long': 00:00:00") {
		t.Fatalf("task should be unchanged, got %q", out)
	}
}
