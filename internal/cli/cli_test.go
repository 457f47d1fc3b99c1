package cli

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"todolist/internal/config"
	"todolist/internal/todo"
)

func newConfigPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "config.toml")
}

func execute(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustExecute(t *testing.T, cfgPath string, args ...string) string {
	t.Helper()
	out, err := execute(t, cfgPath, args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

func stubConfirm(t *testing.T, answer bool) *int {
	t.Helper()
	calls := 0
	prev := confirm
	confirm = func(string) (bool, error) {
		calls++
		return answer, nil
	}
	t.Cleanup(func() { confirm = prev })
	return &calls
}

func TestListSeedsOnFirstRun(t *testing.T) {
	out := mustExecute(t, newConfigPath(t), "list")

	for _, want := range []string{"Pending (3)", "Completed (2)", "Welcome!", "Last saved "} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAddThenList(t *testing.T) {
	cfg := newConfigPath(t)

	out := mustExecute(t, cfg, "add", "Water", "plants", "--date", "2030-05-01", "--time", "9am")
	if !strings.Contains(out, "Added todo 6: Water plants") {
		t.Fatalf("unexpected output %q", out)
	}

	out = mustExecute(t, cfg, "list")
	if !strings.Contains(out, "Water plants  2030-05-01 09:00 AM") {
		t.Fatalf("list missing new todo:\n%s", out)
	}
}

func TestAddRejectsPartialSchedule(t *testing.T) {
	_, err := execute(t, newConfigPath(t), "add", "Dentist", "--date", "2030-05-01")
	if !errors.Is(err, todo.ErrPartialSchedule) {
		t.Fatalf("err = %v, want ErrPartialSchedule", err)
	}
}

func TestAddRejectsBlankTitle(t *testing.T) {
	_, err := execute(t, newConfigPath(t), "add", "   ")
	if !errors.Is(err, todo.ErrBlankTitle) {
		t.Fatalf("err = %v, want ErrBlankTitle", err)
	}
}

func TestAddRejectsUnreadableDate(t *testing.T) {
	cfg := newConfigPath(t)
	_, err := execute(t, cfg, "add", "Garbage date", "--date", "banana", "--time", "9am")
	if !errors.Is(err, todo.ErrInvalidDate) {
		t.Fatalf("err = %v, want ErrInvalidDate", err)
	}
	if out := mustExecute(t, cfg, "list"); strings.Contains(out, "Garbage date") {
		t.Fatal("an unreadable date should not create a todo")
	}
}

func TestRemovedIDIsNotReused(t *testing.T) {
	cfg := newConfigPath(t)

	if out := mustExecute(t, cfg, "add", "first new"); !strings.Contains(out, "Added todo 6:") {
		t.Fatalf("unexpected output %q", out)
	}
	mustExecute(t, cfg, "rm", "6", "--yes")
	if out := mustExecute(t, cfg, "add", "second new"); !strings.Contains(out, "Added todo 7:") {
		t.Fatalf("removed id was handed out again: %q", out)
	}
}

func TestDoneAndUndo(t *testing.T) {
	cfg := newConfigPath(t)

	if out := mustExecute(t, cfg, "done", "1"); !strings.Contains(out, todo.MsgMarkedDone) {
		t.Fatalf("unexpected output %q", out)
	}
	if out := mustExecute(t, cfg, "done", "1"); !strings.Contains(out, "already done") {
		t.Fatalf("unexpected output %q", out)
	}
	if out := mustExecute(t, cfg, "done", "1", "--undo"); !strings.Contains(out, todo.MsgMarkedNotDone) {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestDoneUnknownID(t *testing.T) {
	_, err := execute(t, newConfigPath(t), "done", "42")
	if !errors.Is(err, todo.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestEdit(t *testing.T) {
	cfg := newConfigPath(t)

	out := mustExecute(t, cfg, "edit", "2", "--title", "Plan next week")
	if !strings.Contains(out, todo.MsgUpdated) {
		t.Fatalf("unexpected output %q", out)
	}
	mustExecute(t, cfg, "edit", "2", "--clear-schedule")

	out = mustExecute(t, cfg, "list")
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "Plan next week") && strings.Contains(line, "2025-") {
			t.Fatalf("schedule not cleared: %q", line)
		}
	}
	if !strings.Contains(out, "Plan next week") {
		t.Fatalf("list missing renamed todo:\n%s", out)
	}

	if _, err := execute(t, cfg, "edit", "2"); err == nil {
		t.Fatal("edit without changes should fail")
	}
	if _, err := execute(t, cfg, "edit", "2", "--title", " "); !errors.Is(err, todo.ErrBlankTitle) {
		t.Fatalf("err = %v, want ErrBlankTitle", err)
	}
}

func TestRemoveAsksForConfirmation(t *testing.T) {
	cfg := newConfigPath(t)

	calls := stubConfirm(t, false)
	out := mustExecute(t, cfg, "rm", "1")
	if *calls != 1 || !strings.Contains(out, "Delete cancelled") {
		t.Fatalf("calls=%d output %q", *calls, out)
	}
	if out := mustExecute(t, cfg, "list"); !strings.Contains(out, "Welcome!") {
		t.Fatal("cancelled delete removed the todo")
	}

	stubConfirm(t, true)
	mustExecute(t, cfg, "rm", "1")
	if out := mustExecute(t, cfg, "list"); strings.Contains(out, "Welcome!") {
		t.Fatal("confirmed delete kept the todo")
	}
}

func TestRemoveWithYesSkipsPrompt(t *testing.T) {
	cfg := newConfigPath(t)
	calls := stubConfirm(t, false)

	out := mustExecute(t, cfg, "rm", "2", "--yes")

	if *calls != 0 {
		t.Fatal("--yes should not prompt")
	}
	if !strings.Contains(out, "Deleted todo 2") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestThemeCommand(t *testing.T) {
	cfg := newConfigPath(t)

	if out := mustExecute(t, cfg, "theme"); strings.TrimSpace(out) != "light" {
		t.Fatalf("theme = %q", out)
	}
	if out := mustExecute(t, cfg, "theme", "toggle"); !strings.Contains(out, "Theme: dark") {
		t.Fatalf("unexpected output %q", out)
	}
	if out := mustExecute(t, cfg, "theme"); strings.TrimSpace(out) != "dark" {
		t.Fatalf("theme = %q", out)
	}
	if _, err := execute(t, cfg, "theme", "blue"); err == nil {
		t.Fatal("unknown theme should fail")
	}

	saved, err := config.LoadOrCreate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if saved.Theme != "dark" {
		t.Fatalf("config theme = %q, want dark", saved.Theme)
	}
}

func TestResetClearsStorage(t *testing.T) {
	cfg := newConfigPath(t)
	mustExecute(t, cfg, "add", "Temporary")
	stubConfirm(t, true)

	if out := mustExecute(t, cfg, "reset"); !strings.Contains(out, "Storage cleared") {
		t.Fatalf("unexpected output %q", out)
	}

	out := mustExecute(t, cfg, "list")
	if strings.Contains(out, "Temporary") {
		t.Fatal("reset kept a stored todo")
	}
	if !strings.Contains(out, "Welcome!") {
		t.Fatal("the example list should return after a reset")
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		in   string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{" 12 ", 12, true},
		{"0", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range tests {
		got, err := parseID(tc.in)
		if (err == nil) != tc.ok || got != tc.want {
			t.Fatalf("parseID(%q) = %d, %v", tc.in, got, err)
		}
	}
}

func TestFormatTask(t *testing.T) {
	now := time.Date(2025, 1, 8, 12, 0, 0, 0, time.Local)
	tests := []struct {
		name string
		task todo.Task
		want string
	}{
		{"plain", todo.Task{ID: 1, Title: "Read"}, "  [ ]   1  Read"},
		{"overdue", todo.Task{ID: 2, Title: "Pay", Date: "2025-01-06", Time: "09:00 AM"}, "  [ ]   2  Pay  2025-01-06 09:00 AM  (overdue)"},
		{"upcoming", todo.Task{ID: 3, Title: "Call", Date: "2025-01-09", Time: "09:00 AM"}, "  [ ]   3  Call  2025-01-09 09:00 AM"},
		{"done", todo.Task{ID: 4, Title: "Old", Completed: true, Date: "2025-01-06", Time: "09:00 AM"}, "  [x]   4  Old  2025-01-06 09:00 AM"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := formatTask(tc.task, now); got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}
