package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"todolist/internal/todo"
)

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid todo id %q", s)
	}
	return id, nil
}

func formatTask(t todo.Task, now time.Time) string {
	box := "[ ]"
	if t.Completed {
		box = "[x]"
	}
	line := fmt.Sprintf("  %s %3d  %s", box, t.ID, t.Title)
	if !t.Scheduled() {
		return line
	}
	line += fmt.Sprintf("  %s %s", t.Date, t.Time)
	if t.Completed {
		return line
	}
	if datePassed, timePassed := todo.HasPassed(t.Date, t.Time, now); datePassed || timePassed {
		line += "  (overdue)"
	}
	return line
}

// printSections writes the pending tasks, then the completed ones, in store
// order.
func printSections(w io.Writer, items []todo.Task, now time.Time) {
	if len(items) == 0 {
		fmt.Fprintln(w, "No todos yet.")
		return
	}
	for _, done := range []bool{false, true} {
		title := "Pending"
		if done {
			title = "Completed"
		}
		var lines []string
		for _, t := range items {
			if t.Completed == done {
				lines = append(lines, formatTask(t, now))
			}
		}
		fmt.Fprintf(w, "%s (%d)\n", title, len(lines))
		for _, l := range lines {
			fmt.Fprintln(w, l)
		}
	}
}

// parseSchedule turns the user's date and time flags into the stored forms.
func parseSchedule(date, clock string, now time.Time) (string, string, error) {
	d, err := todo.ParseDateInput(date, now)
	if err != nil {
		return "", "", err
	}
	c, err := todo.ParseClockInput(clock)
	if err != nil {
		return "", "", err
	}
	if (d == "") != (c == "") {
		return "", "", todo.ErrPartialSchedule
	}
	return d, c, nil
}
