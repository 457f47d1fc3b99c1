package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todolist/internal/todo"
)

const (
	optionToggle = iota
	optionEdit
	optionDelete
	optionCount
)

// optionsMenu is the per-item menu. It holds a copy of the task so the
// toggle label can flip while the menu fades out.
type optionsMenu struct {
	task   todo.Task
	cursor int
}

func (o optionsMenu) label(i int) string {
	switch i {
	case optionToggle:
		if o.task.Completed {
			return "Mark as Not Done"
		}
		return "Mark as Done"
	case optionEdit:
		return "Edit"
	case optionDelete:
		return "Delete"
	}
	return ""
}

// confirmDialog asks before a delete. The Cancel button is focused first.
type confirmDialog struct {
	task          todo.Task
	deleteFocused bool
}

func (m Model) askDelete(t todo.Task) Model {
	m.confirm = confirmDialog{task: t}
	m.overlay = overlayConfirmDelete
	return m
}

func (m Model) updateOptions(key string) (Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, m.cfg.Keys.Options:
		m.overlay = overlayNone
	case m.cfg.Keys.Down, "down":
		m.options.cursor = clampCursor(m.options.cursor+1, optionCount)
	case m.cfg.Keys.Up, "up":
		m.options.cursor = clampCursor(m.options.cursor-1, optionCount)
	case m.cfg.Keys.Confirm:
		return m.runOption(m.options.cursor)
	}
	return m, nil
}

func (m Model) runOption(opt int) (Model, tea.Cmd) {
	id := m.options.task.ID
	switch opt {
	case optionToggle:
		t, ok := m.store.ToggleComplete(m.ctx, id)
		if !ok {
			m.overlay = overlayNone
			return m, nil
		}
		m.options.task = t
		m = m.refreshed()
		m = m.focusTask(id)
		return m, closeAfter(m.delay, closeOptionsMsg{id: id})
	case optionEdit:
		m.overlay = overlayNone
		return m.openEdit(id)
	case optionDelete:
		return m.askDelete(m.options.task), nil
	}
	return m, nil
}

func (m Model) updateConfirmDelete(key string) (Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "n", "N":
		m.overlay = overlayNone
		m.status = "Delete cancelled"
	case "y", "Y":
		return m.confirmDelete()
	case "left", "right", "h", "l", m.cfg.Keys.Next, m.cfg.Keys.Prev:
		m.confirm.deleteFocused = !m.confirm.deleteFocused
	case m.cfg.Keys.Confirm:
		if m.confirm.deleteFocused {
			return m.confirmDelete()
		}
		m.overlay = overlayNone
		m.status = "Delete cancelled"
	}
	return m, nil
}

// confirmDelete closes the dialog and removes the task once the close has
// had time to show.
func (m Model) confirmDelete() (Model, tea.Cmd) {
	m.overlay = overlayNone
	return m, closeAfter(m.delay, deleteTaskMsg{id: m.confirm.task.ID})
}

func closeAfter(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}

func (m Model) renderOptions() string {
	s := m.theme.Styles
	var b strings.Builder
	b.WriteString(s.Header.Render(m.options.task.Title))
	b.WriteString("\n\n")
	for i := 0; i < optionCount; i++ {
		cursor := "  "
		if i == m.options.cursor {
			cursor = s.Selected.Render("> ")
		}
		label := m.options.label(i)
		if i == optionDelete {
			label = s.Danger.Render(label)
		}
		b.WriteString(cursor + label)
		if i < optionCount-1 {
			b.WriteString("\n")
		}
	}
	return s.Dialog.Render(b.String())
}

func (m Model) renderConfirmDelete() string {
	s := m.theme.Styles
	cancel := s.Button.Render("Cancel")
	del := s.ButtonMuted.Render("Delete")
	if m.confirm.deleteFocused {
		cancel = s.ButtonMuted.Render("Cancel")
		del = s.Button.Background(m.theme.Palette.Red).Render("Delete")
	}
	body := fmt.Sprintf("%s\n\nAre you sure you want to delete this to-do?\n%s\n\n%s  %s",
		s.Header.Render("Confirm Delete"),
		s.Meta.Render(m.confirm.task.Title),
		cancel, del)
	return s.Dialog.Render(body)
}
