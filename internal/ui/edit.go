package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todolist/internal/todo"
)

type editState int

const (
	editLoading editState = iota
	editFound
	editNotFound
)

// editScreen edits one todo by id. Changes live in the inputs until saved.
type editScreen struct {
	id       int
	state    editState
	original todo.Task
	inputs   [fieldCount]textinput.Model
	focus    int
	hint     string
	width    int
}

func newEditScreen(id, width int) editScreen {
	e := editScreen{id: id, state: editLoading, inputs: newInputs(), width: width}
	if width > 0 {
		e = e.setWidth(width)
	}
	return e
}

func (e editScreen) setWidth(w int) editScreen {
	if w < 20 {
		w = 20
	}
	e.width = w
	for i := range e.inputs {
		e.inputs[i].Width = w
	}
	return e
}

func (e editScreen) loaded(t todo.Task, found bool) editScreen {
	if !found {
		e.state = editNotFound
		return e
	}
	e.state = editFound
	e.original = t
	e.inputs[fieldTitle].SetValue(t.Title)
	e.inputs[fieldDate].SetValue(t.Date)
	e.inputs[fieldTime].SetValue(t.Time)
	e.inputs[fieldTitle].Placeholder = "Edit Todo Title"
	e.focus = fieldTitle
	e.inputs[fieldTitle].Focus()
	return e
}

func (e editScreen) moveFocus(delta int) editScreen {
	e.inputs[e.focus].Blur()
	e.focus = wrapIndex(e.focus+delta, fieldCount)
	e.inputs[e.focus].Focus()
	return e
}

func (m Model) openEdit(id int) (Model, tea.Cmd) {
	m.screen = screenEdit
	m.overlay = overlayNone
	m.edit = newEditScreen(id, m.edit.width)
	store := m.store
	return m, func() tea.Msg {
		t, ok := store.Get(id)
		return taskLookupMsg{id: id, task: t, found: ok}
	}
}

// backToList leaves the edit screen and re-reads the store so the list
// reflects whatever was written while it was hidden.
func (m Model) backToList() (Model, tea.Cmd) {
	id := m.edit.id
	m.screen = screenList
	m.edit = newEditScreen(0, m.edit.width)
	m = m.focusTask(id)
	return m.loadTasks()
}

func (m Model) updateEdit(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if m.edit.state != editFound {
		switch key {
		case m.cfg.Keys.Cancel, m.cfg.Keys.Quit:
			return m.backToList()
		}
		return m, nil
	}

	switch key {
	case m.cfg.Keys.Cancel:
		m.status = "Edit cancelled"
		return m.backToList()
	case m.cfg.Keys.Next:
		m.edit = m.edit.moveFocus(1)
		return m, nil
	case m.cfg.Keys.Prev:
		m.edit = m.edit.moveFocus(-1)
		return m, nil
	case "ctrl+s":
		return m.saveEdit()
	case m.cfg.Keys.Confirm:
		if m.edit.focus < fieldCount-1 {
			m.edit = m.edit.moveFocus(1)
			return m, nil
		}
		return m.saveEdit()
	default:
		var cmd tea.Cmd
		m.edit.inputs[m.edit.focus], cmd = m.edit.inputs[m.edit.focus].Update(msg)
		m.edit.hint = ""
		return m, cmd
	}
}

func (m Model) saveEdit() (Model, tea.Cmd) {
	title, date, clock, err := parseDraft(m.edit.inputs, m.now())
	if err != nil {
		m.edit.hint = err.Error()
		return m, nil
	}
	t := m.edit.original
	t.Title, t.Date, t.Time = title, date, clock

	if err := m.store.Update(m.ctx, t); err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			m.edit.state = editNotFound
			return m, nil
		}
		if isValidation(err) {
			m.edit.hint = err.Error()
			return m, nil
		}
		// Write failures are only logged; the screen stays open.
		m.logger.Error("Error saving todo", "id", t.ID, "err", err)
		return m, nil
	}
	return m.backToList()
}

func isValidation(err error) bool {
	return errors.Is(err, todo.ErrBlankTitle) ||
		errors.Is(err, todo.ErrPartialSchedule) ||
		errors.Is(err, todo.ErrInvalidDate) ||
		errors.Is(err, todo.ErrInvalidTime)
}

func (m Model) renderEdit() string {
	s := m.theme.Styles
	var b strings.Builder
	switch m.edit.state {
	case editLoading:
		b.WriteString(s.Meta.Render("Loading..."))
		return b.String()
	case editNotFound:
		b.WriteString(s.Header.Render("Todo not found"))
		b.WriteString("\n")
		b.WriteString(s.Meta.Render(fmt.Sprintf("No todo with id %d.", m.edit.id)))
		return b.String()
	}

	b.WriteString(s.Header.Render("Edit Todo"))
	b.WriteString("\n\n")
	labels := [fieldCount]string{"Todo Title: ", "Change Date:", "Change Time:"}
	for i, in := range m.edit.inputs {
		b.WriteString(labels[i])
		b.WriteString(" ")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	if t := m.edit.original; t.Scheduled() {
		datePassed, timePassed := todo.HasPassed(t.Date, t.Time, m.now())
		if datePassed || timePassed {
			b.WriteString(s.Danger.Render("This todo is overdue."))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(s.Button.Render("Save") + "  " + s.Button.Background(m.theme.Palette.Red).Render("Cancel"))
	if m.edit.hint != "" {
		b.WriteString("\n")
		b.WriteString(s.Danger.Render(m.edit.hint))
	}
	return b.String()
}
