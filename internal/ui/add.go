package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todolist/internal/todo"
)

const (
	fieldTitle = iota
	fieldDate
	fieldTime
	fieldCount
)

// addDialog holds the drafts of a new todo. Nothing reaches the store until
// the draft is confirmed.
type addDialog struct {
	inputs [fieldCount]textinput.Model
	focus  int
	hint   string
}

func newInputs() [fieldCount]textinput.Model {
	var inputs [fieldCount]textinput.Model
	placeholders := [fieldCount]string{
		"Enter todo",
		"Date: YYYY-MM-DD, tomorrow, next friday",
		"Time: 3:30 PM, 15:30, 9am",
	}
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Width = 40
		inputs[i] = ti
	}
	return inputs
}

func newAddDialog() addDialog {
	return addDialog{inputs: newInputs()}
}

func (d addDialog) open() addDialog {
	d = newAddDialog().withWidth(d.inputs[fieldTitle].Width)
	d.inputs[fieldTitle].Focus()
	return d
}

func (d addDialog) withWidth(w int) addDialog {
	for i := range d.inputs {
		d.inputs[i].Width = w
	}
	return d
}

func (d addDialog) setWidth(w int) addDialog {
	if w < 20 {
		w = 20
	}
	return d.withWidth(w)
}

func (d addDialog) moveFocus(delta int) addDialog {
	d.inputs[d.focus].Blur()
	d.focus = wrapIndex(d.focus+delta, fieldCount)
	d.inputs[d.focus].Focus()
	return d
}

// draft returns the normalised title, date and time. The error explains
// why the dialog cannot be confirmed yet.
func (d addDialog) draft(now time.Time) (title, date, clock string, err error) {
	return parseDraft(d.inputs, now)
}

func (d addDialog) canConfirm(now time.Time) bool {
	_, _, _, err := d.draft(now)
	return err == nil
}

func parseDraft(inputs [fieldCount]textinput.Model, now time.Time) (title, date, clock string, err error) {
	title = strings.TrimSpace(inputs[fieldTitle].Value())
	if title == "" {
		return "", "", "", todo.ErrBlankTitle
	}
	date, err = todo.ParseDateInput(inputs[fieldDate].Value(), now)
	if err != nil {
		return "", "", "", err
	}
	clock, err = todo.ParseClockInput(inputs[fieldTime].Value())
	if err != nil {
		return "", "", "", err
	}
	if (date == "") != (clock == "") {
		return "", "", "", todo.ErrPartialSchedule
	}
	return title, date, clock, nil
}

func (m Model) updateAdd(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case m.cfg.Keys.Cancel:
		m.overlay = overlayNone
		m.add = newAddDialog().withWidth(m.add.inputs[fieldTitle].Width)
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Next:
		m.add = m.add.moveFocus(1)
		return m, nil
	case m.cfg.Keys.Prev:
		m.add = m.add.moveFocus(-1)
		return m, nil
	case m.cfg.Keys.Confirm:
		title, date, clock, err := m.add.draft(m.now())
		if err != nil {
			m.add.hint = err.Error()
			return m, nil
		}
		created, err := m.store.Create(m.ctx, title, date, clock)
		if err != nil {
			m.add.hint = err.Error()
			return m, nil
		}
		m = m.refreshed()
		m.overlay = overlayNone
		m.add = newAddDialog().withWidth(m.add.inputs[fieldTitle].Width)
		m.status = "Added todo"
		if m.collapsed[sectionPending] {
			m.collapsed[sectionPending] = false
		}
		return m.focusTask(created.ID), nil
	default:
		var cmd tea.Cmd
		m.add.inputs[m.add.focus], cmd = m.add.inputs[m.add.focus].Update(msg)
		m.add.hint = ""
		return m, cmd
	}
}

func (m Model) renderAdd() string {
	s := m.theme.Styles
	var b strings.Builder
	b.WriteString(s.Header.Render("Add New Todo"))
	b.WriteString("\n\n")
	labels := [fieldCount]string{"Title", "Date ", "Time "}
	for i, in := range m.add.inputs {
		b.WriteString(labels[i])
		b.WriteString(" ")
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	add := s.ButtonMuted.Render("Add")
	if m.add.canConfirm(m.now()) {
		add = s.Button.Render("Add")
	}
	b.WriteString(s.ButtonMuted.Render("Cancel") + "  " + add)
	if m.add.hint != "" {
		b.WriteString("\n")
		b.WriteString(s.Danger.Render(m.add.hint))
	}
	return s.Dialog.Render(b.String())
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
