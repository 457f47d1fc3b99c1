package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"todolist/internal/theme"
	"todolist/internal/todo"
)

const (
	sectionPending   = "Pending"
	sectionCompleted = "Completed"
)

var sectionTitles = []string{sectionPending, sectionCompleted}

type rowKind int

const (
	rowHeader rowKind = iota
	rowTask
)

type row struct {
	kind    rowKind
	section string
	task    todo.Task
}

// rows flattens the two sections into the lines the cursor moves over.
// Collapsed sections contribute only their header.
func (m Model) rows() []row {
	var rows []row
	for _, title := range sectionTitles {
		rows = append(rows, row{kind: rowHeader, section: title})
		if m.collapsed[title] {
			continue
		}
		for _, t := range m.tasks {
			if sectionOf(t) == title {
				rows = append(rows, row{kind: rowTask, section: title, task: t})
			}
		}
	}
	return rows
}

func sectionOf(t todo.Task) string {
	if t.Completed {
		return sectionCompleted
	}
	return sectionPending
}

func (m Model) countIn(section string) int {
	n := 0
	for _, t := range m.tasks {
		if sectionOf(t) == section {
			n++
		}
	}
	return n
}

func (m Model) firstTaskRow() int {
	for i, r := range m.rows() {
		if r.kind == rowTask {
			return i
		}
	}
	return 0
}

func (m Model) currentRow() (row, bool) {
	rows := m.rows()
	if len(rows) == 0 {
		return row{}, false
	}
	return rows[clampCursor(m.cursor, len(rows))], true
}

func (m Model) currentTask() (todo.Task, bool) {
	r, ok := m.currentRow()
	if !ok || r.kind != rowTask {
		return todo.Task{}, false
	}
	return r.task, true
}

// focusTask moves the cursor onto id, wherever it now lives.
func (m Model) focusTask(id int) Model {
	for i, r := range m.rows() {
		if r.kind == rowTask && r.task.ID == id {
			m.cursor = i
			return m
		}
	}
	m.cursor = clampCursor(m.cursor, len(m.rows()))
	return m
}

func (m Model) toggleSection(section string) Model {
	m.collapsed[section] = !m.collapsed[section]
	for i, r := range m.rows() {
		if r.kind == rowHeader && r.section == section {
			m.cursor = i
			break
		}
	}
	return m
}

func (m Model) toggleTask(id int) Model {
	if _, ok := m.store.ToggleComplete(m.ctx, id); !ok {
		return m
	}
	m = m.refreshed()
	return m.focusTask(id)
}

func (m Model) updateList(key string) (Model, tea.Cmd) {
	rows := m.rows()
	switch key {
	case m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(rows))
	case m.cfg.Keys.Up, "up":
		m.cursor = clampCursor(m.cursor-1, len(rows))
	case m.cfg.Keys.Add:
		m.overlay = overlayAdd
		m.add = m.add.open()
		m.status = "New todo: type a title, tab for date and time"
		return m, textinput.Blink
	case m.cfg.Keys.Theme:
		m = m.toggleTheme()
	case m.cfg.Keys.Collapse:
		if r, ok := m.currentRow(); ok {
			m = m.toggleSection(r.section)
		}
	case m.cfg.Keys.Open:
		r, ok := m.currentRow()
		if !ok {
			return m, nil
		}
		if r.kind == rowHeader {
			m = m.toggleSection(r.section)
			return m, nil
		}
		return m.openEdit(r.task.ID)
	case m.cfg.Keys.Toggle:
		if t, ok := m.currentTask(); ok {
			m = m.toggleTask(t.ID)
		}
	case m.cfg.Keys.Options:
		if t, ok := m.currentTask(); ok {
			m.options = optionsMenu{task: t}
			m.overlay = overlayOptions
		}
	case m.cfg.Keys.Delete:
		if t, ok := m.currentTask(); ok {
			m = m.askDelete(t)
		}
	}
	return m, nil
}

func (m Model) renderList() string {
	s := m.theme.Styles
	var b strings.Builder
	b.WriteString(s.Header.Render("Todo List"))
	b.WriteString(s.Meta.Render(fmt.Sprintf("  (%s)", m.theme.Mode)))
	b.WriteString("\n\n")

	if !m.loaded {
		b.WriteString(s.Meta.Render("Loading..."))
		return b.String()
	}

	active := m.overlay == overlayNone
	for i, r := range m.rows() {
		selected := active && i == m.cursor
		if r.kind == rowHeader {
			b.WriteString(m.renderSectionHeader(r.section, selected))
		} else {
			b.WriteString(m.renderTask(r.task, selected))
		}
		b.WriteString("\n")
	}
	if len(m.tasks) == 0 {
		b.WriteString(s.Meta.Render(fmt.Sprintf("No todos yet. Press '%s' to add one.", m.cfg.Keys.Add)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderSectionHeader(section string, selected bool) string {
	marker := "▾"
	if m.collapsed[section] {
		marker = "▸"
	}
	cursor := "  "
	if selected {
		cursor = m.theme.Styles.Selected.Render("> ")
	}
	label := fmt.Sprintf("%s %s (%d)", marker, section, m.countIn(section))
	return cursor + m.theme.Styles.SectionHeader.Render(label)
}

func (m Model) renderTask(t todo.Task, selected bool) string {
	s := m.theme.Styles
	cursor := "  "
	if selected {
		cursor = s.Selected.Render("> ")
	}
	checkbox := "[ ]"
	title := s.Title.Render(t.Title)
	line := s.Item
	if t.Completed {
		checkbox = "[x]"
		title = s.TitleDone.Render(t.Title)
		line = s.ItemCompleted
	}

	body := fmt.Sprintf("%s %s", checkbox, title)
	if t.Scheduled() {
		datePassed, timePassed := todo.HasPassed(t.Date, t.Time, m.now())
		calendar, clock := scheduleColors(m.theme.Palette, t.Completed, datePassed, timePassed)
		body += "  " + lipgloss.NewStyle().Foreground(calendar).Render("◷ "+t.Date)
		body += "  " + lipgloss.NewStyle().Foreground(clock).Render("⏱ "+t.Time)
	}
	return cursor + line.Render(body)
}

// scheduleColors picks the date and time colours for a task: muted once it
// is completed, red when overdue, primary otherwise. An overdue date also
// marks the time as overdue.
func scheduleColors(p theme.Palette, completed, datePassed, timePassed bool) (calendar, clock lipgloss.Color) {
	if completed {
		return p.Icon, p.Icon
	}
	calendar, clock = p.Primary, p.Primary
	if datePassed {
		calendar = p.Red
	}
	if timePassed || datePassed {
		clock = p.Red
	}
	return calendar, clock
}
