package ui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todolist/internal/config"
	"todolist/internal/theme"
	"todolist/internal/todo"
)

const (
	defaultFeedbackDelay = 300 * time.Millisecond
	noticeDuration       = 2500 * time.Millisecond
)

type screen int

const (
	screenList screen = iota
	screenEdit
)

type overlay int

const (
	overlayNone overlay = iota
	overlayAdd
	overlayOptions
	overlayConfirmDelete
)

type Deps struct {
	Store     *todo.Store
	Config    config.Config
	Theme     theme.Theme
	ThemeSlot theme.Slot
	ThemeKey  string
	Logger    *log.Logger
	// Notices must be the Notifier the Store was built with.
	Notices *Notices
	Now     func() time.Time
	// FeedbackDelay is how long the options menu stays open after a toggle
	// and how long a confirmed delete waits for the dialog to close.
	FeedbackDelay time.Duration
	// NoticeDuration is how long a store notification stays in the status
	// line.
	NoticeDuration time.Duration
}

type Model struct {
	ctx       context.Context
	store     *todo.Store
	cfg       config.Config
	theme     theme.Theme
	themeSlot theme.Slot
	themeKey  string
	logger    *log.Logger
	notices   *Notices
	now       func() time.Time
	delay     time.Duration
	noticeFor time.Duration

	screen    screen
	overlay   overlay
	tasks     []todo.Task
	loaded    bool
	loadSeq   int
	collapsed map[string]bool
	cursor    int

	add     addDialog
	options optionsMenu
	confirm confirmDialog
	edit    editScreen

	status    string
	statusSeq int
	width     int
}

// tasksLoadedMsg carries the loadSeq current when the load started. A
// result older than the latest load or mutation is dropped.
type tasksLoadedMsg struct {
	seq   int
	tasks []todo.Task
}

type taskLookupMsg struct {
	id    int
	task  todo.Task
	found bool
}

type closeOptionsMsg struct {
	id int
}

type deleteTaskMsg struct {
	id int
}

type clearStatusMsg struct {
	seq int
}

func New(d Deps) Model {
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	if d.Notices == nil {
		d.Notices = NewNotices()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.FeedbackDelay == 0 {
		d.FeedbackDelay = defaultFeedbackDelay
	}
	if d.NoticeDuration == 0 {
		d.NoticeDuration = noticeDuration
	}
	if d.Theme.Mode == "" {
		d.Theme = theme.New(theme.ParseMode(d.Config.Theme))
	}
	return Model{
		ctx:       context.Background(),
		store:     d.Store,
		cfg:       d.Config,
		theme:     d.Theme,
		themeSlot: d.ThemeSlot,
		themeKey:  d.ThemeKey,
		logger:    d.Logger,
		notices:   d.Notices,
		now:       d.Now,
		delay:     d.FeedbackDelay,
		noticeFor: d.NoticeDuration,
		screen:    screenList,
		collapsed: map[string]bool{},
		add:       newAddDialog(),
		status:    fmt.Sprintf("Press '%s' to add, '%s' for options.", d.Config.Keys.Add, d.Config.Keys.Options),
	}
}

func Run(d Deps) error {
	program := tea.NewProgram(New(d), tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd(m.loadSeq)
}

// loadTasks re-reads the persisted collection. The list runs it on start
// and whenever it becomes visible again.
func (m Model) loadTasks() (Model, tea.Cmd) {
	m.loadSeq++
	return m, m.loadCmd(m.loadSeq)
}

func (m Model) loadCmd(seq int) tea.Cmd {
	store, ctx := m.store, m.ctx
	return func() tea.Msg {
		return tasksLoadedMsg{seq: seq, tasks: store.Load(ctx)}
	}
}

// refreshed takes the list from the store after a local mutation and
// invalidates any load still in flight.
func (m Model) refreshed() Model {
	m.tasks = m.store.Items()
	m.loadSeq++
	return m
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m, cmd = m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.add = m.add.setWidth(msg.Width - 10)
		m.edit = m.edit.setWidth(msg.Width - 10)
	case tasksLoadedMsg:
		if msg.seq != m.loadSeq {
			m.logger.Debug("dropping stale load", "seq", msg.seq, "current", m.loadSeq)
			break
		}
		first := !m.loaded
		m.loaded = true
		m.tasks = msg.tasks
		if first {
			m.cursor = m.firstTaskRow()
		} else {
			m.cursor = clampCursor(m.cursor, len(m.rows()))
		}
	case taskLookupMsg:
		if m.screen == screenEdit && m.edit.id == msg.id {
			m.edit = m.edit.loaded(msg.task, msg.found)
			if msg.found {
				cmd = textinput.Blink
			}
		}
	case closeOptionsMsg:
		if m.overlay == overlayOptions && m.options.task.ID == msg.id {
			m.overlay = overlayNone
		}
	case deleteTaskMsg:
		if m.store.Remove(m.ctx, msg.id) {
			m = m.refreshed()
			m.cursor = clampCursor(m.cursor, len(m.rows()))
			m.status = "Deleted todo"
		}
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
	}
	return m.flushNotices(cmd)
}

// flushNotices shows the newest store notification and schedules its
// removal.
func (m Model) flushNotices(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	msgs := m.notices.drain()
	if len(msgs) == 0 {
		return m, cmd
	}
	m.status = msgs[len(msgs)-1]
	m.statusSeq++
	seq := m.statusSeq
	clearCmd := tea.Tick(m.noticeFor, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
	return m, tea.Batch(cmd, clearCmd)
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.screen == screenEdit {
		return m.updateEdit(msg)
	}
	switch m.overlay {
	case overlayAdd:
		return m.updateAdd(msg)
	case overlayOptions:
		return m.updateOptions(msg.String())
	case overlayConfirmDelete:
		return m.updateConfirmDelete(msg.String())
	}
	return m.updateList(msg.String())
}

func (m Model) toggleTheme() Model {
	m.theme = m.theme.Toggled()
	if m.themeSlot != nil && m.themeKey != "" {
		if err := theme.Persist(m.ctx, m.themeSlot, m.themeKey, m.theme); err != nil {
			m.logger.Error("Error saving theme", "err", err)
		}
	}
	m.status = fmt.Sprintf("Theme: %s", m.theme.Mode)
	return m
}

func (m Model) View() string {
	var b strings.Builder
	s := m.theme.Styles

	if m.screen == screenEdit {
		b.WriteString(m.renderEdit())
	} else {
		b.WriteString(m.renderList())
		switch m.overlay {
		case overlayAdd:
			b.WriteString("\n")
			b.WriteString(m.renderAdd())
		case overlayOptions:
			b.WriteString("\n")
			b.WriteString(m.renderOptions())
		case overlayConfirmDelete:
			b.WriteString("\n")
			b.WriteString(m.renderConfirmDelete())
		}
	}

	b.WriteString("\n\n")
	b.WriteString(s.Status.Render(m.status))
	b.WriteString("\n")
	b.WriteString(s.Help.Render(m.helpLine()))
	return s.App.Render(b.String())
}

func (m Model) helpLine() string {
	k := m.cfg.Keys
	if m.screen == screenEdit {
		return fmt.Sprintf("%s/%s field • %s next/save • ctrl+s save • %s back", k.Next, k.Prev, k.Confirm, k.Cancel)
	}
	switch m.overlay {
	case overlayAdd:
		return fmt.Sprintf("%s/%s field • %s add • %s cancel", k.Next, k.Prev, k.Confirm, k.Cancel)
	case overlayOptions:
		return fmt.Sprintf("%s/%s move • %s select • %s close", k.Up, k.Down, k.Confirm, k.Cancel)
	case overlayConfirmDelete:
		return fmt.Sprintf("←/→ choose • %s confirm • y delete • n/%s cancel", k.Confirm, k.Cancel)
	}
	return renderHelp(k)
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s open • %s toggle • %s options • %s delete • %s collapse • %s theme • %s quit",
		k.Up, k.Down, k.Add, k.Open, keyLabel(k.Toggle), k.Options, k.Delete, k.Collapse, k.Theme, k.Quit)
}

func keyLabel(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
