package todo

import (
	"context"
	"encoding/json"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Slot is the persisted key-value storage the Store mirrors into.
type Slot interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Notifier shows a short transient message to the user.
type Notifier interface {
	Notify(msg string)
}

type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

const (
	MsgMarkedDone    = "Todo marked as done!"
	MsgMarkedNotDone = "Todo marked as not done!"
	MsgUpdated       = "Todo updated successfully!"
)

type Options struct {
	Key string
	// PersistEmpty writes an empty collection to the slot instead of
	// leaving the previous contents in place, and keeps a stored empty
	// list empty on the next Load instead of seeding it.
	PersistEmpty bool
	Sort         SortPolicy
	Seed         []Task
	Logger       *log.Logger
	Notifier     Notifier
	Now          func() time.Time
}

// Store is the single owner of the task collection. Every mutation is
// mirrored to the slot; read and write failures are logged and otherwise
// leave the in-memory collection untouched.
type Store struct {
	mu    sync.Mutex
	slot  Slot
	opts  Options
	items []Task
	// highWater is the largest id ever handed out. It is kept in its own
	// slot so a removed id is never reissued, across processes too.
	highWater int
}

func NewStore(slot Slot, opts Options) *Store {
	if opts.Key == "" {
		opts.Key = "TodoApp"
	}
	if opts.Sort == "" {
		opts.Sort = SortDateTime
	}
	if opts.Seed == nil {
		opts.Seed = Seed()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Notifier == nil {
		opts.Notifier = NotifierFunc(func(string) {})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{slot: slot, opts: opts}
}

func (s *Store) Key() string { return s.opts.Key }

// NextIDKey is the slot holding the largest id issued so far.
func (s *Store) NextIDKey() string { return s.opts.Key + "NextID" }

func (s *Store) Policy() SortPolicy { return s.opts.Sort }

// Load hydrates the collection from the slot, seeding it when nothing is
// stored. A slot that cannot be read or parsed yields an empty collection
// and is left as is.
func (s *Store) Load(ctx context.Context) []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadHighWaterLocked(ctx)
	items, present, err := s.read(ctx)
	if err != nil {
		s.opts.Logger.Error("Error loading todos", "key", s.opts.Key, "err", err)
		s.items = nil
		return nil
	}
	if len(items) == 0 && !(present && s.opts.PersistEmpty) {
		s.opts.Logger.Debug("seeding todos", "count", len(s.opts.Seed))
		items = clone(s.opts.Seed)
	}
	s.sortLocked(items)
	s.items = items
	if m := maxID(items); m > s.highWater {
		s.highWater = m
	}
	s.persistLocked(ctx)
	return clone(s.items)
}

// Save writes the collection to the slot. An empty collection is skipped
// unless PersistEmpty is set.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

func (s *Store) Items() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.items)
}

func (s *Store) Get(id int) (Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(id); i >= 0 {
		return s.items[i], true
	}
	return Task{}, false
}

// Create appends a new pending task. date and clock are the stored forms
// ("2006-01-02", "03:04 PM") and must be given together or not at all.
func (s *Store) Create(ctx context.Context, title, date, clock string) (Task, error) {
	t := Task{Title: strings.TrimSpace(title), Date: date, Time: clock}
	if err := validate(t); err != nil {
		return Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextIDLocked()
	s.highWater = t.ID
	items := append(clone(s.items), t)
	s.sortLocked(items)
	s.items = items
	s.persistLocked(ctx)
	s.saveHighWaterLocked(ctx)
	s.opts.Logger.Debug("created todo", "id", t.ID)
	return t, nil
}

// ToggleComplete flips the completed flag of id. It reports false when no
// task has that id.
func (s *Store) ToggleComplete(ctx context.Context, id int) (Task, bool) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return Task{}, false
	}
	items := clone(s.items)
	items[i].Completed = !items[i].Completed
	t := items[i]
	s.sortLocked(items)
	s.items = items
	s.persistLocked(ctx)
	s.mu.Unlock()

	if t.Completed {
		s.opts.Notifier.Notify(MsgMarkedDone)
	} else {
		s.opts.Notifier.Notify(MsgMarkedNotDone)
	}
	return t, true
}

func (s *Store) Remove(ctx context.Context, id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return false
	}
	items := make([]Task, 0, len(s.items)-1)
	items = append(items, s.items[:i]...)
	items = append(items, s.items[i+1:]...)
	s.sortLocked(items)
	s.items = items
	s.persistLocked(ctx)
	s.opts.Logger.Debug("removed todo", "id", id)
	return true
}

// Update replaces the task with the same id in place and writes the
// collection back. Positions are kept; the list re-sorts when it reloads.
// A failed write is returned after the in-memory collection has changed.
func (s *Store) Update(ctx context.Context, t Task) error {
	t.Title = strings.TrimSpace(t.Title)
	if err := validate(t); err != nil {
		return err
	}

	s.mu.Lock()
	i := s.indexLocked(t.ID)
	if i < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	items := clone(s.items)
	items[i] = t
	s.items = items
	err := s.saveLocked(ctx)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	s.opts.Notifier.Notify(MsgUpdated)
	return nil
}

// Reset removes the collection and id slots entirely and empties the
// collection.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range []string{s.opts.Key, s.NextIDKey()} {
		if err := s.slot.Remove(ctx, key); err != nil {
			s.opts.Logger.Error("Error clearing todos", "key", key, "err", err)
			return err
		}
	}
	s.items = nil
	s.highWater = 0
	s.opts.Logger.Info("storage cleared", "key", s.opts.Key)
	return nil
}

func (s *Store) read(ctx context.Context) ([]Task, bool, error) {
	raw, ok, err := s.slot.Get(ctx, s.opts.Key)
	if err != nil || !ok || strings.TrimSpace(raw) == "" {
		return nil, ok, err
	}
	var items []Task
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, true, err
	}
	return items, true, nil
}

func (s *Store) loadHighWaterLocked(ctx context.Context) {
	raw, ok, err := s.slot.Get(ctx, s.NextIDKey())
	if err != nil {
		s.opts.Logger.Error("Error loading next id", "key", s.NextIDKey(), "err", err)
		return
	}
	if !ok {
		return
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		s.opts.Logger.Warn("ignoring unreadable next id", "key", s.NextIDKey(), "value", raw)
		return
	}
	if n > s.highWater {
		s.highWater = n
	}
}

func (s *Store) saveHighWaterLocked(ctx context.Context) {
	if err := s.slot.Set(ctx, s.NextIDKey(), strconv.Itoa(s.highWater)); err != nil {
		s.opts.Logger.Error("Error saving next id", "key", s.NextIDKey(), "err", err)
	}
}

func (s *Store) persistLocked(ctx context.Context) {
	_ = s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) error {
	if len(s.items) == 0 && !s.opts.PersistEmpty {
		return nil
	}
	items := s.items
	if items == nil {
		items = []Task{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		s.opts.Logger.Error("Error saving todos", "key", s.opts.Key, "err", err)
		return err
	}
	if err := s.slot.Set(ctx, s.opts.Key, string(data)); err != nil {
		s.opts.Logger.Error("Error saving todos", "key", s.opts.Key, "err", err)
		return err
	}
	return nil
}

func (s *Store) sortLocked(items []Task) {
	Sort(items, s.opts.Sort, s.opts.Now().Location())
}

func (s *Store) indexLocked(id int) int {
	for i, t := range s.items {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) nextIDLocked() int {
	m := maxID(s.items)
	if s.highWater > m {
		m = s.highWater
	}
	return m + 1
}
