package ui

import "sync"

// Notices collects messages from the store so the UI can show them as a
// transient status line. It satisfies todo.Notifier.
type Notices struct {
	mu      sync.Mutex
	pending []string
}

func NewNotices() *Notices {
	return &Notices{}
}

func (n *Notices) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, msg)
}

func (n *Notices) drain() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}
