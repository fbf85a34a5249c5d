package services

import "sync"

type ChangeKind string

const (
	ChangeCreated    ChangeKind = "created"
	ChangeUpdated    ChangeKind = "updated"
	ChangeDeleted    ChangeKind = "deleted"
	ChangeReconciled ChangeKind = "reconciled"
)

// Change describes a committed modification of the local store. ClientID
// is empty for ChangeReconciled, which may touch any record.
type Change struct {
	Kind     ChangeKind
	ClientID string
}

// Notifier fans out store changes to subscribers such as a view cache.
// Subscribers are called synchronously after the change is committed and
// must not call back into the mutation services.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(Change)
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(Change))}
}

// Subscribe registers fn and returns a function that removes it.
func (n *Notifier) Subscribe(fn func(Change)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.nextID
	n.nextID++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *Notifier) publish(c Change) {
	if n == nil {
		return
	}
	n.mu.Lock()
	subs := make([]func(Change), 0, len(n.subs))
	for _, fn := range n.subs {
		subs = append(subs, fn)
	}
	n.mu.Unlock()

	for _, fn := range subs {
		fn(c)
	}
}
