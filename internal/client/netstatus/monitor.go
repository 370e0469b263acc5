// Package netstatus tracks whether the backend is reachable.
//
// Monitor holds the current online/offline flag and fans out transition
// events to subscribers. It never polls: the flag changes only through
// Update, which is driven by a connectivity source such as Watcher.
package netstatus

import (
	"sync"
	"sync/atomic"
	"time"
)

type EventKind int

const (
	WentOffline EventKind = iota
	WentOnline
)

func (k EventKind) String() string {
	if k == WentOnline {
		return "online"
	}
	return "offline"
}

type Event struct {
	Kind EventKind
	At   time.Time
}

type Monitor struct {
	online atomic.Bool

	mu        sync.Mutex
	listeners map[uint64]func(Event)
	nextID    uint64

	now func() time.Time
}

func NewMonitor(initial bool) *Monitor {
	m := &Monitor{listeners: make(map[uint64]func(Event)), now: time.Now}
	m.online.Store(initial)
	return m
}

func (m *Monitor) IsOnline() bool {
	return m.online.Load()
}

// Subscribe registers fn for every event delivered through Update and
// returns a function that removes it.
func (m *Monitor) Subscribe(fn func(Event)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			m.mu.Unlock()
		})
	}
}

// Update records the platform's current connectivity and notifies every
// listener. Repeated events for the same state are forwarded as well;
// listeners debounce.
func (m *Monitor) Update(online bool) {
	m.online.Store(online)

	ev := Event{Kind: WentOffline, At: m.now()}
	if online {
		ev.Kind = WentOnline
	}

	m.mu.Lock()
	fns := make([]func(Event), 0, len(m.listeners))
	for _, fn := range m.listeners {
		fns = append(fns, fn)
	}
	m.mu.Unlock()

	for _, fn := range fns {
		fn(ev)
	}
}
