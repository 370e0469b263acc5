// Package trigger carries sync requests from any execution context (a timer,
// a reconnect listener, another process via a signal) to the single loop that
// runs sync passes.
package trigger

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"
)

type MessageType string

const MessageSyncRequested MessageType = "SYNC_REQUESTED"

type Message struct {
	Type   MessageType
	Source string
	At     time.Time
}

// Channel is a one-slot mailbox. Post never blocks: when a message is
// already waiting, the new one is dropped because the pending one will cause
// the same work.
type Channel struct {
	ch chan Message

	mu     sync.RWMutex
	closed bool

	now func() time.Time
}

func New() *Channel {
	return &Channel{ch: make(chan Message, 1), now: time.Now}
}

// Post enqueues msg and reports whether it was accepted. It returns false
// when a message is already pending or the channel is closed.
func (c *Channel) Post(msg Message) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.closed {
		return false
	}
	if msg.At.IsZero() {
		msg.At = c.now()
	}

	select {
	case c.ch <- msg:
		return true
	default:
		return false
	}
}

func (c *Channel) RequestSync(source string) bool {
	return c.Post(Message{Type: MessageSyncRequested, Source: source})
}

func (c *Channel) Messages() <-chan Message {
	return c.ch
}

// Close stops accepting messages and closes the receive side. Safe to call
// more than once.
func (c *Channel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	close(c.ch)
}

// NotifyOnSignal requests a sync every time one of sigs arrives, until ctx is
// done. It lets a separate process (`kill -USR1 <pid>`) ask a running client
// to sync.
func NotifyOnSignal(ctx context.Context, c *Channel, sigs ...os.Signal) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, sigs...)

	go func() {
		defer signal.Stop(sigCh)
		for {
			select {
			case s := <-sigCh:
				c.RequestSync("signal:" + s.String())
			case <-ctx.Done():
				return
			}
		}
	}()
}
