package services

import (
	"context"
	"time"
)

type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelSuccess:
		return "success"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// Notification is a transient, user-facing status message.
type Notification struct {
	Level   Level
	Message string
	At      time.Time
}

// Notifier shows notifications to the user. Implementations must not block.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

type NotifierFunc func(ctx context.Context, n Notification)

func (f NotifierFunc) Notify(ctx context.Context, n Notification) { f(ctx, n) }

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notification) {}
