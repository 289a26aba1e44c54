package objecttree

import (
	"context"
	"time"
)

// Event types published after a successful change.
const (
	EventObjectCreated = "system_object_created"
	EventObjectUpdated = "system_object_updated"
	EventObjectDeleted = "system_object_deleted"
	EventScreenCreated = "screen_created"
)

// Event describes a committed change to the tree.
type Event struct {
	Type      string    `json:"type"`
	ObjectID  int64     `json:"object_id,omitempty"`
	ScreenID  int64     `json:"screen_id,omitempty"`
	Route     string    `json:"route,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// EventPublisher receives change events. Implementations must not block
// for long; publish errors are logged and otherwise ignored.
type EventPublisher interface {
	PublishEvent(ctx context.Context, event Event) error
}

// Logger defines the logging interface used by the Service.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
