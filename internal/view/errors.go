package view

import (
	"errors"

	"github.com/dxascend/ascend-core/internal/project"
)

var (
	// ErrMissingRoute is returned when the route token is empty or blank.
	ErrMissingRoute = errors.New("route parameter is required")

	// ErrScreenNotFound is returned when no enabled screen matches.
	ErrScreenNotFound = project.ErrScreenNotFound
)

// Logger defines the logging interface used by the Composer.
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
