package project

import "errors"

var (
	// ErrScreenNotFound is returned when a screen ID does not exist
	// (or, for runtime queries, is disabled).
	ErrScreenNotFound = errors.New("screen not found")

	// ErrWidgetNotFound is returned when a widget ID does not exist.
	ErrWidgetNotFound = errors.New("widget not found")

	// ErrBindingNotFound is returned when a binding ID does not exist.
	ErrBindingNotFound = errors.New("binding not found")

	// ErrInterfaceNotFound is returned when a field-bus interface ID does not exist.
	ErrInterfaceNotFound = errors.New("interface not found")

	// ErrDeviceNotFound is returned when a field-bus device ID does not exist.
	ErrDeviceNotFound = errors.New("device not found")

	// ErrDatapointNotFound is returned when a datapoint ID does not exist.
	ErrDatapointNotFound = errors.New("datapoint not found")

	// ErrInvalidInput is returned when required fields are missing or malformed.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownReference is returned when a create or update names a
	// parent row (screen, widget, interface, device, datapoint) that does not exist.
	ErrUnknownReference = errors.New("referenced record does not exist")
)
