// Package project persists the visualization project: screens, the widgets
// placed on them, field-bus interface/device/datapoint definitions, and the
// bindings linking widgets to datapoints.
//
// The same repository serves two audiences. Authoring clients use the plain
// CRUD operations. The runtime composer uses the read-only queries in
// runtime_repository.go, which only ever see enabled screens.
//
// Field-bus definitions are data only. Nothing in this package talks to a
// device; values are simulated by the value package.
package project
