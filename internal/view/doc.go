// Package view builds the runtime document a display client renders: one
// screen, its widgets, and the value each widget binding presents right now.
//
// RouteResolver turns an arbitrary route or name token into an enabled
// screen. It tries the screens table first and falls back to the system
// object tree. Composer loads the widget/binding/datapoint join for a screen
// and resolves values through the value package.
//
// Both are read-only and hold no state between calls.
package view
