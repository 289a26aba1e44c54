// Package value resolves the value a binding currently presents.
//
// Two sources exist and are never mixed for one binding:
//
//   - Simulate derives a datapoint value from wall-clock time. No field-bus
//     traffic happens; the result is a deterministic function of the
//     descriptor and the instant passed in.
//   - Static reads the literal declared on a value object in the system tree.
//
// Neither function reads the clock. Callers inject the instant so identical
// inputs always give identical outputs.
package value
