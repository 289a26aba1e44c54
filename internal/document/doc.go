// Package document handles the open-ended JSON documents stored as text in
// the project store: widget configuration and system object properties.
//
// Parsing is total. Absent, empty or malformed text, and JSON that is not an
// object, all yield an empty Document rather than an error, because
// configuration authored by external tooling is frequently imperfect.
//
// Fields are interpreted only where they are consumed. The one known shape
// is the binding descriptor a widget may embed under "binding":
//
//	{"binding": {"valueId": 12, "valueName": "Setpoint"}}
//
// Everything else stays in the residual map untouched.
package document
