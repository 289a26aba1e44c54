package value

import (
	"math"
	"strings"
	"time"

	"github.com/dxascend/ascend-core/internal/document"
)

// Simulation constants.
const (
	// discretePeriod is half the square-wave cycle of discrete points, in seconds.
	discretePeriod = 10.0

	// analogPeriod divides time inside the analog sine, in seconds.
	analogPeriod = 10.0

	// analogAmplitude is the swing around the analog base value.
	analogAmplitude = 5.0

	baseTemperature = 20.0
	basePercent     = 50.0
	baseDefault     = 10.0
)

// Descriptor is the part of a datapoint the simulation depends on.
// Nil Scale and Offset fall back to 1 and 0.
type Descriptor struct {
	ID       int64
	Function string
	Unit     string
	Scale    *float64
	Offset   *float64
}

// IsDiscrete reports whether function names a single-bit point.
func IsDiscrete(function string) bool {
	switch strings.ToLower(function) {
	case "coil", "discrete_input":
		return true
	default:
		return false
	}
}

// Simulate returns the value of d at instant at.
//
// Discrete points yield a bool square wave with a 20 s cycle, shifted by id.
// Analog points yield (base + 5·sin(t/10 + id))·scale + offset, where base
// follows the unit class: 20 for Celsius, 50 for percent, 10 otherwise.
func Simulate(d Descriptor, at time.Time) any {
	t := seconds(at)
	id := float64(d.ID)

	if IsDiscrete(d.Function) {
		return math.Mod(t/discretePeriod+id, 2) < 1
	}

	scale := 1.0
	if d.Scale != nil {
		scale = *d.Scale
	}
	offset := 0.0
	if d.Offset != nil {
		offset = *d.Offset
	}

	v := baseFor(d.Unit) + analogAmplitude*math.Sin(t/analogPeriod+id)
	return v*scale + offset
}

// baseFor picks the analog base value for a unit string.
func baseFor(unit string) float64 {
	switch {
	case strings.Contains(unit, "°C"), strings.Contains(unit, " C"):
		return baseTemperature
	case strings.Contains(unit, "%"):
		return basePercent
	default:
		return baseDefault
	}
}

// seconds converts at to fractional Unix seconds.
func seconds(at time.Time) float64 {
	return float64(at.UnixNano()) / float64(time.Second)
}

// Static returns the literal held by a value object's properties:
// "value", else "default", else nil. Strings holding a finite number are
// returned as float64.
func Static(props document.Document) any {
	v := props["value"]
	if v == nil {
		v = props["default"]
	}
	if s, isString := v.(string); isString {
		if n, numeric := document.Number(s); numeric {
			return n
		}
	}
	return v
}
