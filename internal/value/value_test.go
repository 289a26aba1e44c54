package value

import (
	"math"
	"testing"
	"time"

	"github.com/dxascend/ascend-core/internal/document"
)

func ptr(f float64) *float64 { return &f }

func TestSimulate_Deterministic(t *testing.T) {
	at := time.Unix(1_760_000_000, 123_456_789)
	descriptors := []Descriptor{
		{ID: 1, Function: "holding_register", Unit: "°C"},
		{ID: 2, Function: "coil"},
		{ID: 3, Function: "input_register", Unit: "%", Scale: ptr(0.1), Offset: ptr(2)},
	}

	for _, d := range descriptors {
		first := Simulate(d, at)
		second := Simulate(d, at)
		if first != second {
			t.Errorf("Simulate(%+v) not deterministic: %v vs %v", d, first, second)
		}
	}
}

func TestSimulate_CoilSquareWave(t *testing.T) {
	d := Descriptor{ID: 4, Function: "COIL"}
	start := time.Unix(1_700_000_000, 0)

	for step := 0; step < 6; step++ {
		at := start.Add(time.Duration(step) * 10 * time.Second)
		got, ok := Simulate(d, at).(bool)
		if !ok {
			t.Fatalf("Simulate() on coil returned %T, want bool", Simulate(d, at))
		}
		// t/10 + id is an integer at these instants, so even values are in
		// the first half of the cycle.
		want := (1_700_000_000/10+step+4)%2 == 0
		if got != want {
			t.Errorf("step %d: Simulate() = %v, want %v", step, got, want)
		}

		later := Simulate(d, at.Add(20*time.Second))
		if later != got {
			t.Errorf("step %d: value at t+20s = %v, want %v (20s period)", step, later, got)
		}
	}
}

func TestSimulate_DiscreteInputPhaseShift(t *testing.T) {
	at := time.Unix(1_700_000_000, 0)
	a := Simulate(Descriptor{ID: 1, Function: "discrete_input"}, at)
	b := Simulate(Descriptor{ID: 2, Function: "discrete_input"}, at)
	if a == b {
		t.Errorf("adjacent ids should be out of phase, both %v", a)
	}
}

func TestSimulate_Analog(t *testing.T) {
	at := time.Unix(1_700_000_123, 500_000_000)
	tsec := 1_700_000_123.5

	tests := []struct {
		name string
		d    Descriptor
		want float64
	}{
		{"celsius", Descriptor{ID: 1, Unit: "°C"}, 20 + 5*math.Sin(tsec/10+1)},
		{"spaced C", Descriptor{ID: 2, Unit: "deg C"}, 20 + 5*math.Sin(tsec/10+2)},
		{"percent", Descriptor{ID: 3, Unit: "%RH"}, 50 + 5*math.Sin(tsec/10+3)},
		{"other", Descriptor{ID: 4, Unit: "kW"}, 10 + 5*math.Sin(tsec/10+4)},
		{"scaled", Descriptor{ID: 5, Unit: "kW", Scale: ptr(2), Offset: ptr(-1)}, (10+5*math.Sin(tsec/10+5))*2 - 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Simulate(tt.d, at).(float64)
			if !ok {
				t.Fatalf("Simulate() returned %T, want float64", Simulate(tt.d, at))
			}
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Simulate() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSimulate_AnalogBounds(t *testing.T) {
	d := Descriptor{ID: 9, Function: "holding_register", Unit: "°C"}
	start := time.Unix(1_700_000_000, 0)
	for i := 0; i < 100; i++ {
		v := Simulate(d, start.Add(time.Duration(i)*time.Second)).(float64)
		if v < 15 || v > 25 {
			t.Fatalf("value %v outside [15, 25]", v)
		}
	}
}

func TestIsDiscrete(t *testing.T) {
	for fn, want := range map[string]bool{
		"coil":             true,
		"Discrete_Input":   true,
		"holding_register": false,
		"":                 false,
	} {
		if got := IsDiscrete(fn); got != want {
			t.Errorf("IsDiscrete(%q) = %v, want %v", fn, got, want)
		}
	}
}

func TestStatic(t *testing.T) {
	tests := []struct {
		name  string
		props string
		want  any
	}{
		{"number value", `{"value":21.5}`, 21.5},
		{"numeric string coerced", `{"value":"42"}`, 42.0},
		{"non numeric string kept", `{"value":"on"}`, "on"},
		{"empty string kept", `{"value":""}`, ""},
		{"bool value", `{"value":true}`, true},
		{"default used", `{"default":"7.5"}`, 7.5},
		{"null value falls back to default", `{"value":null,"default":3}`, 3.0},
		{"value beats default", `{"value":1,"default":2}`, 1.0},
		{"nothing declared", `{"unit":"kW"}`, nil},
		{"malformed properties", `not json`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Static(document.Parse(tt.props))
			if got != tt.want {
				t.Errorf("Static(%s) = %#v, want %#v", tt.props, got, tt.want)
			}
		})
	}
}
