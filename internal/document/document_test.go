package document

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantLen int
	}{
		{"empty", "", 0},
		{"whitespace", "   ", 0},
		{"malformed", "{not json", 0},
		{"array", "[1,2,3]", 0},
		{"scalar", "42", 0},
		{"null", "null", 0},
		{"object", `{"a":1,"b":{"c":true}}`, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.input)
			if doc == nil {
				t.Fatal("Parse() returned nil")
			}
			if len(doc) != tt.wantLen {
				t.Errorf("len(Parse(%q)) = %d, want %d", tt.input, len(doc), tt.wantLen)
			}
		})
	}
}

func TestParseNullable(t *testing.T) {
	if doc := ParseNullable(nil); doc == nil || len(doc) != 0 {
		t.Errorf("ParseNullable(nil) = %v, want empty", doc)
	}
	text := `{"screenId":3}`
	if id, ok := ParseNullable(&text).Int("screenId"); !ok || id != 3 {
		t.Errorf("screenId = %d, %v; want 3, true", id, ok)
	}
}

func TestDocument_String(t *testing.T) {
	var nilDoc Document
	if got := nilDoc.String(); got != "{}" {
		t.Errorf("nil String() = %q, want {}", got)
	}

	doc := Document{"route": "/web/a", "screenId": float64(2)}
	var back map[string]any
	if err := json.Unmarshal([]byte(doc.String()), &back); err != nil {
		t.Fatalf("String() produced invalid JSON: %v", err)
	}
	if back["route"] != "/web/a" {
		t.Errorf("route = %v", back["route"])
	}
}

func TestDocument_Accessors(t *testing.T) {
	doc := Parse(`{"unit":"","unitText":"kW","nested":{"x":1},"list":[1],"id":"7"}`)

	if got := doc.Text("unit", "unitText"); got != "kW" {
		t.Errorf("Text() = %q, want kW (empty strings skipped)", got)
	}
	if got := doc.Text("missing"); got != "" {
		t.Errorf("Text(missing) = %q, want empty", got)
	}
	if got := doc.Object("nested"); len(got) != 1 {
		t.Errorf("Object(nested) = %v", got)
	}
	if got := doc.Object("list"); got == nil || len(got) != 0 {
		t.Errorf("Object(list) = %v, want empty document", got)
	}
	if id, ok := doc.Int("id"); !ok || id != 7 {
		t.Errorf("Int(id) = %d, %v", id, ok)
	}
	if v, ok := doc.Get("nope", "unitText"); !ok || v != "kW" {
		t.Errorf("Get() = %v, %v", v, ok)
	}
}

func TestDocument_With(t *testing.T) {
	base := Document{"a": 1, "screenId": 1}
	merged := base.With(Document{"screenId": 9, "route": "/x"})

	if merged["screenId"] != 9 || merged["route"] != "/x" || merged["a"] != 1 {
		t.Errorf("With() = %v", merged)
	}
	if base["screenId"] != 1 {
		t.Error("With() must not mutate the receiver")
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		want   float64
		wantOk bool
	}{
		{"float", 21.5, 21.5, true},
		{"int", 4, 4, true},
		{"numeric string", "42", 42, true},
		{"padded string", " 3.5 ", 3.5, true},
		{"negative string", "-1e2", -100, true},
		{"empty string", "", 0, false},
		{"text", "on", 0, false},
		{"infinite string", "Inf", 0, false},
		{"nan string", "NaN", 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Number(tt.input)
			if ok != tt.wantOk || (ok && got != tt.want) {
				t.Errorf("Number(%v) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestInt(t *testing.T) {
	if _, ok := Int(2.5); ok {
		t.Error("Int(2.5) should be rejected")
	}
	if id, ok := Int("12"); !ok || id != 12 {
		t.Errorf("Int(\"12\") = %d, %v", id, ok)
	}
}

func TestDocument_Binding(t *testing.T) {
	tests := []struct {
		name     string
		config   string
		wantOk   bool
		wantID   int64
		wantName string
	}{
		{"value id", `{"binding":{"valueId":5,"valueName":"Setpoint"}}`, true, 5, "Setpoint"},
		{"target id", `{"binding":{"targetId":"8"}}`, true, 8, ""},
		{"value id preferred", `{"binding":{"valueId":1,"targetId":2}}`, true, 1, ""},
		{"non numeric", `{"binding":{"valueId":"abc"}}`, false, 0, ""},
		{"binding not an object", `{"binding":"5"}`, false, 0, ""},
		{"no binding", `{"label":"x"}`, false, 0, ""},
		{"malformed config", `{{`, false, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.config).Binding()
			if ok != tt.wantOk {
				t.Fatalf("Binding() ok = %v, want %v", ok, tt.wantOk)
			}
			if got.ValueID != tt.wantID || got.ValueName != tt.wantName {
				t.Errorf("Binding() = %+v, want id=%d name=%q", got, tt.wantID, tt.wantName)
			}
		})
	}
}
