package document

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Document is a parsed structured document. A nil Document behaves as empty.
type Document map[string]any

// Parse decodes text into a Document, returning an empty Document for
// anything that is not a JSON object.
func Parse(text string) Document {
	if strings.TrimSpace(text) == "" {
		return Document{}
	}
	var doc Document
	if err := json.Unmarshal([]byte(text), &doc); err != nil || doc == nil {
		return Document{}
	}
	return doc
}

// ParseNullable is Parse for nullable columns.
func ParseNullable(text *string) Document {
	if text == nil {
		return Document{}
	}
	return Parse(*text)
}

// FromMap wraps a decoded JSON value. Non-object values yield an empty Document.
func FromMap(v any) Document {
	switch m := v.(type) {
	case Document:
		if m == nil {
			return Document{}
		}
		return m
	case map[string]any:
		return Document(m)
	default:
		return Document{}
	}
}

// String serializes the document for storage. A nil Document encodes as "{}".
func (d Document) String() string {
	if d == nil {
		return "{}"
	}
	b, err := json.Marshal(d)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// Get returns the value of the first key present, in argument order.
func (d Document) Get(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := d[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// Object returns the nested document under key, or an empty Document.
func (d Document) Object(key string) Document {
	return FromMap(d[key])
}

// Text returns the first non-empty string value among keys.
func (d Document) Text(keys ...string) string {
	for _, k := range keys {
		if s, ok := d[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Int returns the first key whose value coerces to an integral id.
func (d Document) Int(keys ...string) (int64, bool) {
	for _, k := range keys {
		if id, ok := Int(d[k]); ok {
			return id, true
		}
	}
	return 0, false
}

// With returns a shallow copy of d with extra merged over it.
func (d Document) With(extra Document) Document {
	out := make(Document, len(d)+len(extra))
	for k, v := range d {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// Number coerces a JSON number, or a string holding a finite number, to float64.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		return parseFinite(string(n))
	case string:
		return parseFinite(n)
	default:
		return 0, false
	}
}

// Int coerces v to an integral id. Fractional numbers are rejected.
func Int(v any) (int64, bool) {
	f, ok := Number(v)
	if !ok || f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

func parseFinite(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
