package objecttree

import (
	"encoding/json"
	"strings"

	"github.com/dxascend/ascend-core/internal/document"
)

// VirtualIDOffset is added to a screen id to form its virtual node id.
const VirtualIDOffset = 100000

// GraphicType is the object type that owns a screen.
const GraphicType = "Graphic"

// SystemObject is a node of the project tree.
type SystemObject struct {
	ID          int64             `json:"id"`
	ParentID    *int64            `json:"parent_id"`
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Description *string           `json:"description"`
	Properties  document.Document `json:"properties"`

	// Virtual marks synthesized screen nodes. They are never persisted.
	Virtual bool `json:"virtual,omitempty"`
}

// IsValueObject reports whether the object holds a literal value.
func (o SystemObject) IsValueObject() bool {
	return strings.Contains(strings.ToLower(o.Type), "value")
}

// IsGraphic reports whether the object is a Graphic.
func (o SystemObject) IsGraphic() bool {
	return strings.EqualFold(o.Type, GraphicType)
}

// LinkedScreenID returns the screen the object declares under
// properties.screenId or properties.screen_id.
func (o SystemObject) LinkedScreenID() (int64, bool) {
	return o.Properties.Int("screenId", "screen_id")
}

// CreateInput carries the fields of a new object.
type CreateInput struct {
	ParentID    *int64            `json:"parent_id"`
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Description *string           `json:"description"`
	Properties  document.Document `json:"properties"`
}

// UpdateInput carries a partial update. Nil or unset fields keep their
// stored value. ParentID and Description distinguish an absent key from
// an explicit null, which clears the column.
type UpdateInput struct {
	ParentID    Field[int64]      `json:"parent_id"`
	Name        *string           `json:"name"`
	Type        *string           `json:"type"`
	Description Field[string]     `json:"description"`
	Properties  document.Document `json:"properties"`
}

// Field is an update value that remembers whether the key was present.
// A present null has Set true and a nil Value.
type Field[T any] struct {
	Set   bool
	Value *T
}

// SetTo returns a present field holding v.
func SetTo[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: &v}
}

// Null returns a present field that clears the column.
func Null[T any]() Field[T] {
	return Field[T]{Set: true}
}

// UnmarshalJSON marks the field present. encoding/json calls it for null
// too, which is what separates null from an absent key.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Value = nil
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.Value = &v
	return nil
}

// arg returns the value as a SQL argument, nil meaning NULL.
func (f Field[T]) arg() any {
	if f.Value == nil {
		return nil
	}
	return *f.Value
}
