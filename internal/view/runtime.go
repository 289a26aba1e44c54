package view

import (
	"time"

	"github.com/dxascend/ascend-core/internal/document"
)

// Binding sources reported in the runtime document.
const (
	SourceBinding     = "binding"
	SourceValueObject = "value_object"
)

// Runtime is the document a display client renders for one screen.
type Runtime struct {
	Screen      ScreenSummary   `json:"screen"`
	Widgets     []RuntimeWidget `json:"widgets"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// ScreenSummary identifies a screen in runtime listings and documents.
type ScreenSummary struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Route       string  `json:"route"`
	Description *string `json:"description"`
}

// RuntimeWidget is a widget with its resolved bindings.
type RuntimeWidget struct {
	ID       int64             `json:"id"`
	Name     string            `json:"name"`
	Type     string            `json:"type"`
	X        float64           `json:"x"`
	Y        float64           `json:"y"`
	Width    float64           `json:"width"`
	Height   float64           `json:"height"`
	Config   document.Document `json:"config"`
	Bindings []RuntimeBinding  `json:"bindings"`
}

// RuntimeBinding is one resolved value on a widget.
type RuntimeBinding struct {
	ID        int64            `json:"id"`
	Mode      string           `json:"mode"`
	Source    string           `json:"source"`
	Datapoint RuntimeDatapoint `json:"datapoint"`
	Value     any              `json:"value"`
}

// RuntimeDatapoint describes where a binding value comes from. Value
// object bindings leave the field-bus columns nil.
type RuntimeDatapoint struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Unit     *string  `json:"unit"`
	Scale    *float64 `json:"scale"`
	Offset   *float64 `json:"offset"`
	Datatype *string  `json:"datatype"`
	Function *string  `json:"function"`
	Address  *int64   `json:"address"`
}
