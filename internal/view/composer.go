package view

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dxascend/ascend-core/internal/document"
	"github.com/dxascend/ascend-core/internal/objecttree"
	"github.com/dxascend/ascend-core/internal/project"
	"github.com/dxascend/ascend-core/internal/value"
)

// unitFields are the value object properties that may carry a unit.
var unitFields = []string{"units", "unit", "unitText", "unitsText"}

// Sample is one resolved binding value handed to a ValueRecorder.
type Sample struct {
	ScreenID  int64
	WidgetID  int64
	BindingID int64
	Source    string
	Name      string
	Value     any
	At        time.Time
}

// ValueRecorder receives every value a composition resolves.
// Errors are logged and never fail the composition.
type ValueRecorder interface {
	RecordValues(ctx context.Context, samples []Sample) error
}

// Composer assembles runtime documents.
type Composer struct {
	screens  project.RuntimeStore
	objects  ObjectSource
	recorder ValueRecorder
	logger   Logger
	now      func() time.Time
}

// NewComposer creates a composer over the screen and object stores.
func NewComposer(screens project.RuntimeStore, objects ObjectSource) *Composer {
	return &Composer{
		screens: screens,
		objects: objects,
		logger:  noopLogger{},
		now:     time.Now,
	}
}

// SetLogger sets the logger for the composer.
func (c *Composer) SetLogger(logger Logger) {
	c.logger = logger
}

// SetRecorder enables value recording. Nil disables it.
func (c *Composer) SetRecorder(recorder ValueRecorder) {
	c.recorder = recorder
}

// ListScreens returns the enabled screens a client may open.
func (c *Composer) ListScreens(ctx context.Context) ([]ScreenSummary, error) {
	screens, err := c.screens.ListEnabledScreens(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ScreenSummary, 0, len(screens))
	for _, s := range screens {
		out = append(out, summarize(s))
	}
	return out, nil
}

// Compose builds the runtime document for an enabled screen.
//
// Widgets and bindings follow widget id then binding id. A widget with no
// dedicated binding may instead reference a value object from its config
// (binding.valueId or binding.targetId); value objects are loaded at most
// once per call, and only if some widget needs them.
func (c *Composer) Compose(ctx context.Context, screenID int64) (*Runtime, error) {
	screen, err := c.screens.GetEnabledScreen(ctx, screenID)
	if err != nil {
		return nil, err
	}
	rows, err := c.screens.RuntimeRows(ctx, screenID)
	if err != nil {
		return nil, err
	}

	at := c.now()
	widgets := groupWidgets(rows, at)

	var valueObjects map[int64]objecttree.SystemObject
	for i := range widgets {
		w := &widgets[i]
		if len(w.Bindings) > 0 {
			continue
		}
		desc, ok := w.Config.Binding()
		if !ok {
			continue
		}
		if valueObjects == nil {
			if valueObjects, err = c.loadValueObjects(ctx); err != nil {
				return nil, err
			}
		}
		if obj, ok := valueObjects[desc.ValueID]; ok {
			w.Bindings = append(w.Bindings, valueObjectBinding(obj, desc))
		}
	}

	rt := &Runtime{
		Screen:      summarize(*screen),
		Widgets:     widgets,
		GeneratedAt: at.UTC(),
	}
	c.record(ctx, rt)
	return rt, nil
}

// groupWidgets folds join rows into widgets in first-seen order and
// resolves every dedicated binding at instant at.
func groupWidgets(rows []project.RuntimeRow, at time.Time) []RuntimeWidget {
	widgets := []RuntimeWidget{}
	index := make(map[int64]int, len(rows))

	for _, row := range rows {
		i, seen := index[row.WidgetID]
		if !seen {
			i = len(widgets)
			index[row.WidgetID] = i
			widgets = append(widgets, RuntimeWidget{
				ID:       row.WidgetID,
				Name:     row.WidgetName,
				Type:     row.WidgetType,
				X:        row.X,
				Y:        row.Y,
				Width:    row.Width,
				Height:   row.Height,
				Config:   document.ParseNullable(row.ConfigJSON),
				Bindings: []RuntimeBinding{},
			})
		}

		if row.BindingID == nil || row.DatapointID == nil {
			continue
		}
		dp := RuntimeDatapoint{
			ID:       *row.DatapointID,
			Name:     deref(row.DatapointName),
			Unit:     row.DatapointUnit,
			Scale:    row.DatapointScale,
			Offset:   row.DatapointOffset,
			Datatype: row.DatapointDatatype,
			Function: row.DatapointFunction,
			Address:  row.DatapointAddress,
		}
		mode := deref(row.BindingMode)
		if mode == "" {
			mode = project.DefaultBindingMode
		}
		widgets[i].Bindings = append(widgets[i].Bindings, RuntimeBinding{
			ID:        *row.BindingID,
			Mode:      mode,
			Source:    SourceBinding,
			Datapoint: dp,
			Value: value.Simulate(value.Descriptor{
				ID:       dp.ID,
				Function: deref(dp.Function),
				Unit:     deref(dp.Unit),
				Scale:    dp.Scale,
				Offset:   dp.Offset,
			}, at),
		})
	}
	return widgets
}

func (c *Composer) loadValueObjects(ctx context.Context) (map[int64]objecttree.SystemObject, error) {
	objects, err := c.objects.ListByID(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading value objects: %w", err)
	}
	out := make(map[int64]objecttree.SystemObject)
	for _, o := range objects {
		if o.IsValueObject() {
			out[o.ID] = o
		}
	}
	return out, nil
}

// valueObjectBinding builds the single binding a widget gets from a value object.
func valueObjectBinding(obj objecttree.SystemObject, desc document.BindingDescriptor) RuntimeBinding {
	name := desc.ValueName
	if name == "" {
		name = obj.Name
	}
	if name == "" {
		name = "Value " + strconv.FormatInt(obj.ID, 10)
	}

	dp := RuntimeDatapoint{ID: obj.ID, Name: name}
	if unit := obj.Properties.Text(unitFields...); unit != "" {
		dp.Unit = &unit
	}
	if obj.Type != "" {
		typ := obj.Type
		dp.Datatype = &typ
	}

	return RuntimeBinding{
		ID:        obj.ID,
		Mode:      project.DefaultBindingMode,
		Source:    SourceValueObject,
		Datapoint: dp,
		Value:     value.Static(obj.Properties),
	}
}

func (c *Composer) record(ctx context.Context, rt *Runtime) {
	if c.recorder == nil {
		return
	}
	var samples []Sample
	for _, w := range rt.Widgets {
		for _, b := range w.Bindings {
			samples = append(samples, Sample{
				ScreenID:  rt.Screen.ID,
				WidgetID:  w.ID,
				BindingID: b.ID,
				Source:    b.Source,
				Name:      b.Datapoint.Name,
				Value:     b.Value,
				At:        rt.GeneratedAt,
			})
		}
	}
	if len(samples) == 0 {
		return
	}
	if err := c.recorder.RecordValues(ctx, samples); err != nil {
		c.logger.Warn("recording runtime values failed", "screen_id", rt.Screen.ID, "error", err)
	}
}

func summarize(s project.Screen) ScreenSummary {
	return ScreenSummary{ID: s.ID, Name: s.Name, Route: s.Route, Description: s.Description}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
