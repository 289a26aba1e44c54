package view

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/dxascend/ascend-core/internal/infrastructure/database"
	"github.com/dxascend/ascend-core/internal/infrastructure/database/databasetest"
	"github.com/dxascend/ascend-core/internal/objecttree"
	"github.com/dxascend/ascend-core/internal/project"
	"github.com/dxascend/ascend-core/internal/value"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newComposer(t *testing.T) (*Composer, *database.DB) {
	t.Helper()
	db := databasetest.Open(t)
	c := NewComposer(project.NewSQLiteRepository(db.DB), objecttree.NewSQLiteRepository(db.DB))
	c.now = func() time.Time { return fixedNow }
	return c, db
}

// seedDatapoint inserts an interface, a device and one datapoint.
func seedDatapoint(t *testing.T, db *database.DB, function, unit string) int64 {
	t.Helper()
	iface := databasetest.Exec(t, db, `INSERT INTO modbus_interfaces (name, ip_address) VALUES ('bus', '10.0.0.2')`)
	dev := databasetest.Exec(t, db, `INSERT INTO modbus_devices (interface_id, name, slave_id) VALUES (?, 'plc', 1)`, iface)
	return databasetest.Exec(t, db,
		`INSERT INTO datapoints (device_id, name, function, address, datatype, unit) VALUES (?, 'temp', ?, 40001, 'float32', ?)`,
		dev, function, unit)
}

type recorderFunc func(ctx context.Context, samples []Sample) error

func (f recorderFunc) RecordValues(ctx context.Context, samples []Sample) error {
	return f(ctx, samples)
}

func TestCompose_DedicatedBindings(t *testing.T) {
	c, db := newComposer(t)
	ctx := context.Background()

	dp := seedDatapoint(t, db, "holding_register", "°C")
	screen := databasetest.Exec(t, db, `INSERT INTO screens (name, route, description) VALUES ('Sala', '/web/sala', 'main')`)
	w2 := databasetest.Exec(t, db, `INSERT INTO widgets (id, screen_id, type, name) VALUES (20, ?, 'label', 'B')`, screen)
	w1 := databasetest.Exec(t, db, `INSERT INTO widgets (id, screen_id, type, name, x, y, config_json) VALUES (10, ?, 'gauge', 'A', 5, 6, '{"binding":{"valueId":1}}')`, screen)
	b2 := databasetest.Exec(t, db, `INSERT INTO bindings (id, widget_id, datapoint_id, mode) VALUES (7, ?, ?, 'write')`, w1, dp)
	b1 := databasetest.Exec(t, db, `INSERT INTO bindings (id, widget_id, datapoint_id) VALUES (3, ?, ?)`, w1, dp)

	rt, err := c.Compose(ctx, screen)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}

	if rt.Screen.ID != screen || rt.Screen.Route != "/web/sala" || rt.Screen.Description == nil || *rt.Screen.Description != "main" {
		t.Errorf("Screen = %+v", rt.Screen)
	}
	if !rt.GeneratedAt.Equal(fixedNow) {
		t.Errorf("GeneratedAt = %v, want %v", rt.GeneratedAt, fixedNow)
	}
	if len(rt.Widgets) != 2 || rt.Widgets[0].ID != w1 || rt.Widgets[1].ID != w2 {
		t.Fatalf("Widgets = %+v, want ids [%d %d]", rt.Widgets, w1, w2)
	}

	a := rt.Widgets[0]
	if a.X != 5 || a.Y != 6 || a.Width != project.DefaultWidgetWidth || a.Height != project.DefaultWidgetHeight {
		t.Errorf("geometry = %v,%v %vx%v", a.X, a.Y, a.Width, a.Height)
	}
	if len(a.Bindings) != 2 || a.Bindings[0].ID != b1 || a.Bindings[1].ID != b2 {
		t.Fatalf("Bindings = %+v, want ids [%d %d]", a.Bindings, b1, b2)
	}
	if a.Bindings[0].Mode != "read" || a.Bindings[1].Mode != "write" {
		t.Errorf("modes = %q, %q", a.Bindings[0].Mode, a.Bindings[1].Mode)
	}

	// The config binding is ignored when dedicated bindings exist.
	for _, b := range a.Bindings {
		if b.Source != SourceBinding {
			t.Errorf("binding %d source = %q, want %q", b.ID, b.Source, SourceBinding)
		}
	}

	got := a.Bindings[0]
	if got.Datapoint.ID != dp || got.Datapoint.Name != "temp" || *got.Datapoint.Address != 40001 {
		t.Errorf("Datapoint = %+v", got.Datapoint)
	}
	if got.Datapoint.Scale == nil || *got.Datapoint.Scale != 1 || got.Datapoint.Offset == nil || *got.Datapoint.Offset != 0 {
		t.Errorf("scale/offset = %v/%v, want stored defaults", got.Datapoint.Scale, got.Datapoint.Offset)
	}
	want := value.Simulate(value.Descriptor{
		ID: dp, Function: "holding_register", Unit: "°C", Scale: got.Datapoint.Scale, Offset: got.Datapoint.Offset,
	}, fixedNow)
	if got.Value != want {
		t.Errorf("Value = %v, want %v", got.Value, want)
	}

	if len(rt.Widgets[1].Bindings) != 0 || rt.Widgets[1].Bindings == nil {
		t.Errorf("unbound widget Bindings = %#v, want empty non-nil", rt.Widgets[1].Bindings)
	}
}

func TestCompose_ValueObjectFallback(t *testing.T) {
	c, db := newComposer(t)
	ctx := context.Background()

	obj := databasetest.Exec(t, db, `INSERT INTO system_objects (name, type, properties) VALUES ('Setpoint', 'AnalogValue', '{"value":"21.5","unit":"°C"}')`)
	plain := databasetest.Exec(t, db, `INSERT INTO system_objects (name, type, properties) VALUES ('Folder', 'Folder', '{"value":1}')`)
	unnamed := databasetest.Exec(t, db, `INSERT INTO system_objects (name, type, properties) VALUES ('', 'BinaryValue', '{"default":true}')`)

	screen := databasetest.Exec(t, db, `INSERT INTO screens (name, route) VALUES ('S', '/s')`)
	databasetest.Exec(t, db, `INSERT INTO widgets (id, screen_id, type, name, config_json) VALUES (1, ?, 'gauge', 'named', ?)`,
		screen, `{"binding":{"valueId":"`+itoa(obj)+`","valueName":"Target"}}`)
	databasetest.Exec(t, db, `INSERT INTO widgets (id, screen_id, type, name, config_json) VALUES (2, ?, 'gauge', 'target', ?)`,
		screen, `{"binding":{"targetId":`+itoa(obj)+`}}`)
	databasetest.Exec(t, db, `INSERT INTO widgets (id, screen_id, type, name, config_json) VALUES (3, ?, 'gauge', 'folder', ?)`,
		screen, `{"binding":{"valueId":`+itoa(plain)+`}}`)
	databasetest.Exec(t, db, `INSERT INTO widgets (id, screen_id, type, name, config_json) VALUES (4, ?, 'switch', 'unnamed', ?)`,
		screen, `{"binding":{"valueId":`+itoa(unnamed)+`}}`)
	databasetest.Exec(t, db, `INSERT INTO widgets (id, screen_id, type, name, config_json) VALUES (5, ?, 'gauge', 'missing', '{"binding":{"valueId":424242}}')`, screen)

	rt, err := c.Compose(ctx, screen)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if len(rt.Widgets) != 5 {
		t.Fatalf("len(Widgets) = %d, want 5", len(rt.Widgets))
	}

	named := rt.Widgets[0].Bindings
	if len(named) != 1 {
		t.Fatalf("named widget bindings = %+v, want 1", named)
	}
	b := named[0]
	if b.ID != obj || b.Mode != "read" || b.Source != SourceValueObject {
		t.Errorf("binding = %+v", b)
	}
	if b.Datapoint.Name != "Target" {
		t.Errorf("Datapoint.Name = %q, want valueName", b.Datapoint.Name)
	}
	if b.Datapoint.Unit == nil || *b.Datapoint.Unit != "°C" {
		t.Errorf("Datapoint.Unit = %v, want °C", b.Datapoint.Unit)
	}
	if b.Datapoint.Datatype == nil || *b.Datapoint.Datatype != "AnalogValue" {
		t.Errorf("Datapoint.Datatype = %v, want object type", b.Datapoint.Datatype)
	}
	if b.Datapoint.Scale != nil || b.Datapoint.Address != nil || b.Datapoint.Function != nil {
		t.Errorf("field-bus columns set on value object datapoint: %+v", b.Datapoint)
	}
	if b.Value != 21.5 {
		t.Errorf("Value = %v, want 21.5", b.Value)
	}

	if got := rt.Widgets[1].Bindings; len(got) != 1 || got[0].Datapoint.Name != "Setpoint" {
		t.Errorf("targetId widget bindings = %+v, want object name", got)
	}
	if got := rt.Widgets[2].Bindings; len(got) != 0 {
		t.Errorf("non-value object produced bindings %+v", got)
	}
	if got := rt.Widgets[3].Bindings; len(got) != 1 || got[0].Datapoint.Name != "Value "+itoa(unnamed) || got[0].Value != true {
		t.Errorf("unnamed widget bindings = %+v", got)
	}
	if got := rt.Widgets[4].Bindings; got == nil || len(got) != 0 {
		t.Errorf("missing object bindings = %#v, want empty", got)
	}
}

type countingObjects struct {
	ObjectSource
	calls int
}

func (c *countingObjects) ListByID(ctx context.Context) ([]objecttree.SystemObject, error) {
	c.calls++
	return c.ObjectSource.ListByID(ctx)
}

func TestCompose_LoadsValueObjectsAtMostOnce(t *testing.T) {
	db := databasetest.Open(t)
	objects := &countingObjects{ObjectSource: objecttree.NewSQLiteRepository(db.DB)}
	c := NewComposer(project.NewSQLiteRepository(db.DB), objects)
	ctx := context.Background()

	screen := databasetest.Exec(t, db, `INSERT INTO screens (name, route) VALUES ('S', '/s')`)
	databasetest.Exec(t, db, `INSERT INTO widgets (screen_id, type, name) VALUES (?, 'label', 'plain')`, screen)

	if _, err := c.Compose(ctx, screen); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if objects.calls != 0 {
		t.Errorf("ListByID calls = %d, want 0 when no widget needs value objects", objects.calls)
	}

	for i := 0; i < 3; i++ {
		databasetest.Exec(t, db, `INSERT INTO widgets (screen_id, type, name, config_json) VALUES (?, 'gauge', 'v', '{"binding":{"valueId":1}}')`, screen)
	}
	if _, err := c.Compose(ctx, screen); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	if objects.calls != 1 {
		t.Errorf("ListByID calls = %d, want 1", objects.calls)
	}
}

func TestCompose_ScreenNotFound(t *testing.T) {
	c, db := newComposer(t)
	off := databasetest.Exec(t, db, `INSERT INTO screens (name, route, enabled) VALUES ('Off', '/off', 0)`)

	for _, id := range []int64{off, 999} {
		if _, err := c.Compose(context.Background(), id); !errors.Is(err, ErrScreenNotFound) {
			t.Errorf("Compose(%d) error = %v, want ErrScreenNotFound", id, err)
		}
	}
}

func TestCompose_EmptyScreen(t *testing.T) {
	c, db := newComposer(t)
	screen := databasetest.Exec(t, db, `INSERT INTO screens (name, route) VALUES ('Empty', '/empty')`)

	rt, err := c.Compose(context.Background(), screen)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	raw, err := json.Marshal(rt)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if widgets, ok := decoded["widgets"].([]any); !ok || len(widgets) != 0 {
		t.Errorf("widgets = %#v, want []", decoded["widgets"])
	}
	if _, ok := decoded["generatedAt"].(string); !ok {
		t.Errorf("generatedAt = %#v, want timestamp string", decoded["generatedAt"])
	}
}

func TestCompose_MalformedConfig(t *testing.T) {
	c, db := newComposer(t)
	screen := databasetest.Exec(t, db, `INSERT INTO screens (name, route) VALUES ('S', '/s')`)
	databasetest.Exec(t, db, `INSERT INTO widgets (screen_id, type, name, config_json) VALUES (?, 'label', 'bad', '{not json')`, screen)
	databasetest.Exec(t, db, `INSERT INTO widgets (screen_id, type, name, config_json) VALUES (?, 'label', 'array', '[1,2]')`, screen)

	rt, err := c.Compose(context.Background(), screen)
	if err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	for _, w := range rt.Widgets {
		if w.Config == nil || len(w.Config) != 0 {
			t.Errorf("widget %q Config = %#v, want empty object", w.Name, w.Config)
		}
	}
}

func TestCompose_RecordsValues(t *testing.T) {
	c, db := newComposer(t)
	ctx := context.Background()

	dp := seedDatapoint(t, db, "coil", "")
	screen := databasetest.Exec(t, db, `INSERT INTO screens (name, route) VALUES ('S', '/s')`)
	w := databasetest.Exec(t, db, `INSERT INTO widgets (screen_id, type, name) VALUES (?, 'lamp', 'L')`, screen)
	b := databasetest.Exec(t, db, `INSERT INTO bindings (widget_id, datapoint_id) VALUES (?, ?)`, w, dp)

	var got []Sample
	c.SetRecorder(recorderFunc(func(_ context.Context, samples []Sample) error {
		got = samples
		return errors.New("influx down")
	}))

	rt, err := c.Compose(ctx, screen)
	if err != nil {
		t.Fatalf("Compose() error = %v, recorder failures must not fail composition", err)
	}
	if len(got) != 1 {
		t.Fatalf("recorded %d samples, want 1", len(got))
	}
	s := got[0]
	if s.ScreenID != screen || s.WidgetID != w || s.BindingID != b || s.Source != SourceBinding || s.Name != "temp" {
		t.Errorf("sample = %+v", s)
	}
	if s.Value != rt.Widgets[0].Bindings[0].Value || !s.At.Equal(fixedNow) {
		t.Errorf("sample value/time = %v/%v", s.Value, s.At)
	}
}

func TestListScreens(t *testing.T) {
	c, db := newComposer(t)
	a := databasetest.Exec(t, db, `INSERT INTO screens (name, route) VALUES ('A', '/a')`)
	databasetest.Exec(t, db, `INSERT INTO screens (name, route, enabled) VALUES ('Off', '/off', 0)`)
	b := databasetest.Exec(t, db, `INSERT INTO screens (name, route) VALUES ('B', '/b')`)

	list, err := c.ListScreens(context.Background())
	if err != nil {
		t.Fatalf("ListScreens() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != a || list[1].ID != b {
		t.Errorf("ListScreens() = %+v, want ids [%d %d]", list, a, b)
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
