package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// bindingMeasurement is the measurement all binding values are written to.
const bindingMeasurement = "binding_values"

// BindingValue is one value resolved for a widget binding.
type BindingValue struct {
	ScreenID  int64
	WidgetID  int64
	BindingID int64
	Source    string
	Name      string
	Value     any
	At        time.Time
}

// WriteBindingValues queues one point per value. The write is non-blocking.
//
// Numbers are written to the "value" field, booleans to "state" (with
// "value" as 0 or 1) and strings to "text". Values of any other type,
// including nil, are skipped. It returns ErrNotConnected once the client
// is closed.
func (c *Client) WriteBindingValues(values []BindingValue) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}

	for _, v := range values {
		if point := bindingPoint(v); point != nil {
			c.writeAPI.WritePoint(point)
		}
	}
	return nil
}

// bindingPoint builds the point for v, or nil when v has no writable value.
func bindingPoint(v BindingValue) *write.Point {
	fields := bindingFields(v.Value)
	if fields == nil {
		return nil
	}

	at := v.At
	if at.IsZero() {
		at = time.Now()
	}

	return write.NewPoint(
		bindingMeasurement,
		map[string]string{
			"screen_id":  strconv.FormatInt(v.ScreenID, 10),
			"widget_id":  strconv.FormatInt(v.WidgetID, 10),
			"binding_id": strconv.FormatInt(v.BindingID, 10),
			"source":     v.Source,
			"name":       v.Name,
		},
		fields,
		at,
	)
}

func bindingFields(value any) map[string]interface{} {
	switch v := value.(type) {
	case float64:
		return map[string]interface{}{"value": v}
	case float32:
		return map[string]interface{}{"value": float64(v)}
	case int:
		return map[string]interface{}{"value": float64(v)}
	case int64:
		return map[string]interface{}{"value": float64(v)}
	case bool:
		n := 0.0
		if v {
			n = 1
		}
		return map[string]interface{}{"state": v, "value": n}
	case string:
		return map[string]interface{}{"text": v}
	default:
		return nil
	}
}
