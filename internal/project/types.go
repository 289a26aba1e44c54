package project

import "github.com/dxascend/ascend-core/internal/document"

// Default values applied when a create or update omits a field.
const (
	DefaultWidgetWidth   = 100
	DefaultWidgetHeight  = 100
	DefaultBindingMode   = "read"
	DefaultModbusPort    = 502
	DefaultPollingMS     = 1000
	DefaultTimeoutMS     = 1000
	DefaultQuantity      = 1
	DefaultScale         = 1.0
	DefaultOffset        = 0.0
	DefaultReadWriteMode = "R"
)

// Screen is a named, routable visualization page.
type Screen struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Route       string  `json:"route"`
	Description *string `json:"description"`
	Enabled     bool    `json:"enabled"`
}

// Widget is a positioned element on a screen. Config is stored as JSON text
// and parsed leniently on read.
type Widget struct {
	ID       int64             `json:"id"`
	ScreenID int64             `json:"screen_id"`
	Type     string            `json:"type"`
	Name     string            `json:"name"`
	X        float64           `json:"x"`
	Y        float64           `json:"y"`
	Width    float64           `json:"width"`
	Height   float64           `json:"height"`
	Config   document.Document `json:"config_json"`
}

// Binding links a widget to a datapoint. Expression is stored verbatim and
// never evaluated.
type Binding struct {
	ID          int64   `json:"id"`
	WidgetID    int64   `json:"widget_id"`
	DatapointID int64   `json:"datapoint_id"`
	Mode        string  `json:"mode"`
	Expression  *string `json:"expression"`
}

// BindingView is a binding joined with the names of what it connects.
type BindingView struct {
	ID                int64   `json:"id"`
	Mode              string  `json:"mode"`
	Expression        *string `json:"expression"`
	WidgetID          int64   `json:"widget_id"`
	WidgetName        string  `json:"widget_name"`
	ScreenID          int64   `json:"screen_id"`
	ScreenName        string  `json:"screen_name"`
	DatapointID       int64   `json:"datapoint_id"`
	DatapointName     string  `json:"datapoint_name"`
	DatapointFunction string  `json:"datapoint_function"`
	DatapointAddress  int64   `json:"datapoint_address"`
	DatapointUnit     *string `json:"datapoint_unit"`
}

// BindingFilter narrows ListBindings. Nil fields do not filter.
type BindingFilter struct {
	ScreenID    *int64
	WidgetID    *int64
	DatapointID *int64
}

// ModbusInterface is a field-bus gateway definition.
type ModbusInterface struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	IPAddress string `json:"ip_address"`
	Port      int    `json:"port"`
	PollingMS int    `json:"polling_ms"`
	Enabled   bool   `json:"enabled"`
}

// ModbusDevice is a slave reachable through an interface.
type ModbusDevice struct {
	ID          int64  `json:"id"`
	InterfaceID int64  `json:"interface_id"`
	Name        string `json:"name"`
	SlaveID     int    `json:"slave_id"`
	TimeoutMS   int    `json:"timeout_ms"`
	Enabled     bool   `json:"enabled"`
}

// Datapoint is a single addressable value on a device.
type Datapoint struct {
	ID        int64    `json:"id"`
	DeviceID  int64    `json:"device_id"`
	Name      string   `json:"name"`
	Function  string   `json:"function"`
	Address   int64    `json:"address"`
	Quantity  int      `json:"quantity"`
	Datatype  string   `json:"datatype"`
	Scale     *float64 `json:"scale"`
	Offset    *float64 `json:"offset"`
	Unit      *string  `json:"unit"`
	RW        string   `json:"rw"`
	PollingMS *int     `json:"polling_ms"`
	Enabled   bool     `json:"enabled"`
}

// RuntimeRow is one row of the widget/binding/datapoint left join for a
// screen. Binding and datapoint columns are nil when the widget has no
// binding or the datapoint row is missing.
type RuntimeRow struct {
	WidgetID   int64
	WidgetType string
	WidgetName string
	X, Y       float64
	Width      float64
	Height     float64
	ConfigJSON *string

	BindingID   *int64
	BindingMode *string

	DatapointID       *int64
	DatapointName     *string
	DatapointUnit     *string
	DatapointScale    *float64
	DatapointOffset   *float64
	DatapointDatatype *string
	DatapointFunction *string
	DatapointAddress  *int64
}
