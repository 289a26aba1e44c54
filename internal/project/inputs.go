package project

import (
	"fmt"
	"strings"

	"github.com/dxascend/ascend-core/internal/document"
)

// ScreenInput carries the writable fields of a screen.
type ScreenInput struct {
	Name        string  `json:"name"`
	Route       string  `json:"route"`
	Description *string `json:"description"`
	Enabled     *bool   `json:"enabled"`
}

// Validate checks required fields.
func (in ScreenInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Route) == "" {
		return fmt.Errorf("%w: screen name and route are required", ErrInvalidInput)
	}
	return nil
}

func (in ScreenInput) screen() Screen {
	return Screen{
		Name:        in.Name,
		Route:       in.Route,
		Description: in.Description,
		Enabled:     boolOr(in.Enabled, true),
	}
}

// WidgetInput carries the writable fields of a widget. ScreenID is taken
// from the URL on create and from the body on update.
type WidgetInput struct {
	ScreenID int64             `json:"screen_id"`
	Type     string            `json:"type"`
	Name     string            `json:"name"`
	X        *float64          `json:"x"`
	Y        *float64          `json:"y"`
	Width    *float64          `json:"width"`
	Height   *float64          `json:"height"`
	Config   document.Document `json:"config_json"`
}

// Validate checks required fields.
func (in WidgetInput) Validate() error {
	if in.ScreenID <= 0 {
		return fmt.Errorf("%w: widget screen_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Type) == "" || strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: widget type and name are required", ErrInvalidInput)
	}
	return nil
}

func (in WidgetInput) widget() Widget {
	cfg := in.Config
	if cfg == nil {
		cfg = document.Document{}
	}
	return Widget{
		ScreenID: in.ScreenID,
		Type:     in.Type,
		Name:     in.Name,
		X:        floatOr(in.X, 0),
		Y:        floatOr(in.Y, 0),
		Width:    floatOr(in.Width, DefaultWidgetWidth),
		Height:   floatOr(in.Height, DefaultWidgetHeight),
		Config:   cfg,
	}
}

// BindingInput carries the writable fields of a binding.
type BindingInput struct {
	WidgetID    int64   `json:"widget_id"`
	DatapointID int64   `json:"datapoint_id"`
	Mode        string  `json:"mode"`
	Expression  *string `json:"expression"`
}

// Validate checks required fields.
func (in BindingInput) Validate() error {
	if in.WidgetID <= 0 || in.DatapointID <= 0 {
		return fmt.Errorf("%w: binding widget_id and datapoint_id are required", ErrInvalidInput)
	}
	return nil
}

func (in BindingInput) binding() Binding {
	mode := in.Mode
	if mode == "" {
		mode = DefaultBindingMode
	}
	return Binding{
		WidgetID:    in.WidgetID,
		DatapointID: in.DatapointID,
		Mode:        mode,
		Expression:  in.Expression,
	}
}

// InterfaceInput carries the writable fields of a field-bus interface.
type InterfaceInput struct {
	Name      string `json:"name"`
	IPAddress string `json:"ip_address"`
	Port      *int   `json:"port"`
	PollingMS *int   `json:"polling_ms"`
	Enabled   *bool  `json:"enabled"`
}

// Validate checks required fields.
func (in InterfaceInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.IPAddress) == "" {
		return fmt.Errorf("%w: interface name and ip_address are required", ErrInvalidInput)
	}
	return nil
}

func (in InterfaceInput) iface() ModbusInterface {
	return ModbusInterface{
		Name:      in.Name,
		IPAddress: in.IPAddress,
		Port:      intOr(in.Port, DefaultModbusPort),
		PollingMS: intOr(in.PollingMS, DefaultPollingMS),
		Enabled:   boolOr(in.Enabled, true),
	}
}

// DeviceInput carries the writable fields of a field-bus device.
type DeviceInput struct {
	InterfaceID int64  `json:"interface_id"`
	Name        string `json:"name"`
	SlaveID     *int   `json:"slave_id"`
	TimeoutMS   *int   `json:"timeout_ms"`
	Enabled     *bool  `json:"enabled"`
}

// Validate checks required fields.
func (in DeviceInput) Validate() error {
	if in.InterfaceID <= 0 || strings.TrimSpace(in.Name) == "" || in.SlaveID == nil {
		return fmt.Errorf("%w: device interface_id, name and slave_id are required", ErrInvalidInput)
	}
	return nil
}

func (in DeviceInput) device() ModbusDevice {
	return ModbusDevice{
		InterfaceID: in.InterfaceID,
		Name:        in.Name,
		SlaveID:     intOr(in.SlaveID, 0),
		TimeoutMS:   intOr(in.TimeoutMS, DefaultTimeoutMS),
		Enabled:     boolOr(in.Enabled, true),
	}
}

// DatapointInput carries the writable fields of a datapoint.
type DatapointInput struct {
	DeviceID  int64    `json:"device_id"`
	Name      string   `json:"name"`
	Function  string   `json:"function"`
	Address   *int64   `json:"address"`
	Quantity  *int     `json:"quantity"`
	Datatype  string   `json:"datatype"`
	Scale     *float64 `json:"scale"`
	Offset    *float64 `json:"offset"`
	Unit      *string  `json:"unit"`
	RW        string   `json:"rw"`
	PollingMS *int     `json:"polling_ms"`
	Enabled   *bool    `json:"enabled"`
}

// Validate checks required fields.
func (in DatapointInput) Validate() error {
	if in.DeviceID <= 0 || strings.TrimSpace(in.Name) == "" || in.Function == "" ||
		in.Address == nil || in.Datatype == "" {
		return fmt.Errorf("%w: datapoint device_id, name, function, address and datatype are required", ErrInvalidInput)
	}
	return nil
}

func (in DatapointInput) datapoint() Datapoint {
	scale := floatOr(in.Scale, DefaultScale)
	offset := floatOr(in.Offset, DefaultOffset)
	rw := in.RW
	if rw == "" {
		rw = DefaultReadWriteMode
	}
	var address int64
	if in.Address != nil {
		address = *in.Address
	}
	return Datapoint{
		DeviceID:  in.DeviceID,
		Name:      in.Name,
		Function:  in.Function,
		Address:   address,
		Quantity:  intOr(in.Quantity, DefaultQuantity),
		Datatype:  in.Datatype,
		Scale:     &scale,
		Offset:    &offset,
		Unit:      in.Unit,
		RW:        rw,
		PollingMS: in.PollingMS,
		Enabled:   boolOr(in.Enabled, true),
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func floatOr(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}
