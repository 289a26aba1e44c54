package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const (
	interfaceColumns = `id, name, ip_address, port, polling_ms, enabled`
	deviceColumns    = `id, interface_id, name, slave_id, timeout_ms, enabled`
	datapointColumns = `id, device_id, name, function, address, quantity, datatype,
		scale, "offset", unit, rw, polling_ms, enabled`
)

// ListInterfaces returns every field-bus interface ordered by id.
func (r *SQLiteRepository) ListInterfaces(ctx context.Context) ([]ModbusInterface, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+interfaceColumns+` FROM modbus_interfaces ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying interfaces: %w", err)
	}
	defer rows.Close()

	out := []ModbusInterface{}
	for rows.Next() {
		i, err := scanInterface(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning interface row: %w", err)
		}
		out = append(out, *i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating interface rows: %w", err)
	}
	return out, nil
}

// CreateInterface inserts an interface. Port defaults to 502 and polling to 1000 ms.
func (r *SQLiteRepository) CreateInterface(ctx context.Context, in InterfaceInput) (*ModbusInterface, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	i := in.iface()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO modbus_interfaces (name, ip_address, port, polling_ms, enabled) VALUES (?, ?, ?, ?, ?)`,
		i.Name, i.IPAddress, i.Port, i.PollingMS, i.Enabled)
	if err != nil {
		return nil, fmt.Errorf("inserting interface: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading interface id: %w", err)
	}
	return r.getInterface(ctx, id)
}

// UpdateInterface replaces the writable fields of an interface.
func (r *SQLiteRepository) UpdateInterface(ctx context.Context, id int64, in InterfaceInput) (*ModbusInterface, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	i := in.iface()

	res, err := r.db.ExecContext(ctx,
		`UPDATE modbus_interfaces SET name = ?, ip_address = ?, port = ?, polling_ms = ?, enabled = ? WHERE id = ?`,
		i.Name, i.IPAddress, i.Port, i.PollingMS, i.Enabled, id)
	if err != nil {
		return nil, fmt.Errorf("updating interface %d: %w", id, err)
	}
	if err := requireAffected(res, ErrInterfaceNotFound); err != nil {
		return nil, err
	}
	return r.getInterface(ctx, id)
}

// DeleteInterface removes an interface; its devices and datapoints cascade.
func (r *SQLiteRepository) DeleteInterface(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "modbus_interfaces", id, ErrInterfaceNotFound)
}

func (r *SQLiteRepository) getInterface(ctx context.Context, id int64) (*ModbusInterface, error) {
	i, err := scanInterface(r.db.QueryRowContext(ctx,
		`SELECT `+interfaceColumns+` FROM modbus_interfaces WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInterfaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning interface: %w", err)
	}
	return i, nil
}

func scanInterface(row rowScanner) (*ModbusInterface, error) {
	var i ModbusInterface
	if err := row.Scan(&i.ID, &i.Name, &i.IPAddress, &i.Port, &i.PollingMS, &i.Enabled); err != nil {
		return nil, err
	}
	return &i, nil
}

// ListDevices returns devices ordered by id, optionally for one interface.
func (r *SQLiteRepository) ListDevices(ctx context.Context, interfaceID *int64) ([]ModbusDevice, error) {
	query := `SELECT ` + deviceColumns + ` FROM modbus_devices`
	var args []any
	if interfaceID != nil {
		query += ` WHERE interface_id = ?`
		args = append(args, *interfaceID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying devices: %w", err)
	}
	defer rows.Close()

	out := []ModbusDevice{}
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning device row: %w", err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating device rows: %w", err)
	}
	return out, nil
}

// CreateDevice inserts a device on an existing interface. Timeout defaults to 1000 ms.
func (r *SQLiteRepository) CreateDevice(ctx context.Context, in DeviceInput) (*ModbusDevice, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := r.requireReference(ctx, "modbus_interfaces", "interface_id", in.InterfaceID); err != nil {
		return nil, err
	}
	d := in.device()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO modbus_devices (interface_id, name, slave_id, timeout_ms, enabled) VALUES (?, ?, ?, ?, ?)`,
		d.InterfaceID, d.Name, d.SlaveID, d.TimeoutMS, d.Enabled)
	if err != nil {
		return nil, fmt.Errorf("inserting device: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading device id: %w", err)
	}
	return r.getDevice(ctx, id)
}

// UpdateDevice replaces the writable fields of a device.
func (r *SQLiteRepository) UpdateDevice(ctx context.Context, id int64, in DeviceInput) (*ModbusDevice, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ok, err := r.exists(ctx, "modbus_devices", id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDeviceNotFound
	}
	if err := r.requireReference(ctx, "modbus_interfaces", "interface_id", in.InterfaceID); err != nil {
		return nil, err
	}
	d := in.device()

	if _, err := r.db.ExecContext(ctx,
		`UPDATE modbus_devices SET interface_id = ?, name = ?, slave_id = ?, timeout_ms = ?, enabled = ? WHERE id = ?`,
		d.InterfaceID, d.Name, d.SlaveID, d.TimeoutMS, d.Enabled, id); err != nil {
		return nil, fmt.Errorf("updating device %d: %w", id, err)
	}
	return r.getDevice(ctx, id)
}

// DeleteDevice removes a device; its datapoints cascade.
func (r *SQLiteRepository) DeleteDevice(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "modbus_devices", id, ErrDeviceNotFound)
}

func (r *SQLiteRepository) getDevice(ctx context.Context, id int64) (*ModbusDevice, error) {
	d, err := scanDevice(r.db.QueryRowContext(ctx,
		`SELECT `+deviceColumns+` FROM modbus_devices WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDeviceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning device: %w", err)
	}
	return d, nil
}

func scanDevice(row rowScanner) (*ModbusDevice, error) {
	var d ModbusDevice
	if err := row.Scan(&d.ID, &d.InterfaceID, &d.Name, &d.SlaveID, &d.TimeoutMS, &d.Enabled); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDatapoints returns datapoints ordered by id, optionally for one device.
func (r *SQLiteRepository) ListDatapoints(ctx context.Context, deviceID *int64) ([]Datapoint, error) {
	query := `SELECT ` + datapointColumns + ` FROM datapoints`
	var args []any
	if deviceID != nil {
		query += ` WHERE device_id = ?`
		args = append(args, *deviceID)
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying datapoints: %w", err)
	}
	defer rows.Close()

	out := []Datapoint{}
	for rows.Next() {
		d, err := scanDatapoint(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning datapoint row: %w", err)
		}
		out = append(out, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating datapoint rows: %w", err)
	}
	return out, nil
}

// CreateDatapoint inserts a datapoint on an existing device.
// Quantity defaults to 1, scale to 1.0, offset to 0.0 and rw to "R".
func (r *SQLiteRepository) CreateDatapoint(ctx context.Context, in DatapointInput) (*Datapoint, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := r.requireReference(ctx, "modbus_devices", "device_id", in.DeviceID); err != nil {
		return nil, err
	}
	d := in.datapoint()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO datapoints (device_id, name, function, address, quantity, datatype,
		 scale, "offset", unit, rw, polling_ms, enabled)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.DeviceID, d.Name, d.Function, d.Address, d.Quantity, d.Datatype,
		d.Scale, d.Offset, d.Unit, d.RW, d.PollingMS, d.Enabled)
	if err != nil {
		return nil, fmt.Errorf("inserting datapoint: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading datapoint id: %w", err)
	}
	return r.getDatapoint(ctx, id)
}

// UpdateDatapoint replaces the writable fields of a datapoint.
func (r *SQLiteRepository) UpdateDatapoint(ctx context.Context, id int64, in DatapointInput) (*Datapoint, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ok, err := r.exists(ctx, "datapoints", id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrDatapointNotFound
	}
	if err := r.requireReference(ctx, "modbus_devices", "device_id", in.DeviceID); err != nil {
		return nil, err
	}
	d := in.datapoint()

	if _, err := r.db.ExecContext(ctx,
		`UPDATE datapoints SET device_id = ?, name = ?, function = ?, address = ?, quantity = ?,
		 datatype = ?, scale = ?, "offset" = ?, unit = ?, rw = ?, polling_ms = ?, enabled = ?
		 WHERE id = ?`,
		d.DeviceID, d.Name, d.Function, d.Address, d.Quantity,
		d.Datatype, d.Scale, d.Offset, d.Unit, d.RW, d.PollingMS, d.Enabled, id); err != nil {
		return nil, fmt.Errorf("updating datapoint %d: %w", id, err)
	}
	return r.getDatapoint(ctx, id)
}

// DeleteDatapoint removes a datapoint; bindings to it cascade.
func (r *SQLiteRepository) DeleteDatapoint(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "datapoints", id, ErrDatapointNotFound)
}

func (r *SQLiteRepository) getDatapoint(ctx context.Context, id int64) (*Datapoint, error) {
	d, err := scanDatapoint(r.db.QueryRowContext(ctx,
		`SELECT `+datapointColumns+` FROM datapoints WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDatapointNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning datapoint: %w", err)
	}
	return d, nil
}

func scanDatapoint(row rowScanner) (*Datapoint, error) {
	var d Datapoint
	err := row.Scan(&d.ID, &d.DeviceID, &d.Name, &d.Function, &d.Address, &d.Quantity, &d.Datatype,
		&d.Scale, &d.Offset, &d.Unit, &d.RW, &d.PollingMS, &d.Enabled)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
