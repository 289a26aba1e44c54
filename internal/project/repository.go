package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Repository defines the persistence operations for project data.
type Repository interface {
	ListScreens(ctx context.Context) ([]Screen, error)
	GetScreen(ctx context.Context, id int64) (*Screen, error)
	CreateScreen(ctx context.Context, in ScreenInput) (*Screen, error)
	UpdateScreen(ctx context.Context, id int64, in ScreenInput) (*Screen, error)
	DeleteScreen(ctx context.Context, id int64) error

	ListWidgets(ctx context.Context, screenID int64) ([]Widget, error)
	GetWidget(ctx context.Context, id int64) (*Widget, error)
	CreateWidget(ctx context.Context, in WidgetInput) (*Widget, error)
	UpdateWidget(ctx context.Context, id int64, in WidgetInput) (*Widget, error)
	DeleteWidget(ctx context.Context, id int64) error

	ListBindings(ctx context.Context, filter BindingFilter) ([]BindingView, error)
	CreateBinding(ctx context.Context, in BindingInput) (*BindingView, error)
	DeleteBinding(ctx context.Context, id int64) error

	ListInterfaces(ctx context.Context) ([]ModbusInterface, error)
	CreateInterface(ctx context.Context, in InterfaceInput) (*ModbusInterface, error)
	UpdateInterface(ctx context.Context, id int64, in InterfaceInput) (*ModbusInterface, error)
	DeleteInterface(ctx context.Context, id int64) error

	ListDevices(ctx context.Context, interfaceID *int64) ([]ModbusDevice, error)
	CreateDevice(ctx context.Context, in DeviceInput) (*ModbusDevice, error)
	UpdateDevice(ctx context.Context, id int64, in DeviceInput) (*ModbusDevice, error)
	DeleteDevice(ctx context.Context, id int64) error

	ListDatapoints(ctx context.Context, deviceID *int64) ([]Datapoint, error)
	CreateDatapoint(ctx context.Context, in DatapointInput) (*Datapoint, error)
	UpdateDatapoint(ctx context.Context, id int64, in DatapointInput) (*Datapoint, error)
	DeleteDatapoint(ctx context.Context, id int64) error

	RuntimeStore
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed project repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const screenColumns = `id, name, route, description, enabled`

// ListScreens returns every screen, enabled or not, ordered by id.
func (r *SQLiteRepository) ListScreens(ctx context.Context) ([]Screen, error) {
	return r.queryScreens(ctx, `SELECT `+screenColumns+` FROM screens ORDER BY id`)
}

// GetScreen returns a screen by ID regardless of its enabled flag.
func (r *SQLiteRepository) GetScreen(ctx context.Context, id int64) (*Screen, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+screenColumns+` FROM screens WHERE id = ?`, id)
	return scanScreen(row)
}

// CreateScreen inserts a screen. Enabled defaults to true.
func (r *SQLiteRepository) CreateScreen(ctx context.Context, in ScreenInput) (*Screen, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s := in.screen()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO screens (name, route, description, enabled) VALUES (?, ?, ?, ?)`,
		s.Name, s.Route, s.Description, s.Enabled)
	if err != nil {
		return nil, fmt.Errorf("inserting screen: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading screen id: %w", err)
	}
	return r.GetScreen(ctx, id)
}

// UpdateScreen replaces the writable fields of a screen.
func (r *SQLiteRepository) UpdateScreen(ctx context.Context, id int64, in ScreenInput) (*Screen, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	s := in.screen()

	res, err := r.db.ExecContext(ctx,
		`UPDATE screens SET name = ?, route = ?, description = ?, enabled = ? WHERE id = ?`,
		s.Name, s.Route, s.Description, s.Enabled, id)
	if err != nil {
		return nil, fmt.Errorf("updating screen %d: %w", id, err)
	}
	if err := requireAffected(res, ErrScreenNotFound); err != nil {
		return nil, err
	}
	return r.GetScreen(ctx, id)
}

// DeleteScreen removes a screen; widgets and bindings cascade.
func (r *SQLiteRepository) DeleteScreen(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "screens", id, ErrScreenNotFound)
}

func (r *SQLiteRepository) queryScreens(ctx context.Context, query string, args ...any) ([]Screen, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying screens: %w", err)
	}
	defer rows.Close()

	screens := []Screen{}
	for rows.Next() {
		var s Screen
		if err := rows.Scan(&s.ID, &s.Name, &s.Route, &s.Description, &s.Enabled); err != nil {
			return nil, fmt.Errorf("scanning screen row: %w", err)
		}
		screens = append(screens, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating screen rows: %w", err)
	}
	return screens, nil
}

func scanScreen(row *sql.Row) (*Screen, error) {
	var s Screen
	if err := row.Scan(&s.ID, &s.Name, &s.Route, &s.Description, &s.Enabled); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrScreenNotFound
		}
		return nil, fmt.Errorf("scanning screen: %w", err)
	}
	return &s, nil
}

// deleteByID deletes one row and maps "nothing deleted" to notFound.
// table is always a package constant, never user input.
func (r *SQLiteRepository) deleteByID(ctx context.Context, table string, id int64, notFound error) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table, err)
	}
	return requireAffected(res, notFound)
}

// exists reports whether table has a row with the given id.
func (r *SQLiteRepository) exists(ctx context.Context, table string, id int64) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM `+table+` WHERE id = ?`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s %d: %w", table, id, err)
	}
	return true, nil
}

// requireReference fails with ErrUnknownReference when id is absent from table.
func (r *SQLiteRepository) requireReference(ctx context.Context, table, field string, id int64) error {
	ok, err := r.exists(ctx, table, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s %d", ErrUnknownReference, field, id)
	}
	return nil
}

func requireAffected(res sql.Result, notFound error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return notFound
	}
	return nil
}
