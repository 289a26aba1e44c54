package project

import (
	"context"
	"fmt"
)

// RuntimeStore is the read-only view of the project the runtime composer
// and route resolver need. Every method ignores disabled screens.
type RuntimeStore interface {
	ListEnabledScreens(ctx context.Context) ([]Screen, error)
	GetEnabledScreen(ctx context.Context, id int64) (*Screen, error)
	FindEnabledScreenByRoute(ctx context.Context, route string) (*Screen, error)
	FindEnabledScreenByName(ctx context.Context, name string) (*Screen, error)
	RuntimeRows(ctx context.Context, screenID int64) ([]RuntimeRow, error)
}

// ListEnabledScreens returns enabled screens ordered by id.
func (r *SQLiteRepository) ListEnabledScreens(ctx context.Context) ([]Screen, error) {
	return r.queryScreens(ctx, `SELECT `+screenColumns+` FROM screens WHERE enabled = 1 ORDER BY id`)
}

// GetEnabledScreen returns an enabled screen by ID.
// Disabled and missing screens both yield ErrScreenNotFound.
func (r *SQLiteRepository) GetEnabledScreen(ctx context.Context, id int64) (*Screen, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+screenColumns+` FROM screens WHERE id = ? AND enabled = 1`, id)
	return scanScreen(row)
}

// FindEnabledScreenByRoute returns the lowest-id enabled screen whose route
// equals route exactly.
func (r *SQLiteRepository) FindEnabledScreenByRoute(ctx context.Context, route string) (*Screen, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+screenColumns+` FROM screens WHERE route = ? AND enabled = 1 ORDER BY id LIMIT 1`, route)
	return scanScreen(row)
}

// FindEnabledScreenByName returns the lowest-id enabled screen whose name
// matches name case-insensitively.
func (r *SQLiteRepository) FindEnabledScreenByName(ctx context.Context, name string) (*Screen, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+screenColumns+` FROM screens WHERE lower(name) = lower(?) AND enabled = 1 ORDER BY id LIMIT 1`, name)
	return scanScreen(row)
}

// RuntimeRows returns the widget/binding/datapoint join of a screen ordered
// by widget id then binding id. Widgets without bindings produce one row with
// nil binding columns.
func (r *SQLiteRepository) RuntimeRows(ctx context.Context, screenID int64) ([]RuntimeRow, error) {
	const query = `SELECT
			w.id, w.type, w.name, w.x, w.y, w.width, w.height, w.config_json,
			b.id, b.mode,
			d.id, d.name, d.unit, d.scale, d."offset", d.datatype, d.function, d.address
		FROM screens s
		JOIN widgets w          ON w.screen_id = s.id
		LEFT JOIN bindings b    ON b.widget_id = w.id
		LEFT JOIN datapoints d  ON d.id = b.datapoint_id
		WHERE s.id = ?
		ORDER BY w.id, b.id`

	rows, err := r.db.QueryContext(ctx, query, screenID)
	if err != nil {
		return nil, fmt.Errorf("querying runtime rows for screen %d: %w", screenID, err)
	}
	defer rows.Close()

	var out []RuntimeRow
	for rows.Next() {
		var rr RuntimeRow
		if err := rows.Scan(
			&rr.WidgetID, &rr.WidgetType, &rr.WidgetName, &rr.X, &rr.Y, &rr.Width, &rr.Height, &rr.ConfigJSON,
			&rr.BindingID, &rr.BindingMode,
			&rr.DatapointID, &rr.DatapointName, &rr.DatapointUnit, &rr.DatapointScale, &rr.DatapointOffset,
			&rr.DatapointDatatype, &rr.DatapointFunction, &rr.DatapointAddress,
		); err != nil {
			return nil, fmt.Errorf("scanning runtime row: %w", err)
		}
		out = append(out, rr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runtime rows: %w", err)
	}
	return out, nil
}
