package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const bindingViewQuery = `SELECT
		b.id, b.mode, b.expression,
		w.id, w.name,
		s.id, s.name,
		d.id, d.name, d.function, d.address, d.unit
	FROM bindings b
	JOIN widgets    w ON w.id = b.widget_id
	JOIN screens    s ON s.id = w.screen_id
	JOIN datapoints d ON d.id = b.datapoint_id`

// ListBindings returns bindings joined with widget, screen and datapoint
// names, ordered by screen, widget then binding id.
func (r *SQLiteRepository) ListBindings(ctx context.Context, filter BindingFilter) ([]BindingView, error) {
	var where []string
	var args []any
	if filter.ScreenID != nil {
		where = append(where, "s.id = ?")
		args = append(args, *filter.ScreenID)
	}
	if filter.WidgetID != nil {
		where = append(where, "w.id = ?")
		args = append(args, *filter.WidgetID)
	}
	if filter.DatapointID != nil {
		where = append(where, "d.id = ?")
		args = append(args, *filter.DatapointID)
	}

	query := bindingViewQuery
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY s.id, w.id, b.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying bindings: %w", err)
	}
	defer rows.Close()

	views := []BindingView{}
	for rows.Next() {
		v, err := scanBindingView(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning binding row: %w", err)
		}
		views = append(views, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating binding rows: %w", err)
	}
	return views, nil
}

// CreateBinding links an existing widget to an existing datapoint.
// Mode defaults to "read"; the expression is stored as given.
func (r *SQLiteRepository) CreateBinding(ctx context.Context, in BindingInput) (*BindingView, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := r.requireReference(ctx, "widgets", "widget_id", in.WidgetID); err != nil {
		return nil, err
	}
	if err := r.requireReference(ctx, "datapoints", "datapoint_id", in.DatapointID); err != nil {
		return nil, err
	}
	b := in.binding()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO bindings (widget_id, datapoint_id, mode, expression) VALUES (?, ?, ?, ?)`,
		b.WidgetID, b.DatapointID, b.Mode, b.Expression)
	if err != nil {
		return nil, fmt.Errorf("inserting binding: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading binding id: %w", err)
	}

	v, err := scanBindingView(r.db.QueryRowContext(ctx, bindingViewQuery+" WHERE b.id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBindingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning binding: %w", err)
	}
	return v, nil
}

// DeleteBinding removes a binding by ID.
func (r *SQLiteRepository) DeleteBinding(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "bindings", id, ErrBindingNotFound)
}

func scanBindingView(row rowScanner) (*BindingView, error) {
	var v BindingView
	err := row.Scan(&v.ID, &v.Mode, &v.Expression,
		&v.WidgetID, &v.WidgetName,
		&v.ScreenID, &v.ScreenName,
		&v.DatapointID, &v.DatapointName, &v.DatapointFunction, &v.DatapointAddress, &v.DatapointUnit)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
