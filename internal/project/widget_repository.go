package project

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dxascend/ascend-core/internal/document"
)

const widgetColumns = `id, screen_id, type, name, x, y, width, height, config_json`

// ListWidgets returns the widgets of a screen ordered by id.
// A missing screen yields ErrScreenNotFound.
func (r *SQLiteRepository) ListWidgets(ctx context.Context, screenID int64) ([]Widget, error) {
	ok, err := r.exists(ctx, "screens", screenID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrScreenNotFound
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+widgetColumns+` FROM widgets WHERE screen_id = ? ORDER BY id`, screenID)
	if err != nil {
		return nil, fmt.Errorf("querying widgets: %w", err)
	}
	defer rows.Close()

	widgets := []Widget{}
	for rows.Next() {
		w, err := scanWidget(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning widget row: %w", err)
		}
		widgets = append(widgets, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating widget rows: %w", err)
	}
	return widgets, nil
}

// GetWidget returns a widget by ID.
func (r *SQLiteRepository) GetWidget(ctx context.Context, id int64) (*Widget, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+widgetColumns+` FROM widgets WHERE id = ?`, id)
	w, err := scanWidget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWidgetNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning widget: %w", err)
	}
	return w, nil
}

// CreateWidget inserts a widget on an existing screen.
// Position defaults to 0,0 and size to 100x100.
func (r *SQLiteRepository) CreateWidget(ctx context.Context, in WidgetInput) (*Widget, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := r.requireReference(ctx, "screens", "screen_id", in.ScreenID); err != nil {
		return nil, err
	}
	w := in.widget()

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO widgets (screen_id, type, name, x, y, width, height, config_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ScreenID, w.Type, w.Name, w.X, w.Y, w.Width, w.Height, w.Config.String())
	if err != nil {
		return nil, fmt.Errorf("inserting widget: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading widget id: %w", err)
	}
	return r.GetWidget(ctx, id)
}

// UpdateWidget replaces the writable fields of a widget.
func (r *SQLiteRepository) UpdateWidget(ctx context.Context, id int64, in WidgetInput) (*Widget, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ok, err := r.exists(ctx, "widgets", id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrWidgetNotFound
	}
	if err := r.requireReference(ctx, "screens", "screen_id", in.ScreenID); err != nil {
		return nil, err
	}
	w := in.widget()

	if _, err := r.db.ExecContext(ctx,
		`UPDATE widgets SET screen_id = ?, type = ?, name = ?, x = ?, y = ?,
		 width = ?, height = ?, config_json = ? WHERE id = ?`,
		w.ScreenID, w.Type, w.Name, w.X, w.Y, w.Width, w.Height, w.Config.String(), id); err != nil {
		return nil, fmt.Errorf("updating widget %d: %w", id, err)
	}
	return r.GetWidget(ctx, id)
}

// DeleteWidget removes a widget; its bindings cascade.
func (r *SQLiteRepository) DeleteWidget(ctx context.Context, id int64) error {
	return r.deleteByID(ctx, "widgets", id, ErrWidgetNotFound)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWidget(row rowScanner) (*Widget, error) {
	var w Widget
	var cfg *string
	if err := row.Scan(&w.ID, &w.ScreenID, &w.Type, &w.Name, &w.X, &w.Y, &w.Width, &w.Height, &cfg); err != nil {
		return nil, err
	}
	w.Config = document.ParseNullable(cfg)
	return &w, nil
}
