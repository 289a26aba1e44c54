package objecttree

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dxascend/ascend-core/internal/document"
	"github.com/dxascend/ascend-core/internal/infrastructure/database"
	"github.com/dxascend/ascend-core/internal/project"
)

// maxRouteProbes bounds the suffix search for a free screen route.
const maxRouteProbes = 10000

// Repository defines the persistence operations for system objects.
type Repository interface {
	// List returns persisted objects ordered by type descending, then name.
	List(ctx context.Context) ([]SystemObject, error)
	// ListByID returns persisted objects ordered by id.
	ListByID(ctx context.Context) ([]SystemObject, error)
	Get(ctx context.Context, id int64) (*SystemObject, error)
	Create(ctx context.Context, in CreateInput) (*SystemObject, error)
	// CreateGraphic inserts a screen and a Graphic object pointing at it
	// in one transaction.
	CreateGraphic(ctx context.Context, in CreateInput) (*SystemObject, *project.Screen, error)
	Update(ctx context.Context, id int64, in UpdateInput) (*SystemObject, error)
	Delete(ctx context.Context, id int64) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed object tree repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const objectColumns = `id, parent_id, name, type, description, properties`

// List returns persisted objects ordered by type descending, then name.
func (r *SQLiteRepository) List(ctx context.Context) ([]SystemObject, error) {
	return r.query(ctx, `SELECT `+objectColumns+` FROM system_objects ORDER BY type DESC, name ASC, id ASC`)
}

// ListByID returns persisted objects ordered by id.
func (r *SQLiteRepository) ListByID(ctx context.Context) ([]SystemObject, error) {
	return r.query(ctx, `SELECT `+objectColumns+` FROM system_objects ORDER BY id`)
}

// Get returns one object by ID.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (*SystemObject, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+objectColumns+` FROM system_objects WHERE id = ?`, id)
	o, err := scanObject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning system object: %w", err)
	}
	return o, nil
}

// Create inserts a generic object. Missing properties are stored as "{}".
func (r *SQLiteRepository) Create(ctx context.Context, in CreateInput) (*SystemObject, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	return insertObject(ctx, r.db, in)
}

// CreateGraphic derives a free route from the object name, inserts the
// screen, then inserts the object with screenId and route merged into its
// properties. A failure at any step rolls back both rows.
func (r *SQLiteRepository) CreateGraphic(ctx context.Context, in CreateInput) (*SystemObject, *project.Screen, error) {
	if err := validateCreate(in); err != nil {
		return nil, nil, err
	}

	var obj *SystemObject
	var screen *project.Screen
	err := database.WithTx(ctx, r.db, func(tx *sql.Tx) error {
		route, err := freeRoute(ctx, tx, RouteSlug(in.Name))
		if err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			`INSERT INTO screens (name, route, description, enabled) VALUES (?, ?, ?, 1)`,
			in.Name, route, in.Description)
		if err != nil {
			return fmt.Errorf("inserting screen: %w", err)
		}
		screenID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("reading screen id: %w", err)
		}

		in.Properties = in.Properties.With(document.Document{"screenId": screenID, "route": route})
		obj, err = insertObject(ctx, tx, in)
		if err != nil {
			return err
		}

		screen = &project.Screen{
			ID:          screenID,
			Name:        in.Name,
			Route:       route,
			Description: in.Description,
			Enabled:     true,
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating graphic %q: %w", in.Name, err)
	}
	return obj, screen, nil
}

// Update applies a partial update and returns the stored result.
func (r *SQLiteRepository) Update(ctx context.Context, id int64, in UpdateInput) (*SystemObject, error) {
	var sets []string
	var args []any
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidObject)
		}
		sets = append(sets, "name = ?")
		args = append(args, *in.Name)
	}
	if in.Type != nil {
		if strings.TrimSpace(*in.Type) == "" {
			return nil, fmt.Errorf("%w: type cannot be empty", ErrInvalidObject)
		}
		sets = append(sets, "type = ?")
		args = append(args, *in.Type)
	}
	if in.Description.Set {
		sets = append(sets, "description = ?")
		args = append(args, in.Description.arg())
	}
	if in.ParentID.Set {
		if in.ParentID.Value != nil && *in.ParentID.Value == id {
			return nil, fmt.Errorf("%w: object cannot be its own parent", ErrInvalidObject)
		}
		sets = append(sets, "parent_id = ?")
		args = append(args, in.ParentID.arg())
	}
	if in.Properties != nil {
		sets = append(sets, "properties = ?")
		args = append(args, in.Properties.String())
	}

	if len(sets) > 0 {
		args = append(args, id)
		res, err := r.db.ExecContext(ctx,
			`UPDATE system_objects SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return nil, fmt.Errorf("updating system object %d: %w", id, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return nil, fmt.Errorf("reading affected rows: %w", err)
		}
		if n == 0 {
			return nil, ErrObjectNotFound
		}
	}
	return r.Get(ctx, id)
}

// Delete removes one object. Children and linked screens are left alone.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM system_objects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting system object %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return ErrObjectNotFound
	}
	return nil
}

func (r *SQLiteRepository) query(ctx context.Context, query string, args ...any) ([]SystemObject, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying system objects: %w", err)
	}
	defer rows.Close()

	objects := []SystemObject{}
	for rows.Next() {
		o, err := scanObject(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning system object row: %w", err)
		}
		objects = append(objects, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating system object rows: %w", err)
	}
	return objects, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanObject(row rowScanner) (*SystemObject, error) {
	var o SystemObject
	var props *string
	if err := row.Scan(&o.ID, &o.ParentID, &o.Name, &o.Type, &o.Description, &props); err != nil {
		return nil, err
	}
	o.Properties = document.ParseNullable(props)
	return &o, nil
}

func validateCreate(in CreateInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Type) == "" {
		return fmt.Errorf("%w: name and type are required", ErrInvalidObject)
	}
	return nil
}

func insertObject(ctx context.Context, q querier, in CreateInput) (*SystemObject, error) {
	props := in.Properties
	if props == nil {
		props = document.Document{}
	}

	res, err := q.ExecContext(ctx,
		`INSERT INTO system_objects (parent_id, name, type, description, properties) VALUES (?, ?, ?, ?, ?)`,
		in.ParentID, in.Name, in.Type, in.Description, props.String())
	if err != nil {
		return nil, fmt.Errorf("inserting system object: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading system object id: %w", err)
	}

	return &SystemObject{
		ID:          id,
		ParentID:    in.ParentID,
		Name:        in.Name,
		Type:        in.Type,
		Description: in.Description,
		Properties:  props,
	}, nil
}

// freeRoute returns base, or base-2, base-3, ... for the first route no
// screen uses. It must run on the transaction that inserts the screen.
func freeRoute(ctx context.Context, q querier, base string) (string, error) {
	for n := 1; n <= maxRouteProbes; n++ {
		candidate := base
		if n > 1 {
			candidate = fmt.Sprintf("%s-%d", base, n)
		}

		var one int
		err := q.QueryRowContext(ctx, `SELECT 1 FROM screens WHERE route = ? LIMIT 1`, candidate).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("probing route %s: %w", candidate, err)
		}
	}
	return "", fmt.Errorf("no free route for %s after %d attempts", base, maxRouteProbes)
}
