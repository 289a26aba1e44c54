package objecttree

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	probeRouteSQL   = regexp.QuoteMeta(`SELECT 1 FROM screens WHERE route = ? LIMIT 1`)
	insertScreenSQL = regexp.QuoteMeta(`INSERT INTO screens (name, route, description, enabled)`)
	insertObjectSQL = regexp.QuoteMeta(`INSERT INTO system_objects (parent_id, name, type, description, properties)`)
)

func newMockRepo(t *testing.T) (*SQLiteRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLiteRepository(db), mock
}

func TestCreateGraphic_Mock_ObjectInsertFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(probeRouteSQL).WithArgs("/doomed").WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectExec(insertScreenSQL).WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(insertObjectSQL).WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	obj, screen, err := repo.CreateGraphic(context.Background(), CreateInput{Name: "Doomed", Type: "Graphic"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk I/O error")
	assert.Nil(t, obj)
	assert.Nil(t, screen)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGraphic_Mock_ScreenInsertFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(probeRouteSQL).WithArgs("/doomed").WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectExec(insertScreenSQL).WillReturnError(errors.New("constraint failed"))
	mock.ExpectRollback()

	_, _, err := repo.CreateGraphic(context.Background(), CreateInput{Name: "Doomed", Type: "Graphic"})

	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGraphic_Mock_CommitFails(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(probeRouteSQL).WithArgs("/doomed").WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectExec(insertScreenSQL).WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectExec(insertObjectSQL).WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit().WillReturnError(errors.New("database is locked"))

	obj, _, err := repo.CreateGraphic(context.Background(), CreateInput{Name: "Doomed", Type: "Graphic"})

	require.Error(t, err)
	assert.Nil(t, obj)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateGraphic_Mock_ProbesInsideTransaction(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(probeRouteSQL).WithArgs("/lobby").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(probeRouteSQL).WithArgs("/lobby-2").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery(probeRouteSQL).WithArgs("/lobby-3").WillReturnRows(sqlmock.NewRows([]string{"1"}))
	mock.ExpectExec(insertScreenSQL).WithArgs("Lobby", "/lobby-3", sqlmock.AnyArg()).WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec(insertObjectSQL).WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	obj, screen, err := repo.CreateGraphic(context.Background(), CreateInput{Name: "Lobby", Type: "Graphic"})

	require.NoError(t, err)
	assert.Equal(t, int64(3), obj.ID)
	assert.Equal(t, int64(7), screen.ID)
	assert.Equal(t, "/lobby-3", screen.Route)
	assert.Equal(t, "/lobby-3", obj.Properties["route"])
	assert.Equal(t, int64(7), obj.Properties["screenId"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
