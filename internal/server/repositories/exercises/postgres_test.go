package exercises

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/AHx92/my-workout-tracker/internal/server/models"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

const listQuery = `(?s)^SELECT\s+name,\s*muscle_group\s+FROM\s+exercises\s+ORDER\s+BY\s+name\s*$`

func TestList_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"name", "muscle_group"}).
		AddRow("Deadlift", "back").
		AddRow("Squat", "legs")
	mock.ExpectQuery(listQuery).WillReturnRows(rows)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []*models.CatalogExercise{
		{Name: "Deadlift", MuscleGroup: "back"},
		{Name: "Squat", MuscleGroup: "legs"},
	}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(listQuery).WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.Regexp(t, `db error: .*db down`, err.Error())
}

func TestList_RowError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"name", "muscle_group"}).
		AddRow("Squat", "legs").
		RowError(0, errors.New("broken row"))
	mock.ExpectQuery(listQuery).WillReturnRows(rows)

	_, err := repo.List(context.Background())
	assert.ErrorContains(t, err, "broken row")
}
