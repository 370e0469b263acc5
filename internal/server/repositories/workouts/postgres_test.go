package workouts

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/AHx92/my-workout-tracker/internal/server/models"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, db
}

func sample() *models.Workout {
	return &models.Workout{
		ID:         "0b7f5f2e-8a8c-4f4c-9a51-0b8f7b8f4e10",
		Email:      "coach@example.com",
		Name:       "Leg day",
		Date:       "2026-10-01",
		Exercises:  []models.Exercise{{Name: "Squat", MuscleGroup: "legs", Sets: []models.Set{{Reps: 5, Weight: 100}}}},
		Notes:      "heavy",
		Timestamp:  "2026-10-01T10:00:00Z",
		ReceivedAt: time.Date(2026, 10, 1, 10, 0, 5, 0, time.UTC),
	}
}

const exercisesJSON = `[{"name":"Squat","muscleGroup":"legs","sets":[{"reps":5,"weight":100}]}]`

func TestInsert_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	w := sample()
	q := `(?s)^INSERT\s+INTO\s+workouts\s*\(id,\s*email,\s*name,\s*date,\s*exercises,\s*notes,\s*timestamp,\s*received_at\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7,\s*\$8\)\s*$`
	mock.ExpectExec(q).
		WithArgs(w.ID, w.Email, w.Name, w.Date, []byte(exercisesJSON), w.Notes, w.Timestamp, w.ReceivedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Insert(context.Background(), w))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsert_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT\s+INTO\s+workouts`).WillReturnError(errors.New("db down"))

	err := repo.Insert(context.Background(), sample())
	require.Error(t, err)
	assert.Regexp(t, `db error: .*db down`, err.Error())
}

func TestList_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	want := sample()
	rows := sqlmock.NewRows([]string{"id", "email", "name", "date", "exercises", "notes", "timestamp", "received_at"}).
		AddRow(want.ID, want.Email, want.Name, want.Date, []byte(exercisesJSON), want.Notes, want.Timestamp, want.ReceivedAt)

	q := `(?s)^SELECT\s+id,\s*email,\s*name,.*FROM\s+workouts\s+WHERE\s+\$1\s*=\s*''\s+OR\s+email\s*=\s*\$1\s+ORDER\s+BY\s+received_at,\s*id\s*$`
	mock.ExpectQuery(q).WithArgs("coach@example.com").WillReturnRows(rows)

	got, err := repo.List(context.Background(), "coach@example.com")
	require.NoError(t, err)
	require.Len(t, got, 1)
	if diff := cmp.Diff(want, got[0]); diff != "" {
		t.Fatalf("workout mismatch (-want +got):\n%s", diff)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestList_Empty(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+workouts`).WithArgs("").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "date", "exercises", "notes", "timestamp", "received_at"}))

	got, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestList_BadExercisesJSON(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	w := sample()
	rows := sqlmock.NewRows([]string{"id", "email", "name", "date", "exercises", "notes", "timestamp", "received_at"}).
		AddRow(w.ID, w.Email, w.Name, w.Date, []byte("{"), w.Notes, w.Timestamp, w.ReceivedAt)
	mock.ExpectQuery(`FROM\s+workouts`).WillReturnRows(rows)

	_, err := repo.List(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode exercises")
}

func TestList_QueryError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+workouts`).WillReturnError(errors.New("boom"))

	_, err := repo.List(context.Background(), "")
	assert.ErrorContains(t, err, "boom")
}

func TestCount(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+count\(\*\)\s+FROM\s+workouts$`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(3)))

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
