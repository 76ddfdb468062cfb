package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/models"
)

func TestTimetableRepositoryLockUsesAdvisoryLock(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SELECT pg_advisory_xact_lock(hashtext($1))")).
		WithArgs("u1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := db.Beginx()
	require.NoError(t, err)
	require.NoError(t, repo.LockForUser(context.Background(), tx, "u1"))
	require.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryFindByUser(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "days", "coverage", "seed", "version", "generated_at", "updated_at"}).
		AddRow("t1", "u1", []byte(`[{"dayOfWeek":0,"dayName":"Monday","sessions":[],"totalStudyMinutes":0,"totalBreakMinutes":0}]`), []byte(`{"needed":0}`), nil, 3, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM timetables WHERE user_id = $1")).
		WithArgs("u1").
		WillReturnRows(rows)

	tt, err := repo.FindByUser(context.Background(), nil, "u1")
	require.NoError(t, err)
	assert.Equal(t, 3, tt.Version)
	days, err := tt.DecodeDays()
	require.NoError(t, err)
	require.Len(t, days, 1)
	assert.Equal(t, "Monday", days[0].DayName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryFindByUserMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM timetables")).WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUser(context.Background(), nil, "u1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestTimetableRepositoryUpsertReturnsVersion(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("version = timetables.version + 1")).
		WithArgs(sqlmock.AnyArg(), "u1", sqlmock.AnyArg(), sqlmock.AnyArg(), nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "version"}).AddRow("existing", 4))

	tt := &models.Timetable{UserID: "u1", Days: types.JSONText(`[]`), Coverage: types.JSONText(`{}`)}
	require.NoError(t, repo.Upsert(context.Background(), nil, tt))
	assert.Equal(t, "existing", tt.ID)
	assert.Equal(t, 4, tt.Version)
	assert.False(t, tt.GeneratedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryUpdateDays(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE timetables SET days = $2, coverage = $3, version = version + 1, updated_at = $4 WHERE user_id = $1 RETURNING version")).
		WithArgs("u1", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(2))

	tt := &models.Timetable{UserID: "u1", Days: types.JSONText(`[]`), Coverage: types.JSONText(`{}`)}
	require.NoError(t, repo.UpdateDays(context.Background(), nil, tt))
	assert.Equal(t, 2, tt.Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryWithUserLockCommits(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("FROM timetables WHERE user_id = $1")).WithArgs("u1").WillReturnError(sql.ErrNoRows)
	mock.ExpectCommit()

	err := repo.WithUserLock(context.Background(), "u1", func(exec sqlx.ExtContext) error {
		_, err := repo.FindByUser(context.Background(), exec, "u1")
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return err
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryWithUserLockRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("pg_advisory_xact_lock")).WithArgs("u1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := repo.WithUserLock(context.Background(), "u1", func(exec sqlx.ExtContext) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
