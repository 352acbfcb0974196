package worker

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func workerRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "full_name", "role", "bio", "is_active",
		"working_hours_start", "working_hours_end", "created_at", "updated_at",
	})
}

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, full_name, role, bio, is_active, working_hours_start, working_hours_end, created_at, updated_at FROM workers WHERE id = $1")).
		WithArgs(int64(2)).
		WillReturnRows(workerRows().AddRow(int64(2), "Elena Petrova", "Stylist", "", true, "10:00:00", "19:00:00", now, nil))

	w, err := NewRepository(db).GetByID(context.Background(), 2)

	require.NoError(t, err)
	assert.Equal(t, "Elena Petrova", w.FullName)
	assert.Equal(t, types.TimeString("10:00"), w.WorkingHoursStart)
	assert.Equal(t, types.TimeString("19:00"), w.WorkingHoursEnd)
	assert.True(t, w.HasValidWorkingHours())
	assert.True(t, w.UpdatedAt.IsZero())
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM workers").WillReturnRows(workerRows())

	_, err = NewRepository(db).GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, ErrWorkerNotFound)
}

func TestRepository_ListActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("FROM workers WHERE is_active = $1 ORDER BY full_name ASC")).
		WithArgs(true).
		WillReturnRows(workerRows().
			AddRow(int64(1), "Ana", "Nail artist", "", true, "09:00:00", "18:00:00", now, now).
			AddRow(int64(3), "Boris", "Barber", "Ten years of fades", true, "12:00:00", "20:00:00", now, now))

	workers, err := NewRepository(db).ListActive(context.Background())

	require.NoError(t, err)
	require.Len(t, workers, 2)
	assert.Equal(t, "Boris", workers[1].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}
