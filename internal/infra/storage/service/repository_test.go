package service

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, duration_minutes, created_at, updated_at FROM services WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "duration_minutes", "created_at", "updated_at"}).
			AddRow(int64(4), "Manicure", "Classic manicure", 45, nil, nil))

	s, err := NewRepository(db).GetByID(context.Background(), 4)

	require.NoError(t, err)
	assert.Equal(t, "Manicure", s.Name)
	assert.Equal(t, 45, s.DurationMinutes)
}

func TestRepository_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM services").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "duration_minutes", "created_at", "updated_at"}))

	_, err = NewRepository(db).GetByID(context.Background(), 4)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM services ORDER BY name ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "duration_minutes", "created_at", "updated_at"}).
			AddRow(int64(1), "Coloring", "", 120, nil, nil).
			AddRow(int64(2), "Haircut", "", 30, nil, nil))

	services, err := NewRepository(db).List(context.Background())

	require.NoError(t, err)
	require.Len(t, services, 2)
	assert.Equal(t, 120, services[0].DurationMinutes)
}
