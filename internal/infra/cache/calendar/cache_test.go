package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/ptr"
)

func newCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCache(rdb, "", time.Minute), mr
}

func sampleView() *domain.MonthView {
	month := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return &domain.MonthView{
		Month: month,
		Today: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
		Weeks: [][]domain.CalendarDay{{
			{Date: month, InMonth: true, Status: domain.DayStatusAvailable},
		}},
		PrevMonth: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		NextMonth: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCache_SetGet(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	key := Key{
		WorkerID:  3,
		Month:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		ServiceID: ptr.Ptr(int64(10)),
		Today:     time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
	}

	_, err := cache.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, cache.Set(ctx, key, sampleView()))
	assert.True(t, mr.Exists("calendar:3:2024-06"))
	assert.Equal(t, time.Minute, mr.TTL("calendar:3:2024-06"))

	got, err := cache.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, domain.DayStatusAvailable, got.Weeks[0][0].Status)
	assert.True(t, got.NextMonth.Equal(sampleView().NextMonth))

	// Другой день - другой вариант календаря
	key.Today = key.Today.AddDate(0, 0, 1)
	_, err = cache.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestCache_InvalidateMonth(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()
	month := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, cache.Set(ctx, Key{WorkerID: 3, Month: month, Today: today}, sampleView()))
	require.NoError(t, cache.Set(ctx, Key{WorkerID: 3, Month: month, ServiceID: ptr.Ptr(int64(1)), Today: today}, sampleView()))
	require.NoError(t, cache.Set(ctx, Key{WorkerID: 4, Month: month, Today: today}, sampleView()))

	require.NoError(t, cache.InvalidateMonth(ctx, 3, time.Date(2024, 6, 21, 0, 0, 0, 0, time.UTC)))

	assert.False(t, mr.Exists("calendar:3:2024-06"))
	assert.True(t, mr.Exists("calendar:4:2024-06"))
}

func TestCache_RedisDown(t *testing.T) {
	cache, mr := newCache(t)
	mr.Close()

	_, err := cache.Get(context.Background(), Key{WorkerID: 1, Month: time.Now()})
	assert.ErrorIs(t, err, ErrCache)
}
