package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

const (
	defaultPrefix = "calendar"
	defaultTTL    = 5 * time.Minute
)

// Key адрес календаря в кэше. Все варианты месяца мастера лежат в одном hash,
// поэтому инвалидация месяца - одна команда DEL.
type Key struct {
	WorkerID  int64
	Month     time.Time
	ServiceID *int64
	Today     time.Time
}

// Cache кэш построенных календарей в Redis
type Cache struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// NewCache создает кэш; ttl <= 0 заменяется значением по умолчанию
func NewCache(rdb redis.UniversalClient, prefix string, ttl time.Duration) *Cache {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultPrefix
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{rdb: rdb, prefix: prefix, ttl: ttl}
}

// Get возвращает закэшированный календарь или ErrCacheMiss
func (c *Cache) Get(ctx context.Context, key Key) (*domain.MonthView, error) {
	raw, err := c.rdb.HGet(ctx, c.monthKey(key.WorkerID, key.Month), field(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get: %v", ErrCache, err)
	}

	var view domain.MonthView
	if err := json.Unmarshal(raw, &view); err != nil {
		return nil, fmt.Errorf("%w: Get - decode: %v", ErrCache, err)
	}
	return &view, nil
}

// Set сохраняет календарь и продлевает TTL месяца
func (c *Cache) Set(ctx context.Context, key Key, view *domain.MonthView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("%w: Set - encode: %v", ErrCache, err)
	}

	monthKey := c.monthKey(key.WorkerID, key.Month)
	_, err = c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, monthKey, field(key), raw)
		pipe.Expire(ctx, monthKey, c.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: Set: %v", ErrCache, err)
	}
	return nil
}

// InvalidateMonth удаляет все календари мастера за месяц, в который попадает date
func (c *Cache) InvalidateMonth(ctx context.Context, workerID int64, date time.Time) error {
	if err := c.rdb.Del(ctx, c.monthKey(workerID, date)).Err(); err != nil {
		return fmt.Errorf("%w: InvalidateMonth: %v", ErrCache, err)
	}
	return nil
}

func (c *Cache) monthKey(workerID int64, month time.Time) string {
	return fmt.Sprintf("%s:%d:%s", c.prefix, workerID, month.Format(domain.MonthFormat))
}

// field статус "past" зависит от текущего дня, поэтому он входит в ключ
func field(key Key) string {
	service := "none"
	if key.ServiceID != nil {
		service = strconv.FormatInt(*key.ServiceID, 10)
	}
	return service + ":" + key.Today.Format(domain.DateFormat)
}
