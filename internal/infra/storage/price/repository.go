package price

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

var priceColumns = []string{
	"id",
	"worker_id",
	"service_id",
	"price",
	"duration_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий персональных цен и длительностей мастеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByWorkerAndService получает настройку для пары (мастер, услуга)
func (r *Repository) GetByWorkerAndService(ctx context.Context, workerID, serviceID int64) (*domain.WorkerServicePrice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(priceColumns...).
		From("worker_service_prices").
		Where(squirrel.Eq{"worker_id": workerID, "service_id": serviceID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByWorkerAndService - build select query: %v", ErrBuildQuery, err)
	}

	price, err := scanPrice(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPriceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByWorkerAndService - scan price: %v", ErrScanRow, err)
	}

	return price, nil
}

// ListByWorker возвращает все настройки мастера
func (r *Repository) ListByWorker(ctx context.Context, workerID int64) ([]*domain.WorkerServicePrice, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(priceColumns...).
		From("worker_service_prices").
		Where(squirrel.Eq{"worker_id": workerID}).
		OrderBy("service_id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByWorker - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByWorker - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	prices := make([]*domain.WorkerServicePrice, 0)
	for rows.Next() {
		price, err := scanPrice(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByWorker - scan price: %v", ErrScanRow, err)
		}
		prices = append(prices, price)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByWorker - rows iteration: %v", ErrScanRow, err)
	}

	return prices, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPrice(row rowScanner) (*domain.WorkerServicePrice, error) {
	var price domain.WorkerServicePrice
	var createdAt, updatedAt sql.NullTime

	// NUMERIC(8,2) сканируется в decimal.Decimal без потери точности
	err := row.Scan(
		&price.ID,
		&price.WorkerID,
		&price.ServiceID,
		&price.Price,
		&price.DurationMinutes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	price.CreatedAt = createdAt.Time
	price.UpdatedAt = updatedAt.Time

	return &price, nil
}
