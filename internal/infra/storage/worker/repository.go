package worker

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

var workerColumns = []string{
	"id",
	"full_name",
	"role",
	"bio",
	"is_active",
	"working_hours_start",
	"working_hours_end",
	"created_at",
	"updated_at",
}

// Repository репозиторий мастеров
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория мастеров
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает мастера по ID (в том числе неактивного)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Worker, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workerColumns...).
		From("workers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	worker, err := scanWorker(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrWorkerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan worker: %v", ErrScanRow, err)
	}

	return worker, nil
}

// ListActive возвращает активных мастеров, отсортированных по имени
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Worker, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workerColumns...).
		From("workers").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("full_name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	workers := make([]*domain.Worker, 0)
	for rows.Next() {
		worker, err := scanWorker(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan worker: %v", ErrScanRow, err)
		}
		workers = append(workers, worker)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows iteration: %v", ErrScanRow, err)
	}

	return workers, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWorker(row rowScanner) (*domain.Worker, error) {
	var worker domain.Worker
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&worker.ID,
		&worker.FullName,
		&worker.Role,
		&worker.Bio,
		&worker.IsActive,
		&worker.WorkingHoursStart,
		&worker.WorkingHoursEnd,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	worker.CreatedAt = createdAt.Time
	worker.UpdatedAt = updatedAt.Time

	return &worker, nil
}
