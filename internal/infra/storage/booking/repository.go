package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBooking/pkg/psqlbuilder"
)

const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
)

var bookingColumns = []string{
	"id",
	"worker_id",
	"service_id",
	"booking_date",
	"start_time",
	"phone",
	"email",
	"reminder_sent_at",
	"created_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Уникальный индекс (worker_id, booking_date, start_time) - окончательный арбитр
// при гонке двух запросов на одно время: нарушение возвращается как ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"worker_id",
			"service_id",
			"booking_date",
			"start_time",
			"phone",
			"email",
		).
		Values(
			booking.WorkerID,
			booking.ServiceID,
			domain.DateKey(booking.Date),
			booking.StartTime,
			booking.Phone,
			booking.Email,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		if IsSlotTaken(err) {
			return nil, fmt.Errorf("%w: worker=%d date=%s time=%s",
				ErrSlotTaken, booking.WorkerID, domain.DateKey(booking.Date), booking.StartTime)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// ListByWorkerAndDate возвращает все записи мастера на дату, отсортированные по времени.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы проверка конфликта
// и вставка видели одно и то же состояние дня.
func (r *Repository) ListByWorkerAndDate(ctx context.Context, workerID int64, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"worker_id": workerID, "booking_date": domain.DateKey(date)}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByWorkerAndDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListByWorkerAndDate", query, args)
}

// ListByWorkerInRange возвращает записи мастера за период [StartDate, EndDate] включительно
func (r *Repository) ListByWorkerInRange(ctx context.Context, filter domain.BookingsInRangeFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"worker_id": filter.WorkerID}).
		Where(squirrel.GtOrEq{"booking_date": domain.DateKey(filter.StartDate)}).
		Where(squirrel.LtOrEq{"booking_date": domain.DateKey(filter.EndDate)}).
		OrderBy("booking_date ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByWorkerInRange - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListByWorkerInRange", query, args)
}

// ListPendingReminders возвращает записи всех мастеров за период [from, to] по дате,
// для которых напоминание еще не отправлялось
func (r *Repository) ListPendingReminders(ctx context.Context, from, to time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"reminder_sent_at": nil}).
		Where(squirrel.GtOrEq{"booking_date": domain.DateKey(from)}).
		Where(squirrel.LtOrEq{"booking_date": domain.DateKey(to)}).
		OrderBy("booking_date ASC", "start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListPendingReminders - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, executor, "ListPendingReminders", query, args)
}

// MarkReminderSent отмечает, что напоминание по записи отправлено
func (r *Repository) MarkReminderSent(ctx context.Context, id int64, sentAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("reminder_sent_at", sentAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "MarkReminderSent", query, args)
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args)
}

func (r *Repository) query(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Booking, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan booking: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows iteration: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	err := row.Scan(
		&booking.ID,
		&booking.WorkerID,
		&booking.ServiceID,
		&booking.Date,
		&booking.StartTime,
		&booking.Phone,
		&booking.Email,
		&booking.ReminderSentAt,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

// IsSlotTaken true для ошибок Postgres, означающих занятый слот:
// нарушение уникальности и сбой сериализации (в том числе на COMMIT)
func IsSlotTaken(err error) bool {
	if errors.Is(err, ErrSlotTaken) {
		return true
	}
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == pgUniqueViolation || pqErr.Code == pgSerializationFailure
}
