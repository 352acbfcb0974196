package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-SalonBooking/internal/usecase/send_reminders"
)

// ErrInvalidSchedule возвращается для некорректного cron-выражения
var ErrInvalidSchedule = errors.New("jobs: invalid cron schedule")

// ReminderRunner один прогон рассылки напоминаний
type ReminderRunner interface {
	Execute(ctx context.Context) (*send_reminders.Result, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// ReminderScheduler запускает рассылку напоминаний по расписанию в часовом поясе салона.
// Следующий прогон пропускается, если предыдущий еще не завершился.
type ReminderScheduler struct {
	cron    *cron.Cron
	runner  ReminderRunner
	timeout time.Duration
	logger  Logger
}

// NewReminderScheduler создает планировщик; schedule - стандартное выражение из 5 полей или дескриптор (@hourly, @every 15m)
func NewReminderScheduler(runner ReminderRunner, schedule string, loc *time.Location, timeout time.Duration, logger Logger) (*ReminderScheduler, error) {
	if loc == nil {
		loc = time.Local
	}

	cl := cronLogger{logger: logger}
	s := &ReminderScheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		runner:  runner,
		timeout: timeout,
		logger:  logger,
	}

	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, schedule, err)
	}

	return s, nil
}

// Start запускает планировщик в фоне
func (s *ReminderScheduler) Start() {
	s.logger.Info("ReminderScheduler: started, next run at %s", s.NextRun().Format(time.RFC3339))
	s.cron.Start()
}

// Stop останавливает планировщик и ждет завершения текущего прогона или отмены ctx
func (s *ReminderScheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("ReminderScheduler: stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NextRun время следующего запуска
func (s *ReminderScheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	if !entries[0].Next.IsZero() {
		return entries[0].Next
	}
	// До Start расписание считается от текущего времени в зоне салона,
	// иначе стандартный парсер берет time.Local
	return entries[0].Schedule.Next(time.Now().In(s.cron.Location()))
}

// RunOnce выполняет один прогон с таймаутом
func (s *ReminderScheduler) RunOnce(ctx context.Context) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.runner.Execute(ctx)
	if err != nil {
		s.logger.Error("ReminderScheduler: run failed: %v", err)
		return
	}
	s.logger.Info("ReminderScheduler: run finished, sent=%d, failed=%d", result.Sent, result.Failed)
}

// cronLogger адаптер printf-логгера к cron.Logger
type cronLogger struct {
	logger Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	// Служебные сообщения cron (schedule, wake, run) слишком частые для info
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("ReminderScheduler: %s: %v %v", msg, err, keysAndValues)
}
