package notification

import (
	"context"
	"fmt"
)

// BookingNotice данные записи для текстов уведомлений
type BookingNotice struct {
	BookingID   int64
	WorkerName  string
	ServiceName string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	Email       string
	Phone       string
	CancelURL   string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// EmailSender отправитель писем
type EmailSender interface {
	Enabled() bool
	Send(ctx context.Context, to, subject, body string) error
}

// SMSSender отправитель SMS
type SMSSender interface {
	Enabled() bool
	Send(ctx context.Context, to, body string) error
}

// Notifier формирует тексты уведомлений клиенту и отправляет их по доступным каналам.
// Возвращаемые ошибки информационные: вызывающий код логирует их и продолжает работу.
type Notifier struct {
	email  EmailSender
	sms    SMSSender
	logger Logger
}

// NewNotifier создает нотификатор; любой из каналов может быть nil
func NewNotifier(email EmailSender, sms SMSSender, logger Logger) *Notifier {
	return &Notifier{email: email, sms: sms, logger: logger}
}

// BookingConfirmed отправляет письмо с подтверждением и ссылкой на отмену
func (n *Notifier) BookingConfirmed(ctx context.Context, notice BookingNotice) error {
	if notice.Email == "" {
		return nil
	}

	body := fmt.Sprintf(
		"Your booking with %s is confirmed.\n\nService: %s\nDate: %s\nTime: %s\n\nNeed to cancel? Use this link: %s\n",
		notice.WorkerName, serviceName(notice), notice.Date, notice.Time, notice.CancelURL,
	)
	return n.sendEmail(ctx, "BookingConfirmed", notice, "Your salon booking is confirmed", body)
}

// BookingCancelled отправляет письмо об отмене записи
func (n *Notifier) BookingCancelled(ctx context.Context, notice BookingNotice) error {
	if notice.Email == "" {
		return nil
	}

	body := fmt.Sprintf(
		"Your booking with %s on %s at %s has been cancelled.\n\nIf you have any questions, please contact us.\n",
		notice.WorkerName, notice.Date, notice.Time,
	)
	return n.sendEmail(ctx, "BookingCancelled", notice, "Your salon booking has been cancelled", body)
}

// Reminder отправляет напоминание письмом и SMS; каналы независимы друг от друга.
// Возвращает список каналов, по которым напоминание ушло.
func (n *Notifier) Reminder(ctx context.Context, notice BookingNotice) ([]string, error) {
	sent := make([]string, 0, 2)
	var firstErr error

	if notice.Email != "" {
		body := fmt.Sprintf("Reminder: Your appointment with %s is on %s at %s.", notice.WorkerName, notice.Date, notice.Time)
		if err := n.sendEmail(ctx, "Reminder", notice, "Appointment reminder", body); err != nil {
			firstErr = err
		} else {
			sent = append(sent, ChannelEmail)
		}
	}

	if notice.Phone != "" && n.sms != nil && n.sms.Enabled() {
		body := fmt.Sprintf("Reminder: appointment %s %s with %s.", notice.Date, notice.Time, notice.WorkerName)
		if err := n.sms.Send(ctx, notice.Phone, body); err != nil {
			n.logger.Error("Reminder: failed to send sms for booking id=%d: %v", notice.BookingID, err)
			if firstErr == nil {
				firstErr = err
			}
		} else {
			n.logger.Info("Reminder: sent sms for booking id=%d", notice.BookingID)
			sent = append(sent, ChannelSMS)
		}
	}

	return sent, firstErr
}

// Каналы доставки
const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

func (n *Notifier) sendEmail(ctx context.Context, op string, notice BookingNotice, subject, body string) error {
	if n.email == nil || !n.email.Enabled() {
		n.logger.Info("%s: email channel disabled, skipping booking id=%d", op, notice.BookingID)
		return ErrDisabled
	}

	if err := n.email.Send(ctx, notice.Email, subject, body); err != nil {
		n.logger.Error("%s: failed to send email for booking id=%d: %v", op, notice.BookingID, err)
		return err
	}

	n.logger.Info("%s: sent email for booking id=%d", op, notice.BookingID)
	return nil
}

func serviceName(notice BookingNotice) string {
	if notice.ServiceName == "" {
		return "-"
	}
	return notice.ServiceName
}
