package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Типы событий жизненного цикла записи
const (
	TypeBookingCreated   = "booking.created"
	TypeBookingCancelled = "booking.cancelled"
)

// ErrPublish возвращается при ошибке публикации
var ErrPublish = errors.New("events: publish failed")

// BookingPayload данные записи в событии
type BookingPayload struct {
	BookingID int64  `json:"bookingId"`
	WorkerID  int64  `json:"workerId"`
	ServiceID *int64 `json:"serviceId,omitempty"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

// Envelope конверт события
type Envelope struct {
	EventID    string         `json:"eventId"`
	EventType  string         `json:"eventType"`
	OccurredAt time.Time      `json:"occurredAt"`
	Booking    BookingPayload `json:"booking"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Config параметры Kafka; пустой список брокеров отключает публикацию
type Config struct {
	Brokers      string
	Topic        string
	WriteTimeout time.Duration
}

// Publisher публикует события записей в Kafka. Ключ сообщения - id мастера,
// чтобы события одного мастера попадали в одну партицию по порядку.
type Publisher struct {
	writer messageWriter
	topic  string
	now    func() time.Time
}

// NewPublisher создает публикатор; при пустом списке брокеров Publish ничего не делает
func NewPublisher(cfg Config) *Publisher {
	brokers := SplitBrokers(cfg.Brokers)
	if len(brokers) == 0 {
		return &Publisher{topic: cfg.Topic, now: time.Now}
	}

	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafka.Hash{},
			WriteTimeout: cfg.WriteTimeout,
			RequiredAcks: kafka.RequireOne,
		},
		topic: cfg.Topic,
		now:   time.Now,
	}
}

// Enabled true, если брокеры настроены
func (p *Publisher) Enabled() bool {
	return p != nil && p.writer != nil
}

// Publish отправляет событие eventType по записи
func (p *Publisher) Publish(ctx context.Context, eventType string, booking BookingPayload) error {
	if !p.Enabled() {
		return nil
	}

	envelope := Envelope{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: p.now().UTC(),
		Booking:    booking,
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPublish, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(booking.WorkerID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(envelope.EventID)},
			{Key: "event_type", Value: []byte(eventType)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, eventType, err)
	}
	return nil
}

// Close закрывает writer
func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}

// SplitBrokers разбирает список брокеров через запятую
func SplitBrokers(raw string) []string {
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
