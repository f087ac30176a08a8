// Package events публикация доменных событий (заявка, контакт, платеж) в Kafka.
// Публикация best-effort: ошибка логируется вызывающей стороной и не влияет на ответ клиенту.
package events

import (
	"context"
	"time"
)

// Типы событий
const (
	TypeBookingSubmitted = "booking.submitted"
	TypeContactSubmitted = "contact.submitted"
	TypePaymentProcessed = "payment.processed"
)

// Event доменное событие
type Event struct {
	Type       string    `json:"type"`
	Key        string    `json:"-"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload"`
}

// New событие с текущим временем
func New(eventType, key string, payload any) Event {
	return Event{Type: eventType, Key: key, OccurredAt: time.Now().UTC(), Payload: payload}
}

// BookingSubmitted полезная нагрузка booking.submitted
type BookingSubmitted struct {
	BookingID string `json:"bookingId"`
	ContactID string `json:"contactId,omitempty"`
	DealID    string `json:"dealId,omitempty"`
	ArtistID  string `json:"artistId"`
	ServiceID string `json:"serviceId"`
	Date      string `json:"selectedDate"`
	Language  string `json:"language"`
}

// ContactSubmitted полезная нагрузка contact.submitted
type ContactSubmitted struct {
	Email    string `json:"email"`
	Subject  string `json:"subject"`
	Language string `json:"language"`
}

// PaymentProcessed полезная нагрузка payment.processed
type PaymentProcessed struct {
	BookingID       string `json:"bookingId"`
	PaymentID       string `json:"paymentId,omitempty"`
	PaymentMethodID string `json:"paymentMethodId"`
	Provider        string `json:"provider"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Status          string `json:"status"`
}

// Publisher публикует события
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

type nopPublisher struct{}

// NewNopPublisher издатель, который ничего не отправляет (Kafka не настроена)
func NewNopPublisher() Publisher { return nopPublisher{} }

func (nopPublisher) Publish(context.Context, Event) error { return nil }
func (nopPublisher) Close() error                         { return nil }
