package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates the domain events published to Kafka.
type EventType string

const (
	EventTypeBookingConfirmed EventType = "BOOKING_CONFIRMED"
	EventTypeBookingCancelled EventType = "BOOKING_CANCELLED"
	EventTypeRefundInitiated  EventType = "REFUND_INITIATED"
	EventTypeRefundProcessing EventType = "REFUND_PROCESSING"
	EventTypeRefundCompleted  EventType = "REFUND_COMPLETED"
	EventTypeRefundFailed     EventType = "REFUND_FAILED"
	EventTypeRefundOverdue    EventType = "REFUND_OVERDUE"
)

// Event is the message body published for booking and refund state changes.
// Consumers (email, SMS, back-office dashboards) live outside this service.
type Event struct {
	ID         uuid.UUID              `json:"id"`
	Type       EventType              `json:"type"`
	BookingID  uuid.UUID              `json:"booking_id"`
	UserID     uuid.UUID              `json:"user_id,omitempty"`
	RefundID   *uuid.UUID             `json:"refund_id,omitempty"`
	Amount     float64                `json:"amount,omitempty"`
	Data       map[string]interface{} `json:"data,omitempty"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// NewEvent builds an event with a fresh ID and timestamp.
func NewEvent(eventType EventType, bookingID, userID uuid.UUID) *Event {
	return &Event{
		ID:         uuid.New(),
		Type:       eventType,
		BookingID:  bookingID,
		UserID:     userID,
		OccurredAt: time.Now(),
	}
}

// WithRefund attaches refund context to the event.
func (e *Event) WithRefund(refundID uuid.UUID, amount float64) *Event {
	e.RefundID = &refundID
	e.Amount = amount
	return e
}

// WithData attaches free-form payload fields.
func (e *Event) WithData(data map[string]interface{}) *Event {
	e.Data = data
	return e
}

// PartitionKey routes all events of one booking to the same partition so
// consumers see them in order.
func (e *Event) PartitionKey() string {
	return e.BookingID.String()
}

func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func EventFromJSON(data []byte) (*Event, error) {
	var event Event
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}
