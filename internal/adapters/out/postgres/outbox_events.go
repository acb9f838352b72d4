package postgres

import (
	"encoding/json"
	"time"

	"orderprocessing/internal/core/domain/model/order"
	"orderprocessing/internal/core/domain/model/outbox"
)

// eventSource is implemented by aggregates that record domain events.
type eventSource interface {
	DomainEvents() []order.StatusChangedEvent
	ClearDomainEvents()
}

// statusChangedPayload is the published JSON form of order.StatusChangedEvent.
type statusChangedPayload struct {
	EventID    string    `json:"eventId"`
	EventName  string    `json:"eventName"`
	OrderID    string    `json:"orderId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	OccurredAt time.Time `json:"occurredAt"`
}

// newStatusChangedMessage keys the message by order id so one order's
// changes land on one partition in order.
func newStatusChangedMessage(topic string, event order.StatusChangedEvent) (*outbox.Message, error) {
	payload, err := json.Marshal(statusChangedPayload{
		EventID:    event.ID.String(),
		EventName:  event.EventName(),
		OrderID:    event.OrderID.String(),
		From:       event.From.String(),
		To:         event.To.String(),
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return nil, err
	}

	return outbox.NewMessage(
		event.ID,
		topic,
		event.OrderID.String(),
		event.EventName(),
		payload,
		event.OccurredAt,
	)
}

