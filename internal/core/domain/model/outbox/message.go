// Package outbox models integration messages written in the same transaction
// as the aggregate change that produced them and delivered to the broker later.
package outbox

import (
	"errors"
	"time"

	"orderprocessing/internal/core/domain/model/kernel"
	"orderprocessing/internal/pkg/errs"
)

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage or RestoreMessage constructor")

// Message is one pending or delivered integration event.
type Message struct {
	id         kernel.UUID
	topic      string
	key        string
	eventName  string
	payload    []byte
	occurredAt time.Time
	sentAt     *time.Time

	isConstructed bool
}

// NewMessage creates an unsent message. key selects the broker partition, so
// messages sharing a key keep their relative order.
func NewMessage(id kernel.UUID, topic, key, eventName string, payload []byte, occurredAt time.Time) (*Message, error) {
	var topicErr, nameErr, payloadErr error
	if topic == "" {
		topicErr = errs.NewValueIsRequiredError("topic")
	}
	if eventName == "" {
		nameErr = errs.NewValueIsRequiredError("eventName")
	}
	if len(payload) == 0 {
		payloadErr = errs.NewValueIsRequiredError("payload")
	}
	if err := errors.Join(id.Validate(), topicErr, nameErr, payloadErr); err != nil {
		return nil, err
	}

	return &Message{
		id:            id,
		topic:         topic,
		key:           key,
		eventName:     eventName,
		payload:       payload,
		occurredAt:    occurredAt.UTC(),
		isConstructed: true,
	}, nil
}

// RestoreMessage rebuilds a stored message.
func RestoreMessage(
	id kernel.UUID,
	topic, key, eventName string,
	payload []byte,
	occurredAt time.Time,
	sentAt *time.Time,
) (*Message, error) {
	m, err := NewMessage(id, topic, key, eventName, payload, occurredAt)
	if err != nil {
		return nil, err
	}
	if sentAt != nil {
		sent := sentAt.UTC()
		m.sentAt = &sent
	}
	return m, nil
}

func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

func (m *Message) ID() kernel.UUID       { return m.id }
func (m *Message) Topic() string         { return m.topic }
func (m *Message) Key() string           { return m.key }
func (m *Message) EventName() string     { return m.eventName }
func (m *Message) Payload() []byte       { return m.payload }
func (m *Message) OccurredAt() time.Time { return m.occurredAt }
func (m *Message) SentAt() *time.Time    { return m.sentAt }

// IsSent reports whether the broker acknowledged the message.
func (m *Message) IsSent() bool {
	return m.sentAt != nil
}

// MarkSent records the delivery time. Marking twice keeps the first time.
func (m *Message) MarkSent(at time.Time) {
	if m.sentAt != nil {
		return
	}
	sent := at.UTC()
	m.sentAt = &sent
}
