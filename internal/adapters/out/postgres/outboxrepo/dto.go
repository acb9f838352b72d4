// Package outboxrepo persists outbox messages with gorm.
package outboxrepo

import (
	"time"

	"orderprocessing/internal/core/domain/model/kernel"
	"orderprocessing/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// MessageDTO is the outbox_messages row.
type MessageDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Topic      string     `gorm:"not null"`
	MessageKey string     `gorm:"not null"`
	EventName  string     `gorm:"not null"`
	Payload    []byte     `gorm:"type:jsonb;not null"`
	OccurredAt time.Time  `gorm:"not null"`
	SentAt     *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(m *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:         m.ID().Bytes(),
		Topic:      m.Topic(),
		MessageKey: m.Key(),
		EventName:  m.EventName(),
		Payload:    m.Payload(),
		OccurredAt: m.OccurredAt(),
		SentAt:     m.SentAt(),
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreMessage(id, dto.Topic, dto.MessageKey, dto.EventName, dto.Payload, dto.OccurredAt, dto.SentAt)
}
