package loginevent

import (
	"time"

	"github.com/google/uuid"
)

// LoginEvent is one successful authentication, kept to derive behavioral
// baselines.
type LoginEvent struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	IdentityKey   string    `json:"identity_key" gorm:"index"`
	SourceAddress string    `json:"source_address"`
	UserAgent     string    `json:"user_agent"`
	OccurredAt    time.Time `json:"occurred_at" gorm:"index"`
}

func (e LoginEvent) TableName() string {
	return "public.login_events"
}

func New(identityKey, sourceAddress, userAgent string, at time.Time) *LoginEvent {
	return &LoginEvent{
		ID:            uuid.New(),
		IdentityKey:   identityKey,
		SourceAddress: sourceAddress,
		UserAgent:     userAgent,
		OccurredAt:    at,
	}
}
