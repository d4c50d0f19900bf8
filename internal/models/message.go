package models

import (
	"time"

	"github.com/google/uuid"
)

type MessagePriority string

const (
	MessagePriorityNormal MessagePriority = "normal"
	MessagePriorityMedium MessagePriority = "medium"
	MessagePriorityHigh   MessagePriority = "high"
)

type Message struct {
	ID             string          `json:"id"`
	FromFacilityID string          `json:"from_facility_id"`
	ToFacilityID   string          `json:"to_facility_id"`
	Body           string          `json:"message"`
	Priority       MessagePriority `json:"priority"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`

	// Populated by joined queries.
	FromFacility string `json:"from_facility,omitempty"`
	ToFacility   string `json:"to_facility,omitempty"`
}

func NewMessage(fromFacilityID, toFacilityID, body string, priority MessagePriority) *Message {
	if priority == "" {
		priority = MessagePriorityNormal
	}
	return &Message{
		ID:             uuid.NewString(),
		FromFacilityID: fromFacilityID,
		ToFacilityID:   toFacilityID,
		Body:           body,
		Priority:       priority,
		Status:         "sent",
		CreatedAt:      time.Now(),
	}
}
