package models

import (
	"time"

	"github.com/google/uuid"
)

type AlertSeverity string

const (
	AlertSeverityInfo     AlertSeverity = "info"
	AlertSeverityWarning  AlertSeverity = "warning"
	AlertSeverityCritical AlertSeverity = "critical"
)

type Alert struct {
	ID         string        `json:"id"`
	FacilityID string        `json:"facility_id"`
	Type       string        `json:"alert_type"`
	Message    string        `json:"message"`
	Severity   AlertSeverity `json:"severity"`
	Resolved   bool          `json:"resolved"`
	CreatedAt  time.Time     `json:"created_at"`

	// Populated by joined queries.
	FacilityName string `json:"facility_name,omitempty"`
}

func NewAlert(facilityID, alertType, message string, severity AlertSeverity) *Alert {
	if severity == "" {
		severity = AlertSeverityInfo
	}
	return &Alert{
		ID:         uuid.NewString(),
		FacilityID: facilityID,
		Type:       alertType,
		Message:    message,
		Severity:   severity,
		CreatedAt:  time.Now(),
	}
}
