package models

import "time"

type FacilityType string

const (
	FacilityTypeHub            FacilityType = "hub"
	FacilityTypeStation        FacilityType = "station"
	FacilityTypeReceivingPoint FacilityType = "receiving_point"
)

type EquipmentStatus string

const (
	EquipmentOperational     EquipmentStatus = "Operational"
	EquipmentMaintenance     EquipmentStatus = "Maintenance"
	EquipmentDown            EquipmentStatus = "Down"
	EquipmentReducedCapacity EquipmentStatus = "Reduced Capacity"
)

type Facility struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Location    string       `json:"location"`
	Type        FacilityType `json:"facility_type"`
	Status      string       `json:"status"`
	MaxCapacity int          `json:"max_capacity"`
	CurrentLoad int          `json:"current_load"`
	CreatedAt   time.Time    `json:"created_at"`

	// Latest collected metrics, populated by joined queries. Nil pointers
	// mean no metrics have been collected for the facility yet.
	ProductivityRate *float64         `json:"productivity_rate,omitempty"`
	StaffingLevel    *int             `json:"staffing_level,omitempty"`
	EquipmentStatus  *EquipmentStatus `json:"equipment_status,omitempty"`
	LastUpdated      *time.Time       `json:"last_updated,omitempty"`
}

func NewFacility(id, name, location string, facilityType FacilityType) *Facility {
	return &Facility{
		ID:          id,
		Name:        name,
		Location:    location,
		Type:        facilityType,
		Status:      "active",
		MaxCapacity: 1000,
		CreatedAt:   time.Now(),
	}
}

// Utilization returns current load as a fraction of max capacity.
func (f *Facility) Utilization() float64 {
	if f.MaxCapacity <= 0 {
		return 0
	}
	return float64(f.CurrentLoad) / float64(f.MaxCapacity)
}

type FacilityMetrics struct {
	ID               int64           `json:"id"`
	FacilityID       string          `json:"facility_id"`
	StaffingLevel    int             `json:"staffing_level"`
	ProductivityRate float64         `json:"productivity_rate"`
	EquipmentStatus  EquipmentStatus `json:"equipment_status"`
	DowntimeMinutes  int             `json:"downtime_minutes"`
	Timestamp        time.Time       `json:"timestamp"`
}

func NewFacilityMetrics(facilityID string, staffing int, productivity float64, equipment EquipmentStatus) *FacilityMetrics {
	return &FacilityMetrics{
		FacilityID:       facilityID,
		StaffingLevel:    staffing,
		ProductivityRate: productivity,
		EquipmentStatus:  equipment,
		Timestamp:        time.Now(),
	}
}
