package models

import "testing"

func TestNewFacility_Defaults(t *testing.T) {
	f := NewFacility("chicago-hub", "Chicago Hub", "Chicago, IL", FacilityTypeHub)
	if f == nil {
		t.Fatal("expected non-nil facility")
	}
	if f.Status != "active" {
		t.Errorf("expected default status 'active', got %q", f.Status)
	}
	if f.MaxCapacity != 1000 {
		t.Errorf("expected default max capacity 1000, got %d", f.MaxCapacity)
	}
	if f.Name != "Chicago Hub" {
		t.Errorf("expected name 'Chicago Hub', got %q", f.Name)
	}
}

func TestFacility_Utilization(t *testing.T) {
	f := &Facility{MaxCapacity: 2000, CurrentLoad: 1200}
	if got := f.Utilization(); got != 0.6 {
		t.Errorf("expected utilization 0.6, got %v", got)
	}

	// Zero capacity must not divide by zero
	f = &Facility{MaxCapacity: 0, CurrentLoad: 100}
	if got := f.Utilization(); got != 0 {
		t.Errorf("expected utilization 0 for zero capacity, got %v", got)
	}
}

func TestNewFacilityMetrics(t *testing.T) {
	m := NewFacilityMetrics("chicago-hub", 10, 0.8, EquipmentOperational)
	if m == nil {
		t.Fatal("expected non-nil metrics")
	}
	if m.FacilityID != "chicago-hub" {
		t.Errorf("expected facility id 'chicago-hub', got %q", m.FacilityID)
	}
	if m.StaffingLevel != 10 {
		t.Errorf("expected staffing level 10, got %d", m.StaffingLevel)
	}
	if m.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
}

func TestNewAlert_DefaultSeverity(t *testing.T) {
	a := NewAlert("chicago-hub", "equipment_down", "Equipment down at Chicago Hub", "")
	if a == nil {
		t.Fatal("expected non-nil alert")
	}
	if a.Severity != AlertSeverityInfo {
		t.Errorf("expected default severity info, got %q", a.Severity)
	}
	if a.ID == "" {
		t.Error("expected generated alert ID")
	}
	if a.Resolved {
		t.Error("new alert should not be resolved")
	}
}

func TestNewMessage_Defaults(t *testing.T) {
	m := NewMessage("chicago-hub", "denver-station", "Reroute overflow volume", "")
	if m == nil {
		t.Fatal("expected non-nil message")
	}
	if m.Priority != MessagePriorityNormal {
		t.Errorf("expected default priority normal, got %q", m.Priority)
	}
	if m.Status != "sent" {
		t.Errorf("expected status 'sent', got %q", m.Status)
	}
	if m.ID == "" {
		t.Error("expected generated message ID")
	}
}
