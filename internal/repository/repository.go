package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmartens/go-logistics/internal/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

type FacilityRepository interface {
	// ListActive returns active facilities joined with their latest metrics.
	ListActive(ctx context.Context) ([]models.Facility, error)
	GetByID(ctx context.Context, id string) (*models.Facility, error)
	// ListProblem returns facilities whose latest metrics within the window
	// show low productivity or degraded equipment.
	ListProblem(ctx context.Context, window time.Duration) ([]models.Facility, error)
}

type MetricsRepository interface {
	InsertMetrics(ctx context.Context, m *models.FacilityMetrics) error
	ListMetrics(ctx context.Context, facilityID string, limit int) ([]models.FacilityMetrics, error)
}

type AlertRepository interface {
	InsertAlert(ctx context.Context, a *models.Alert) error
	// ListActiveAlerts returns unresolved alerts ordered by severity
	// (critical first) then recency.
	ListActiveAlerts(ctx context.Context, limit int) ([]models.Alert, error)
	ListFacilityAlerts(ctx context.Context, facilityID string, limit int) ([]models.Alert, error)
	ResolveAlert(ctx context.Context, id string) error
	// HasRecentAlert reports whether an unresolved alert of the same type was
	// raised for the facility within the window. Used to deduplicate.
	HasRecentAlert(ctx context.Context, facilityID, alertType string, window time.Duration) (bool, error)
}

type MessageRepository interface {
	InsertMessage(ctx context.Context, m *models.Message) error
	ListRecentMessages(ctx context.Context, limit int) ([]models.Message, error)
}

type RouteRepository interface {
	ListActiveRoutes(ctx context.Context) ([]models.Route, error)
}

// Store bundles every repository plus connectivity checks. The SQLite
// implementation satisfies it; handlers and services depend on the narrower
// interfaces above.
type Store interface {
	FacilityRepository
	MetricsRepository
	AlertRepository
	MessageRepository
	RouteRepository
	Ping(ctx context.Context) error
}
