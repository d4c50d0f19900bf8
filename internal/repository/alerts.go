package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmartens/go-logistics/internal/models"
)

func (s *SQLiteDB) InsertAlert(ctx context.Context, a *models.Alert) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alerts (id, facility_id, alert_type, message, severity, resolved, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.FacilityID, a.Type, a.Message, string(a.Severity), a.Resolved, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting alert %s: %w", a.ID, err)
	}
	return nil
}

func (s *SQLiteDB) ListActiveAlerts(ctx context.Context, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT a.id, a.facility_id, a.alert_type, a.message, a.severity, a.resolved, a.created_at, f.name
		FROM alerts a
		JOIN facilities f ON a.facility_id = f.id
		WHERE a.resolved = 0
		ORDER BY
			CASE a.severity
				WHEN 'critical' THEN 1
				WHEN 'warning' THEN 2
				ELSE 3
			END,
			a.created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing active alerts: %w", err)
	}
	defer rows.Close()

	return scanAlerts(rows, true)
}

func (s *SQLiteDB) ListFacilityAlerts(ctx context.Context, facilityID string, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, facility_id, alert_type, message, severity, resolved, created_at
		FROM alerts
		WHERE facility_id = ?
		ORDER BY created_at DESC
		LIMIT ?`, facilityID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing alerts for %s: %w", facilityID, err)
	}
	defer rows.Close()

	return scanAlerts(rows, false)
}

func (s *SQLiteDB) ResolveAlert(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE alerts SET resolved = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("error resolving alert %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking resolve result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteDB) HasRecentAlert(ctx context.Context, facilityID, alertType string, window time.Duration) (bool, error) {
	cutoff := time.Now().Add(-window)
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM alerts
		WHERE facility_id = ? AND alert_type = ? AND resolved = 0 AND created_at > ?`,
		facilityID, alertType, cutoff).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("error checking recent alerts: %w", err)
	}
	return count > 0, nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanAlerts(rows rowScanner, withFacilityName bool) ([]models.Alert, error) {
	var alerts []models.Alert
	for rows.Next() {
		var a models.Alert
		var err error
		if withFacilityName {
			err = rows.Scan(&a.ID, &a.FacilityID, &a.Type, &a.Message, &a.Severity, &a.Resolved, &a.CreatedAt, &a.FacilityName)
		} else {
			err = rows.Scan(&a.ID, &a.FacilityID, &a.Type, &a.Message, &a.Severity, &a.Resolved, &a.CreatedAt)
		}
		if err != nil {
			return nil, fmt.Errorf("error scanning alert: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
