package repository

import (
	"context"
	"fmt"

	"github.com/jmartens/go-logistics/internal/models"
)

func (s *SQLiteDB) InsertMetrics(ctx context.Context, m *models.FacilityMetrics) error {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO facility_metrics (facility_id, staffing_level, productivity_rate, equipment_status, downtime_minutes, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)`,
		m.FacilityID, m.StaffingLevel, m.ProductivityRate, string(m.EquipmentStatus), m.DowntimeMinutes, m.Timestamp)
	if err != nil {
		return fmt.Errorf("error inserting metrics for %s: %w", m.FacilityID, err)
	}
	if id, err := res.LastInsertId(); err == nil {
		m.ID = id
	}
	return nil
}

func (s *SQLiteDB) ListMetrics(ctx context.Context, facilityID string, limit int) ([]models.FacilityMetrics, error) {
	if limit <= 0 {
		limit = 24
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, facility_id, staffing_level, productivity_rate, equipment_status, downtime_minutes, timestamp
		FROM facility_metrics
		WHERE facility_id = ?
		ORDER BY timestamp DESC
		LIMIT ?`, facilityID, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing metrics for %s: %w", facilityID, err)
	}
	defer rows.Close()

	var metrics []models.FacilityMetrics
	for rows.Next() {
		var m models.FacilityMetrics
		err := rows.Scan(&m.ID, &m.FacilityID, &m.StaffingLevel, &m.ProductivityRate,
			&m.EquipmentStatus, &m.DowntimeMinutes, &m.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("error scanning metrics: %w", err)
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}
