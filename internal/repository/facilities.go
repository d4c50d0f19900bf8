package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmartens/go-logistics/internal/models"
)

func (s *SQLiteDB) ListActive(ctx context.Context) ([]models.Facility, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.id, f.name, f.location, f.facility_type, f.status,
		       f.max_capacity, f.current_load, f.created_at,
		       fm.productivity_rate, fm.staffing_level, fm.equipment_status, fm.timestamp
		FROM facilities f
		LEFT JOIN facility_metrics fm ON fm.id = (
			SELECT id FROM facility_metrics
			WHERE facility_id = f.id
			ORDER BY timestamp DESC LIMIT 1
		)
		WHERE f.status = 'active'
		ORDER BY f.name`)
	if err != nil {
		return nil, fmt.Errorf("error listing facilities: %w", err)
	}
	defer rows.Close()

	var facilities []models.Facility
	for rows.Next() {
		var (
			f            models.Facility
			productivity sql.NullFloat64
			staffing     sql.NullInt64
			equipment    sql.NullString
			lastUpdated  sql.NullTime
		)
		err := rows.Scan(&f.ID, &f.Name, &f.Location, &f.Type, &f.Status,
			&f.MaxCapacity, &f.CurrentLoad, &f.CreatedAt,
			&productivity, &staffing, &equipment, &lastUpdated)
		if err != nil {
			return nil, fmt.Errorf("error scanning facility: %w", err)
		}
		applyLatestMetrics(&f, productivity, staffing, equipment, lastUpdated)
		facilities = append(facilities, f)
	}
	return facilities, rows.Err()
}

func (s *SQLiteDB) GetByID(ctx context.Context, id string) (*models.Facility, error) {
	var f models.Facility
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, location, facility_type, status, max_capacity, current_load, created_at
		FROM facilities WHERE id = ?`, id).
		Scan(&f.ID, &f.Name, &f.Location, &f.Type, &f.Status, &f.MaxCapacity, &f.CurrentLoad, &f.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error getting facility %s: %w", id, err)
	}
	return &f, nil
}

func (s *SQLiteDB) ListProblem(ctx context.Context, window time.Duration) ([]models.Facility, error) {
	cutoff := time.Now().Add(-window)
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.id, f.name, f.location, f.facility_type, f.status,
		       f.max_capacity, f.current_load, f.created_at,
		       fm.productivity_rate, fm.staffing_level, fm.equipment_status, fm.timestamp
		FROM facilities f
		JOIN facility_metrics fm ON fm.facility_id = f.id
		WHERE fm.timestamp > ?
		AND (fm.productivity_rate < 0.8 OR fm.equipment_status IN ('Down', 'Maintenance'))
		AND fm.id = (
			SELECT id FROM facility_metrics
			WHERE facility_id = f.id
			ORDER BY timestamp DESC LIMIT 1
		)`, cutoff)
	if err != nil {
		return nil, fmt.Errorf("error listing problem facilities: %w", err)
	}
	defer rows.Close()

	var facilities []models.Facility
	for rows.Next() {
		var (
			f            models.Facility
			productivity sql.NullFloat64
			staffing     sql.NullInt64
			equipment    sql.NullString
			lastUpdated  sql.NullTime
		)
		err := rows.Scan(&f.ID, &f.Name, &f.Location, &f.Type, &f.Status,
			&f.MaxCapacity, &f.CurrentLoad, &f.CreatedAt,
			&productivity, &staffing, &equipment, &lastUpdated)
		if err != nil {
			return nil, fmt.Errorf("error scanning problem facility: %w", err)
		}
		applyLatestMetrics(&f, productivity, staffing, equipment, lastUpdated)
		facilities = append(facilities, f)
	}
	return facilities, rows.Err()
}

func applyLatestMetrics(f *models.Facility, productivity sql.NullFloat64, staffing sql.NullInt64, equipment sql.NullString, lastUpdated sql.NullTime) {
	if productivity.Valid {
		f.ProductivityRate = &productivity.Float64
	}
	if staffing.Valid {
		level := int(staffing.Int64)
		f.StaffingLevel = &level
	}
	if equipment.Valid {
		status := models.EquipmentStatus(equipment.String)
		f.EquipmentStatus = &status
	}
	if lastUpdated.Valid {
		f.LastUpdated = &lastUpdated.Time
	}
}
