package repository

import (
	"context"
	"fmt"

	"github.com/jmartens/go-logistics/internal/models"
)

func (s *SQLiteDB) ListActiveRoutes(ctx context.Context) ([]models.Route, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, from_facility_id, to_facility_id, distance_miles, estimated_time_hours, status
		FROM routes
		WHERE status = 'active'
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("error listing routes: %w", err)
	}
	defer rows.Close()

	var routes []models.Route
	for rows.Next() {
		var r models.Route
		err := rows.Scan(&r.ID, &r.FromFacilityID, &r.ToFacilityID, &r.DistanceMiles, &r.EstimatedTimeHours, &r.Status)
		if err != nil {
			return nil, fmt.Errorf("error scanning route: %w", err)
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}
