package repository

import (
	"context"
	"fmt"
	"time"
)

type seedFacility struct {
	id, name, location, facilityType string
	maxCapacity, currentLoad         int
}

type seedRoute struct {
	id, from, to  string
	distanceMiles int
	timeHours     float64
}

var sampleFacilities = []seedFacility{
	{"chicago-hub", "Chicago Hub", "Chicago, IL", "hub", 2000, 1200},
	{"denver-station", "Denver Station", "Denver, CO", "station", 1000, 650},
	{"atlanta-hub", "Atlanta Hub", "Atlanta, GA", "hub", 2500, 1800},
	{"phoenix-station", "Phoenix Station", "Phoenix, AZ", "station", 800, 400},
	{"seattle-station", "Seattle Station", "Seattle, WA", "station", 1200, 900},
	{"miami-receiving", "Miami Receiving", "Miami, FL", "receiving_point", 500, 200},
}

var sampleRoutes = []seedRoute{
	{"route-1", "chicago-hub", "denver-station", 920, 14.5},
	{"route-2", "chicago-hub", "atlanta-hub", 720, 11.2},
	{"route-3", "denver-station", "phoenix-station", 430, 6.8},
	{"route-4", "atlanta-hub", "miami-receiving", 650, 10.1},
	{"route-5", "denver-station", "seattle-station", 870, 13.6},
}

// Seed inserts the sample network when the facilities table is empty. Safe to
// call on every startup.
func (s *SQLiteDB) Seed(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM facilities`).Scan(&count); err != nil {
		return fmt.Errorf("error counting facilities: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning seed transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	for _, f := range sampleFacilities {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO facilities (id, name, location, facility_type, status, max_capacity, current_load, created_at)
			VALUES (?, ?, ?, ?, 'active', ?, ?, ?)`,
			f.id, f.name, f.location, f.facilityType, f.maxCapacity, f.currentLoad, now)
		if err != nil {
			return fmt.Errorf("error seeding facility %s: %w", f.id, err)
		}
	}

	for _, r := range sampleRoutes {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO routes (id, from_facility_id, to_facility_id, distance_miles, estimated_time_hours, status)
			VALUES (?, ?, ?, ?, ?, 'active')`,
			r.id, r.from, r.to, r.distanceMiles, r.timeHours)
		if err != nil {
			return fmt.Errorf("error seeding route %s: %w", r.id, err)
		}
	}

	return tx.Commit()
}
