package repository

import (
	"context"
	"fmt"

	"github.com/jmartens/go-logistics/internal/models"
)

func (s *SQLiteDB) InsertMessage(ctx context.Context, m *models.Message) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages (id, from_facility_id, to_facility_id, message, priority, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.FromFacilityID, m.ToFacilityID, m.Body, string(m.Priority), m.Status, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("error inserting message %s: %w", m.ID, err)
	}
	return nil
}

func (s *SQLiteDB) ListRecentMessages(ctx context.Context, limit int) ([]models.Message, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT m.id, m.from_facility_id, m.to_facility_id, m.message, m.priority, m.status, m.created_at,
		       f1.name, f2.name
		FROM messages m
		JOIN facilities f1 ON m.from_facility_id = f1.id
		JOIN facilities f2 ON m.to_facility_id = f2.id
		ORDER BY m.created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing messages: %w", err)
	}
	defer rows.Close()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		err := rows.Scan(&m.ID, &m.FromFacilityID, &m.ToFacilityID, &m.Body, &m.Priority,
			&m.Status, &m.CreatedAt, &m.FromFacility, &m.ToFacility)
		if err != nil {
			return nil, fmt.Errorf("error scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}
