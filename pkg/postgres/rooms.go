package postgres

import (
	"context"
	"fmt"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
)

// GetRooms retrieves the full room inventory ordered by room number.
func (db *DB) GetRooms(ctx context.Context) ([]model.Room, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT number, floor, room_type, features
		FROM rooms
		ORDER BY number
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rooms: %w", err)
	}
	defer rows.Close()

	var rooms []model.Room
	for rows.Next() {
		var r model.Room
		if err := rows.Scan(&r.Number, &r.Floor, &r.Type, &r.Features); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rooms: %w", err)
	}
	return rooms, nil
}
