package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
)

const bookingColumns = `id, guest_name, guest_type, vip, check_in, check_out,
	shift, room_type, room_number, pre_assigned, total_amount, paid_amount, special_requests`

// GetBookings retrieves every booking whose stay overlaps [from, to).
func (db *DB) GetBookings(ctx context.Context, from, to time.Time) ([]model.Booking, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE check_in < $2 AND check_out > $1
		ORDER BY id
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetUnassignedBookings retrieves bookings that do not hold a room yet.
func (db *DB) GetUnassignedBookings(ctx context.Context) ([]model.Booking, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE room_number IS NULL
		ORDER BY check_in, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query unassigned bookings: %w", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// AssignRoom records a room assignment for a booking. PreAssigned marks
// assignments proposed by the auto-assigner but not yet confirmed.
func (db *DB) AssignRoom(ctx context.Context, bookingID, roomNumber string, preAssigned bool) error {
	tag, err := db.pool.Exec(ctx, `
		UPDATE bookings
		SET room_number = $2, pre_assigned = $3
		WHERE id = $1
	`, bookingID, roomNumber, preAssigned)
	if err != nil {
		return fmt.Errorf("failed to assign room to booking %s: %w", bookingID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID)
	}
	return nil
}

type bookingRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanBookings(rows bookingRows) ([]model.Booking, error) {
	var bookings []model.Booking
	for rows.Next() {
		var b model.Booking
		var roomNumber *string
		var shift string
		if err := rows.Scan(&b.ID, &b.GuestName, &b.GuestType, &b.VIP, &b.CheckIn, &b.CheckOut,
			&shift, &b.RoomType, &roomNumber, &b.PreAssigned,
			&b.TotalAmount, &b.PaidAmount, &b.SpecialRequests); err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		b.Shift = model.ShiftType(shift)
		if roomNumber != nil {
			b.RoomNumber = *roomNumber
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bookings: %w", err)
	}
	return bookings, nil
}
