package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/allocator"
	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
	"github.com/huuphu310/rooms-management-sub000/pkg/core/triage"
)

// TriageStore defines the database operations needed for triage
type TriageStore interface {
	GetRooms(ctx context.Context) ([]model.Room, error)
	GetBookings(ctx context.Context, from, to time.Time) ([]model.Booking, error)
	GetUnassignedBookings(ctx context.Context) ([]model.Booking, error)
	GetActiveBlocks(ctx context.Context) ([]model.RoomBlock, error)
}

// TriageBookings classifies the unassigned bookings by urgency and
// attaches the room numbers currently able to take each one. The
// result is a fresh computation over a snapshot; it is stale as soon
// as any assignment lands.
func TriageBookings(ctx context.Context, store TriageStore, logger *zap.Logger, now time.Time) (*triage.Result, error) {
	logger.Debug("Starting triage", zap.Time("now", now))

	// Step 1: fetch the snapshot
	unassigned, err := store.GetUnassignedBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unassigned bookings: %w", err)
	}
	logger.Debug("Fetched unassigned bookings", zap.Int("count", len(unassigned)))

	if len(unassigned) == 0 {
		result := triage.Triage(nil, now)
		return &result, nil
	}

	rooms, err := store.GetRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}
	blocks, err := store.GetActiveBlocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocks: %w", err)
	}

	// Step 2: bound the assigned-booking fetch by the stays under triage
	from, to := unassigned[0].CheckIn, unassigned[0].CheckOut
	for _, b := range unassigned[1:] {
		if b.CheckIn.Before(from) {
			from = b.CheckIn
		}
		if b.CheckOut.After(to) {
			to = b.CheckOut
		}
	}
	assigned, err := store.GetBookings(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	// Step 3: classify and rank
	entries := make([]triage.UnassignedBooking, 0, len(unassigned))
	for _, b := range unassigned {
		available := allocator.AvailableRoomsFor(b, rooms, assigned, blocks)
		entries = append(entries, triage.NewUnassigned(b, available))
	}

	result := triage.Triage(entries, now)
	logger.Debug("Triage complete",
		zap.Int("critical", result.CriticalCount),
		zap.Int("warning", result.WarningCount),
		zap.Int("info", result.InfoCount))
	return &result, nil
}
