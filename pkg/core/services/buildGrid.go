package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/grid"
	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
)

// BuildGridStore defines the database operations needed to build a grid
type BuildGridStore interface {
	GetRooms(ctx context.Context) ([]model.Room, error)
	GetBookings(ctx context.Context, from, to time.Time) ([]model.Booking, error)
	GetActiveBlocks(ctx context.Context) ([]model.RoomBlock, error)
}

// BuildGridResult contains the monthly grid and any conflicts found
type BuildGridResult struct {
	Grid      *grid.MonthlyGrid
	Conflicts []grid.GridConflict
}

// BuildGrid fetches a snapshot of rooms, bookings, and blocks and
// derives the monthly occupancy grid. Conflicts are reported in the
// result; they never abort the build.
func BuildGrid(ctx context.Context, store BuildGridStore, logger *zap.Logger, month string, now time.Time) (*BuildGridResult, error) {
	logger.Debug("Starting buildGrid", zap.String("month", month))

	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q (want YYYY-MM): %w", month, err)
	}

	// Step 1: fetch the immutable snapshot
	rooms, err := store.GetRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}
	logger.Debug("Fetched rooms", zap.Int("count", len(rooms)))

	// bookings straddling the month edges still shape its cells
	from := first.AddDate(0, 0, -1)
	to := first.AddDate(0, 1, 1)
	bookings, err := store.GetBookings(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	logger.Debug("Fetched bookings", zap.Int("count", len(bookings)))

	blocks, err := store.GetActiveBlocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocks: %w", err)
	}

	// Step 2: derive the grid
	g, conflicts, err := grid.BuildMonthlyGrid(rooms, bookings, blocks, month, now)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		logger.Warn("Grid built with conflicts", zap.Int("conflicts", len(conflicts)))
	}

	return &BuildGridResult{Grid: g, Conflicts: conflicts}, nil
}
