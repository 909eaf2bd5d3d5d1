package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/huuphu310/rooms-management-sub000/internal/config"
	"github.com/huuphu310/rooms-management-sub000/pkg/core/allocator"
	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
	"github.com/huuphu310/rooms-management-sub000/pkg/core/rules"
)

// assignMu serializes assignment runs. Each run reads then writes the
// same room-date availability, so two concurrent runs over overlapping
// ranges would race; the second caller waits and gets a fresh snapshot
// reflecting the first run's commits.
var assignMu sync.Mutex

// AutoAssignStore defines the database operations needed for an
// assignment run
type AutoAssignStore interface {
	GetRooms(ctx context.Context) ([]model.Room, error)
	GetBookings(ctx context.Context, from, to time.Time) ([]model.Booking, error)
	GetActiveBlocks(ctx context.Context) ([]model.RoomBlock, error)
	GetActiveRules(ctx context.Context) ([]model.AllocationRule, error)
	AssignRoom(ctx context.Context, bookingID, roomNumber string, preAssigned bool) error
}

// AutoAssignResult contains the per-booking outcomes of one run
type AutoAssignResult struct {
	Strategy      model.StrategyName
	Results       []allocator.Result
	AssignedCount int
	FailedCount   int
	DryRun        bool
}

// AutoAssignOptions are the caller's knobs for one run.
type AutoAssignOptions struct {
	Range              model.DateRange
	Strategy           model.StrategyName
	RespectPreferences bool
	AllowBlockOverride bool

	// DryRun computes proposals without persisting them.
	DryRun bool
}

// AutoAssign proposes and persists room assignments for the unassigned
// bookings overlapping the range. Persisted assignments are marked
// pre-assigned; confirming them is the booking system's concern.
func AutoAssign(ctx context.Context, store AutoAssignStore, cfg *config.Config, logger *zap.Logger, opts AutoAssignOptions) (*AutoAssignResult, error) {
	assignMu.Lock()
	defer assignMu.Unlock()

	strategy := opts.Strategy
	if strategy == "" {
		strategy = cfg.Strategy()
	}
	logger.Debug("Starting autoAssign",
		zap.String("strategy", string(strategy)),
		zap.Time("from", opts.Range.Start),
		zap.Time("to", opts.Range.End),
		zap.Bool("dry_run", opts.DryRun))

	// Step 1: fetch the immutable snapshot
	rooms, err := store.GetRooms(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rooms: %w", err)
	}

	// include the wear lookback so distribute_wear sees history
	lookbackStart := opts.Range.Start.AddDate(0, 0, -cfg.WearLookback())
	bookings, err := store.GetBookings(ctx, lookbackStart, opts.Range.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	logger.Debug("Fetched snapshot",
		zap.Int("rooms", len(rooms)),
		zap.Int("bookings", len(bookings)))

	blocks, err := store.GetActiveBlocks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch blocks: %w", err)
	}
	activeRules, err := store.GetActiveRules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch allocation rules: %w", err)
	}

	// Step 2: build the rule context from configuration and snapshot
	peakSeasons, err := cfg.PeakSeasonWindows(opts.Range.Start, opts.Range.End.AddDate(1, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("failed to expand peak seasons: %w", err)
	}
	ruleCtx := rules.Context{
		Now:              time.Now(),
		OccupancyPercent: allocator.OccupancyPercent(rooms, bookings, opts.Range),
		PeakSeasons:      peakSeasons,
	}

	// Step 3: run the resolver
	results, err := allocator.AutoAssign(allocator.Request{
		Range:              opts.Range,
		Strategy:           strategy,
		RespectPreferences: opts.RespectPreferences,
		AllowBlockOverride: opts.AllowBlockOverride,
		WearLookbackDays:   cfg.WearLookback(),
		RoomTypeOrder:      cfg.RoomTypeOrder,
	}, allocator.Input{
		Bookings:    bookings,
		Rooms:       rooms,
		Blocks:      blocks,
		Rules:       activeRules,
		RuleContext: ruleCtx,
	})
	if err != nil {
		return nil, err
	}

	out := &AutoAssignResult{Strategy: strategy, Results: results, DryRun: opts.DryRun}
	for _, r := range results {
		if r.Assigned {
			out.AssignedCount++
		} else {
			out.FailedCount++
		}
	}
	logger.Info("Assignment run complete",
		zap.Int("assigned", out.AssignedCount),
		zap.Int("unassigned", out.FailedCount))

	if opts.DryRun {
		return out, nil
	}

	// Step 4: persist the proposals
	for _, r := range results {
		if !r.Assigned {
			continue
		}
		if err := store.AssignRoom(ctx, r.BookingID, r.RoomNumber, true); err != nil {
			return out, fmt.Errorf("failed to persist assignment of %s: %w", r.BookingID, err)
		}
	}
	return out, nil
}
