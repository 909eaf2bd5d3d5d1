package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
)

// ErrInvalidBlockRange is returned when a block's end date precedes its
// start date. Invalid blocks are rejected at creation time.
var ErrInvalidBlockRange = errors.New("invalid block range: end before start")

// BlockStore defines the database operations for room blocks
type BlockStore interface {
	InsertBlock(ctx context.Context, bl model.RoomBlock) error
	ReleaseBlock(ctx context.Context, id, reason string, releasedAt time.Time) error
}

// CreateBlockInput is the operator's request for a new block.
type CreateBlockInput struct {
	RoomNumber  string
	Start       time.Time
	End         time.Time
	Type        model.BlockType
	Reason      string
	CanOverride bool
}

// CreateBlock validates and persists a room block. While active the
// block suppresses the room's availability for its date range.
func CreateBlock(ctx context.Context, store BlockStore, logger *zap.Logger, in CreateBlockInput) (*model.RoomBlock, error) {
	if in.End.Before(in.Start) {
		return nil, fmt.Errorf("%w: %s before %s", ErrInvalidBlockRange,
			in.End.Format("2006-01-02"), in.Start.Format("2006-01-02"))
	}
	if !in.Type.IsValid() {
		return nil, fmt.Errorf("unknown block type %q", in.Type)
	}

	bl := model.RoomBlock{
		ID:          uuid.NewString(),
		RoomNumber:  in.RoomNumber,
		Start:       model.DateOf(in.Start),
		End:         model.DateOf(in.End),
		Type:        in.Type,
		Reason:      in.Reason,
		CanOverride: in.CanOverride,
	}
	if err := store.InsertBlock(ctx, bl); err != nil {
		return nil, err
	}

	logger.Info("Created room block",
		zap.String("id", bl.ID),
		zap.String("room", bl.RoomNumber),
		zap.String("type", string(bl.Type)))
	return &bl, nil
}

// ReleaseBlock soft-deletes a block with an explicit release reason.
func ReleaseBlock(ctx context.Context, store BlockStore, logger *zap.Logger, id, reason string) error {
	if reason == "" {
		return fmt.Errorf("release reason is required")
	}
	if err := store.ReleaseBlock(ctx, id, reason, time.Now()); err != nil {
		return err
	}
	logger.Info("Released room block", zap.String("id", id), zap.String("reason", reason))
	return nil
}
