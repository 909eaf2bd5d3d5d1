package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
)

// GetActiveBlocks retrieves all blocks that have not been released.
func (db *DB) GetActiveBlocks(ctx context.Context) ([]model.RoomBlock, error) {
	rows, err := db.pool.Query(ctx, `
		SELECT id, room_number, start_date, end_date, block_type, reason,
			can_override, released_at, release_reason
		FROM room_blocks
		WHERE released_at IS NULL
		ORDER BY room_number, start_date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query room blocks: %w", err)
	}
	defer rows.Close()

	var blocks []model.RoomBlock
	for rows.Next() {
		var bl model.RoomBlock
		var blockType string
		if err := rows.Scan(&bl.ID, &bl.RoomNumber, &bl.Start, &bl.End, &blockType,
			&bl.Reason, &bl.CanOverride, &bl.ReleasedAt, &bl.ReleaseReason); err != nil {
			return nil, fmt.Errorf("failed to scan room block: %w", err)
		}
		bl.Type = model.BlockType(blockType)
		blocks = append(blocks, bl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating room blocks: %w", err)
	}
	return blocks, nil
}

// InsertBlock persists a new room block.
func (db *DB) InsertBlock(ctx context.Context, bl model.RoomBlock) error {
	_, err := db.pool.Exec(ctx, `
		INSERT INTO room_blocks (id, room_number, start_date, end_date, block_type, reason, can_override)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, bl.ID, bl.RoomNumber, bl.Start, bl.End, string(bl.Type), bl.Reason, bl.CanOverride)
	if err != nil {
		return fmt.Errorf("failed to insert room block: %w", err)
	}
	return nil
}

// ReleaseBlock soft-deletes a block with a release reason. The row is
// kept for the audit trail.
func (db *DB) ReleaseBlock(ctx context.Context, id, reason string, releasedAt time.Time) error {
	tag, err := db.pool.Exec(ctx, `
		UPDATE room_blocks
		SET released_at = $2, release_reason = $3
		WHERE id = $1 AND released_at IS NULL
	`, id, releasedAt, reason)
	if err != nil {
		return fmt.Errorf("failed to release room block %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("room block %s not found or already released", id)
	}
	return nil
}
