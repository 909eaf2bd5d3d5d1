package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
	"github.com/huuphu310/rooms-management-sub000/pkg/core/services"
)

// BlockCmd creates the block command and its subcommands
func BlockCmd(app func() *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Manage room blocks",
	}
	cmd.AddCommand(blockCreateCmd(app), blockReleaseCmd(app))
	return cmd
}

func blockCreateCmd(app func() *AppContext) *cobra.Command {
	var (
		room        string
		fromStr     string
		toStr       string
		blockType   string
		reason      string
		canOverride bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Block a room for a date range",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()

			from, err := time.Parse("2006-01-02", fromStr)
			if err != nil {
				return fmt.Errorf("invalid --from date: %w", err)
			}
			to, err := time.Parse("2006-01-02", toStr)
			if err != nil {
				return fmt.Errorf("invalid --to date: %w", err)
			}

			bl, err := services.CreateBlock(a.Ctx, a.Database, a.Logger, services.CreateBlockInput{
				RoomNumber:  room,
				Start:       from,
				End:         to,
				Type:        model.BlockType(blockType),
				Reason:      reason,
				CanOverride: canOverride,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Blocked room %s from %s to %s (%s)\nBlock ID: %s\n",
				bl.RoomNumber, bl.Start.Format("2006-01-02"), bl.End.Format("2006-01-02"),
				bl.Type, bl.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&room, "room", "r", "", "Room number to block")
	cmd.Flags().StringVar(&fromStr, "from", "", "Block start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "Block end date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&blockType, "type", "t", string(model.BlockMaintenance), "Block type")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason for the block")
	cmd.Flags().BoolVar(&canOverride, "can-override", false, "Allow assignment to override this block")
	cmd.MarkFlagRequired("room")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}

func blockReleaseCmd(app func() *AppContext) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:   "release <block-id>",
		Short: "Release an active block early",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()

			if err := services.ReleaseBlock(a.Ctx, a.Database, a.Logger, args[0], reason); err != nil {
				return err
			}
			fmt.Printf("Released block %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reason for releasing the block")
	cmd.MarkFlagRequired("reason")
	return cmd
}
