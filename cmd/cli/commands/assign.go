package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
	"github.com/huuphu310/rooms-management-sub000/pkg/core/services"
)

// AssignCmd creates the assign command
func AssignCmd(app func() *AppContext) *cobra.Command {
	var (
		fromStr        string
		toStr          string
		strategyStr    string
		dryRun         bool
		respectPrefs   bool
		overrideBlocks bool
	)

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Auto-assign rooms to unassigned bookings",
		Long:  "Run the greedy assignment resolver over a date range with the chosen strategy",
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

			strategy := model.StrategyName(strategyStr)
			if strategyStr != "" && !strategy.IsValid() {
				return fmt.Errorf("unknown strategy %q", strategyStr)
			}

			a.Logger.Debug("assign command",
				zap.String("strategy", strategyStr),
				zap.Bool("dry_run", dryRun))

			result, err := services.AutoAssign(a.Ctx, a.Database, a.Cfg, a.Logger, services.AutoAssignOptions{
				Range:              model.DateRange{Start: from, End: to},
				Strategy:           strategy,
				RespectPreferences: respectPrefs,
				AllowBlockOverride: overrideBlocks,
				DryRun:             dryRun,
			})
			if err != nil {
				return fmt.Errorf("assignment failed: %w", err)
			}

			fmt.Printf("\nAssignment run (%s)\n", result.Strategy)
			if result.DryRun {
				fmt.Println("Mode: DRY RUN (not saved)")
			}
			fmt.Printf("Assigned: %d  Unassigned: %d\n\n", result.AssignedCount, result.FailedCount)

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Booking", "Room", "Outcome"})
			for _, r := range result.Results {
				outcome := "assigned"
				room := r.RoomNumber
				if !r.Assigned {
					outcome = r.Reason
					room = "-"
				}
				t.AppendRow(table.Row{r.BookingID, room, outcome})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVar(&fromStr, "from", "", "Range start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&toStr, "to", "", "Range end date, exclusive (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&strategyStr, "strategy", "s", "", "Strategy: optimize_occupancy, vip_first, group_by_type, distribute_wear (default from config)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute proposals without saving them")
	cmd.Flags().BoolVar(&respectPrefs, "respect-preferences", true, "Honor rule directives as soft preferences")
	cmd.Flags().BoolVar(&overrideBlocks, "override-blocks", false, "Allow assignment into overridable blocks")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	return cmd
}
