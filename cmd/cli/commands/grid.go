package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/grid"
	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
	"github.com/huuphu310/rooms-management-sub000/pkg/core/services"
)

// GridCmd creates the grid command
func GridCmd(app func() *AppContext) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Render the monthly room occupancy grid",
		Long:  "Build the per-room, per-day occupancy grid for a month and report any booking conflicts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if month == "" {
				month = time.Now().Format("2006-01")
			}
			a.Logger.Debug("grid command", zap.String("month", month))

			result, err := services.BuildGrid(a.Ctx, a.Database, a.Logger, month, time.Now())
			if err != nil {
				return fmt.Errorf("grid build failed: %w", err)
			}

			renderGrid(result.Grid)

			if len(result.Conflicts) > 0 {
				fmt.Printf("\nConflicts (%d):\n", len(result.Conflicts))
				for _, c := range result.Conflicts {
					fmt.Printf("  - %s\n", c.Error())
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Target month as YYYY-MM (default: current month)")
	return cmd
}

func renderGrid(g *grid.MonthlyGrid) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)

	header := table.Row{"Room"}
	for _, d := range g.Days {
		header = append(header, fmt.Sprintf("%02d", d.Day()))
	}
	t.AppendHeader(header)

	for _, row := range g.Rows {
		cells := table.Row{row.Room.Number}
		for _, cell := range row.Cells {
			cells = append(cells, cellGlyph(cell))
		}
		t.AppendRow(cells)
	}
	t.Render()

	fmt.Println("\n. available  A arriving  O occupied  D departing  P pre-assigned  B blocked  M maintenance  ! conflict")
}

func cellGlyph(cell grid.RoomDailyStatus) string {
	if cell.Conflict {
		return "!"
	}
	switch cell.Status {
	case model.StatusArriving:
		return "A"
	case model.StatusOccupied:
		return "O"
	case model.StatusDeparting:
		return "D"
	case model.StatusPreAssigned:
		return "P"
	case model.StatusBlocked:
		return "B"
	case model.StatusMaintenance:
		return "M"
	default:
		return "."
	}
}
