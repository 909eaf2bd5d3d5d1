package commands

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/services"
)

// TriageCmd creates the triage command
func TriageCmd(app func() *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "triage",
		Short: "Rank unassigned bookings by urgency",
		Long:  "Classify bookings without a room into critical/warning/info tiers and list available rooms for each",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()

			result, err := services.TriageBookings(a.Ctx, a.Database, a.Logger, time.Now())
			if err != nil {
				return fmt.Errorf("triage failed: %w", err)
			}

			if len(result.Bookings) == 0 {
				fmt.Println("No unassigned bookings.")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Alert", "Booking", "Guest", "Check-in", "Hours", "Type", "Available rooms"})
			for _, ub := range result.Bookings {
				rooms := strings.Join(ub.AvailableRooms, ", ")
				if rooms == "" {
					rooms = "none"
				}
				guest := ub.Booking.GuestName
				if ub.Booking.VIP {
					guest += " (VIP)"
				}
				t.AppendRow(table.Row{
					string(ub.AlertLevel),
					ub.Booking.ID,
					guest,
					ub.Booking.CheckIn.Format("2006-01-02 15:04"),
					fmt.Sprintf("%.1f", ub.HoursUntilCheckIn),
					ub.Booking.RoomType,
					rooms,
				})
			}
			t.Render()

			fmt.Println()
			for _, rec := range result.Recommendations {
				fmt.Printf("  • %s\n", rec)
			}
			return nil
		},
	}
}
