package triage

import (
	"fmt"
	"sort"
	"time"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
)

// Thresholds for alert classification, in hours until check-in.
const (
	criticalBelowHours = 1.0
	warningBelowHours  = 24.0
)

// UnassignedBooking is a booking lacking a room assignment, decorated
// with the urgency fields the triage pass computes. It is derived on
// demand and becomes stale the moment an assignment happens; callers
// recompute rather than patch.
type UnassignedBooking struct {
	Booking           model.Booking
	HoursUntilCheckIn float64
	AlertLevel        model.AlertLevel
	AvailableRooms    []string
}

// Result is a ranked triage pass over the unassigned bookings.
type Result struct {
	Bookings        []UnassignedBooking
	CriticalCount   int
	WarningCount    int
	InfoCount       int
	Recommendations []string
}

// NewUnassigned seeds a triage entry from a booking and the room
// numbers currently available for it.
func NewUnassigned(b model.Booking, availableRooms []string) UnassignedBooking {
	return UnassignedBooking{Booking: b, AvailableRooms: availableRooms}
}

// Classify maps hours-until-check-in to an alert level. Overdue
// (negative) values are still critical, never an error state.
func Classify(hours float64) model.AlertLevel {
	switch {
	case hours < criticalBelowHours:
		return model.AlertCritical
	case hours < warningBelowHours:
		return model.AlertWarning
	default:
		return model.AlertInfo
	}
}

// Less is the triage ranking comparator: critical before warning before
// info, soonest check-in first within a tier, booking ID as the final
// tie-break so repeated sorts over the same input are identical.
func Less(a, b UnassignedBooking) bool {
	if ra, rb := tierRank(a.AlertLevel), tierRank(b.AlertLevel); ra != rb {
		return ra < rb
	}
	if !a.Booking.CheckIn.Equal(b.Booking.CheckIn) {
		return a.Booking.CheckIn.Before(b.Booking.CheckIn)
	}
	return a.Booking.ID < b.Booking.ID
}

func tierRank(level model.AlertLevel) int {
	switch level {
	case model.AlertCritical:
		return 0
	case model.AlertWarning:
		return 1
	default:
		return 2
	}
}

// Triage classifies the pending bookings by time until check-in and
// returns them ranked most urgent first, together with deterministic
// operator recommendations derived from the tier counts.
func Triage(bookings []UnassignedBooking, now time.Time) Result {
	result := Result{Bookings: make([]UnassignedBooking, 0, len(bookings))}

	noRoomCount := 0
	for _, ub := range bookings {
		ub.HoursUntilCheckIn = ub.Booking.CheckIn.Sub(now).Hours()
		ub.AlertLevel = Classify(ub.HoursUntilCheckIn)
		switch ub.AlertLevel {
		case model.AlertCritical:
			result.CriticalCount++
		case model.AlertWarning:
			result.WarningCount++
		default:
			result.InfoCount++
		}
		if len(ub.AvailableRooms) == 0 {
			noRoomCount++
		}
		result.Bookings = append(result.Bookings, ub)
	}

	sort.SliceStable(result.Bookings, func(i, j int) bool {
		return Less(result.Bookings[i], result.Bookings[j])
	})

	result.Recommendations = recommendations(result.CriticalCount, result.WarningCount, len(bookings), noRoomCount)
	return result
}

// recommendations is pure text generation from counts; no lookups and
// no randomness so repeated runs over the same snapshot agree.
func recommendations(critical, warning, total, noRoom int) []string {
	var recs []string
	if critical > 0 {
		recs = append(recs, fmt.Sprintf("%d critical %s immediate assignment",
			critical, pluralize(critical, "booking needs", "bookings need")))
	}
	if warning > 0 {
		recs = append(recs, fmt.Sprintf("%d %s in within 24 hours",
			warning, pluralize(warning, "booking checks", "bookings check")))
	}
	if noRoom > 0 {
		recs = append(recs, fmt.Sprintf("%d %s no available room of the required type",
			noRoom, pluralize(noRoom, "booking has", "bookings have")))
	}
	if total > 0 {
		recs = append(recs, fmt.Sprintf("%d %s awaiting room assignment in total",
			total, pluralize(total, "booking", "bookings")))
	}
	return recs
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
