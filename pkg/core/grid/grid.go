package grid

import (
	"fmt"
	"sort"
	"time"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
)

// RoomDailyStatus is the immutable snapshot of one room on one calendar
// date. Grids are recomputed, never patched, when bookings change.
type RoomDailyStatus struct {
	RoomNumber  string
	Date        time.Time
	Status      model.RoomStatus
	Shift       model.ShiftType
	Occupancy   Occupancy
	GuestName   string
	VIP         bool
	Arrival     bool
	Departure   bool
	BlockReason string
	Today       bool
	Conflict    bool
}

// RoomRow is one room's cells across the month.
type RoomRow struct {
	Room  model.Room
	Cells []RoomDailyStatus
}

// MonthlyGrid is the full per-room, per-day occupancy picture.
type MonthlyGrid struct {
	Month time.Time
	Days  []time.Time
	Rows  []RoomRow
}

// GridConflict reports two incompatible bookings on the same room-date.
// Conflicts are collected during the build and the colliding cells are
// marked; the build itself never aborts.
type GridConflict struct {
	RoomNumber string
	Date       time.Time
	BookingIDs []string
}

func (c GridConflict) Error() string {
	return fmt.Sprintf("room %s on %s: conflicting bookings %v",
		c.RoomNumber, c.Date.Format("2006-01-02"), c.BookingIDs)
}

// BuildMonthlyGrid derives one status record per room and calendar day
// of the target month ("YYYY-MM"). Precedence per cell, highest wins:
// active block > shift occupancy > plain occupancy > available. The
// today timestamp only tags cells for UI highlighting.
func BuildMonthlyGrid(
	rooms []model.Room,
	bookings []model.Booking,
	blocks []model.RoomBlock,
	month string,
	today time.Time,
) (*MonthlyGrid, []GridConflict, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid month %q (want YYYY-MM): %w", month, err)
	}
	next := first.AddDate(0, 1, 0)

	days := make([]time.Time, 0, 31)
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	// Index assigned bookings and active blocks by room up front.
	byRoom := make(map[string][]model.Booking)
	for _, b := range bookings {
		if b.Assigned() {
			byRoom[b.RoomNumber] = append(byRoom[b.RoomNumber], b)
		}
	}
	blocksByRoom := make(map[string][]model.RoomBlock)
	for _, bl := range blocks {
		if bl.Active() {
			blocksByRoom[bl.RoomNumber] = append(blocksByRoom[bl.RoomNumber], bl)
		}
	}

	g := &MonthlyGrid{Month: first, Days: days}
	var conflicts []GridConflict

	for _, room := range rooms {
		row := RoomRow{Room: room, Cells: make([]RoomDailyStatus, 0, len(days))}
		for _, day := range days {
			cell, conflict := buildCell(room, day, byRoom[room.Number], blocksByRoom[room.Number])
			cell.Today = sameDate(day, today)
			if conflict != nil {
				conflicts = append(conflicts, *conflict)
			}
			row.Cells = append(row.Cells, cell)
		}
		g.Rows = append(g.Rows, row)
	}

	return g, conflicts, nil
}

func buildCell(room model.Room, day time.Time, bookings []model.Booking, blocks []model.RoomBlock) (RoomDailyStatus, *GridConflict) {
	cell := RoomDailyStatus{
		RoomNumber: room.Number,
		Date:       day,
		Status:     model.StatusAvailable,
		Occupancy:  Empty{},
	}

	// Any booking checking out on this date flags a departure even when
	// the cell is otherwise free or re-occupied by the next guest.
	for _, b := range bookings {
		if sameDate(b.CheckOut, day) {
			cell.Departure = true
		}
	}

	// Blocks win over everything else on the date they cover.
	for _, bl := range blocks {
		if bl.Covers(day) {
			cell.Occupancy = Blocked{Block: bl}
			cell.BlockReason = bl.Reason
			if bl.Type == model.BlockMaintenance || bl.Type == model.BlockDeepClean {
				cell.Status = model.StatusMaintenance
			} else {
				cell.Status = model.StatusBlocked
			}
			return cell, nil
		}
	}

	occupants := occupantsOn(bookings, day)
	if len(occupants) == 0 {
		if cell.Departure {
			cell.Status = model.StatusDeparting
		}
		return cell, nil
	}

	occ, conflictIDs := resolveOccupancy(occupants)
	cell.Occupancy = occ
	cell.Shift = ShiftOf(occ)

	if defining := Occupant(occ); defining != nil {
		cell.GuestName = defining.GuestName
		cell.VIP = defining.VIP
		cell.Arrival = sameDate(defining.CheckIn, day)
		switch {
		case defining.PreAssigned:
			cell.Status = model.StatusPreAssigned
		case cell.Arrival:
			cell.Status = model.StatusArriving
		default:
			cell.Status = model.StatusOccupied
		}
	}

	if len(conflictIDs) > 0 {
		cell.Conflict = true
		return cell, &GridConflict{RoomNumber: room.Number, Date: day, BookingIDs: conflictIDs}
	}
	return cell, nil
}

// sameDate compares calendar dates by their components, so timestamps
// carrying different locations still match on the same civil day.
func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func occupantsOn(bookings []model.Booking, day time.Time) []model.Booking {
	var occupants []model.Booking
	for _, b := range bookings {
		if b.OccupiesDate(day) {
			occupants = append(occupants, b)
		}
	}
	// Deterministic resolution order regardless of input order.
	sort.Slice(occupants, func(i, j int) bool { return occupants[i].ID < occupants[j].ID })
	return occupants
}

// resolveOccupancy folds the occupants of one room-date into the tagged
// variant. One day-shift plus one night-shift coexist; any combination
// involving a traditional or full-day booking alongside another
// occupant, or two bookings in the same shift slot, is a conflict. The
// conflicting cell keeps the first occupant by booking ID so nothing is
// silently dropped from the grid.
func resolveOccupancy(occupants []model.Booking) (Occupancy, []string) {
	var whole, dayShift, nightShift []model.Booking
	for _, b := range occupants {
		switch b.Shift {
		case model.ShiftDay:
			dayShift = append(dayShift, b)
		case model.ShiftNight:
			nightShift = append(nightShift, b)
		default:
			// traditional, full_day, and untagged bookings take the
			// whole date
			whole = append(whole, b)
		}
	}

	valid := (len(whole) == 1 && len(dayShift) == 0 && len(nightShift) == 0) ||
		(len(whole) == 0 && len(dayShift) <= 1 && len(nightShift) <= 1)

	var occ Occupancy
	switch {
	case len(whole) > 0:
		occ = Traditional{Booking: whole[0]}
	default:
		s := Shifted{}
		if len(dayShift) > 0 {
			b := dayShift[0]
			s.Day = &b
		}
		if len(nightShift) > 0 {
			b := nightShift[0]
			s.Night = &b
		}
		occ = s
	}

	if valid {
		return occ, nil
	}
	ids := make([]string, 0, len(occupants))
	for _, b := range occupants {
		ids = append(ids, b.ID)
	}
	return occ, ids
}
