package grid

import (
	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
)

// Occupancy is the tagged variant occupying a room-date. Exactly one
// variant applies per cell, which makes the illegal combinations
// (traditional plus a shift booking on the same date) unrepresentable
// in the grid itself; collisions in the input surface as GridConflicts
// during the build instead.
type Occupancy interface {
	occupancy()
}

// Empty marks a room-date with no booking and no block.
type Empty struct{}

// Traditional is a plain full-day occupancy by a single booking.
type Traditional struct {
	Booking model.Booking
}

// Shifted holds the two partial-day slots. Either pointer may be nil;
// a day-shift and a night-shift booking coexist without conflict.
type Shifted struct {
	Day   *model.Booking
	Night *model.Booking
}

// Blocked marks a room-date suppressed by an active operator block.
type Blocked struct {
	Block model.RoomBlock
}

func (Empty) occupancy()       {}
func (Traditional) occupancy() {}
func (Shifted) occupancy()     {}
func (Blocked) occupancy()     {}

// Occupant returns the booking that defines the cell's guest-facing
// fields: the traditional booking, or the day slot, or the night slot.
func Occupant(o Occupancy) *model.Booking {
	switch v := o.(type) {
	case Traditional:
		b := v.Booking
		return &b
	case Shifted:
		if v.Day != nil {
			return v.Day
		}
		return v.Night
	}
	return nil
}

// ShiftOf derives the cell's shift-type attribute from its occupancy.
// A whole-date occupancy keeps its booking's own label, so a full_day
// booking reads as full_day rather than traditional. A Shifted cell
// with both slots filled reads as full_day coverage even when the
// slots hold two distinct bookings.
func ShiftOf(o Occupancy) model.ShiftType {
	switch v := o.(type) {
	case Traditional:
		if v.Booking.Shift == model.ShiftFullDay {
			return model.ShiftFullDay
		}
		return model.ShiftTraditional
	case Shifted:
		switch {
		case v.Day != nil && v.Night != nil:
			return model.ShiftFullDay
		case v.Day != nil:
			return model.ShiftDay
		case v.Night != nil:
			return model.ShiftNight
		}
	}
	return ""
}
