package allocator

import (
	"fmt"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
)

// Strategy is a named room-ranking policy. Each strategy defines a
// total ordering over candidate rooms for a booking plus the order in
// which the booking queue is processed. Both orderings must be
// deterministic; every RoomLess implementation ends in the
// ByRoomNumber tie-break so repeated runs agree.
type Strategy interface {
	Name() model.StrategyName

	// BookingLess orders the processing queue; earlier bookings are
	// assigned first and may consume rooms later ones wanted.
	BookingLess(a, b model.Booking) bool

	// RoomLess reports whether room x ranks ahead of room y as the
	// assignment target for the booking.
	RoomLess(s *State, b model.Booking, x, y model.Room) bool
}

// ForName resolves a strategy by its enumerated name.
func ForName(name model.StrategyName) (Strategy, error) {
	switch name {
	case model.StrategyOptimizeOccupancy:
		return &OptimizeOccupancy{}, nil
	case model.StrategyVIPFirst:
		return &VIPFirst{}, nil
	case model.StrategyGroupByType:
		return &GroupByType{}, nil
	case model.StrategyDistributeWear:
		return &DistributeWear{}, nil
	}
	return nil, fmt.Errorf("unknown assignment strategy %q", name)
}

// ByRoomNumber is the deterministic final tie-break shared by every
// strategy: room number ascending.
func ByRoomNumber(a, b model.Room) bool {
	return a.Number < b.Number
}

// ByCheckIn orders bookings by check-in instant ascending with booking
// ID as the tie-break.
func ByCheckIn(a, b model.Booking) bool {
	if !a.CheckIn.Equal(b.CheckIn) {
		return a.CheckIn.Before(b.CheckIn)
	}
	return a.ID < b.ID
}
