package allocator

import "github.com/huuphu310/rooms-management-sub000/pkg/core/model"

// OptimizeOccupancy prefers rooms that, once filled, strand the fewest
// single-night gaps elsewhere in the inventory. Ties prefer rooms
// where the stay packs against existing occupancy.
type OptimizeOccupancy struct{}

func (OptimizeOccupancy) Name() model.StrategyName {
	return model.StrategyOptimizeOccupancy
}

func (OptimizeOccupancy) BookingLess(a, b model.Booking) bool {
	return ByCheckIn(a, b)
}

func (OptimizeOccupancy) RoomLess(s *State, b model.Booking, x, y model.Room) bool {
	stay := b.StayRange()

	gapsX, gapsY := s.FragmentGaps(x.Number, stay), s.FragmentGaps(y.Number, stay)
	if gapsX != gapsY {
		return gapsX < gapsY
	}

	adjX, adjY := s.AdjacentOccupiedNights(x.Number, stay), s.AdjacentOccupiedNights(y.Number, stay)
	if adjX != adjY {
		return adjX > adjY
	}

	return ByRoomNumber(x, y)
}
