package allocator

import "github.com/huuphu310/rooms-management-sub000/pkg/core/model"

// DistributeWear prefers the room with the fewest cumulative occupied
// nights inside the lookback window, spreading usage evenly across the
// inventory.
type DistributeWear struct{}

func (DistributeWear) Name() model.StrategyName {
	return model.StrategyDistributeWear
}

func (DistributeWear) BookingLess(a, b model.Booking) bool {
	return ByCheckIn(a, b)
}

func (DistributeWear) RoomLess(s *State, b model.Booking, x, y model.Room) bool {
	wx, wy := s.Wear(x.Number), s.Wear(y.Number)
	if wx != wy {
		return wx < wy
	}
	return ByRoomNumber(x, y)
}
