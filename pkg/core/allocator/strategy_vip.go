package allocator

import "github.com/huuphu310/rooms-management-sub000/pkg/core/model"

// VIPFirst assigns VIP bookings before non-VIP regardless of check-in
// time, then falls back to the optimize_occupancy ordering within each
// tier for both the queue and the room ranking.
type VIPFirst struct {
	inner OptimizeOccupancy
}

func (VIPFirst) Name() model.StrategyName {
	return model.StrategyVIPFirst
}

func (v VIPFirst) BookingLess(a, b model.Booking) bool {
	if a.VIP != b.VIP {
		return a.VIP
	}
	return v.inner.BookingLess(a, b)
}

func (v VIPFirst) RoomLess(s *State, b model.Booking, x, y model.Room) bool {
	return v.inner.RoomLess(s, b, x, y)
}
