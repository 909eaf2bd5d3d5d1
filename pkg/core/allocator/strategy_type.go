package allocator

import (
	"strconv"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
)

// GroupByType processes bookings of the same declared type together
// and steers them onto the same floor, or into contiguous room
// numbers, where the inventory allows it.
type GroupByType struct{}

func (GroupByType) Name() model.StrategyName {
	return model.StrategyGroupByType
}

func (GroupByType) BookingLess(a, b model.Booking) bool {
	if ka, kb := typeKey(a), typeKey(b); ka != kb {
		return ka < kb
	}
	return ByCheckIn(a, b)
}

func (GroupByType) RoomLess(s *State, b model.Booking, x, y model.Room) bool {
	key := typeKey(b)

	// Prefer floors already holding commits of the same type this run.
	cx, cy := s.FloorCommits(x.Floor, key), s.FloorCommits(y.Floor, key)
	if cx != cy {
		return cx > cy
	}

	// Then prefer the room numerically closest to the last room the
	// type was committed to, approximating contiguous placement.
	if last := s.LastCommittedRoom(key); last != "" {
		dx, dy := numberDistance(x.Number, last), numberDistance(y.Number, last)
		if dx != dy {
			return dx < dy
		}
	}

	return ByRoomNumber(x, y)
}

// numberDistance is the absolute numeric distance between two room
// numbers, treating non-numeric numbers as maximally distant.
func numberDistance(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA != nil || errB != nil {
		return int(^uint(0) >> 1)
	}
	if na > nb {
		return na - nb
	}
	return nb - na
}
