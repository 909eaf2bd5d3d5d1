package allocator

import (
	"time"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
)

// slotMask tracks which part of a room-date is taken. Day and night
// shift bookings occupy different slots and coexist; traditional and
// full-day bookings take both.
type slotMask uint8

const (
	slotDay slotMask = 1 << iota
	slotNight
)

const slotFull = slotDay | slotNight

func slotsFor(shift model.ShiftType) slotMask {
	switch shift {
	case model.ShiftDay:
		return slotDay
	case model.ShiftNight:
		return slotNight
	default:
		return slotFull
	}
}

// State is the working room-availability set for a single assignment
// run. The greedy loop commits each assignment here before evaluating
// the next booking, so a later booking never takes a room-date a
// previous one already claimed in the same run.
type State struct {
	Rooms []model.Room

	roomsByNumber map[string]model.Room
	blocksByRoom  map[string][]model.RoomBlock
	occupied      map[string]map[string]slotMask
	wear          map[string]int

	// commit bookkeeping for the group_by_type strategy
	committedRoomsByType map[string][]string
	floorTypeCommits     map[int]map[string]int
}

// NewState builds the snapshot state from immutable inputs. Assigned
// bookings seed the occupancy map; wear counts each room's occupied
// nights inside the lookback window.
func NewState(rooms []model.Room, assigned []model.Booking, blocks []model.RoomBlock, wearWindow model.DateRange) *State {
	s := &State{
		Rooms:                rooms,
		roomsByNumber:        make(map[string]model.Room, len(rooms)),
		blocksByRoom:         make(map[string][]model.RoomBlock),
		occupied:             make(map[string]map[string]slotMask),
		wear:                 make(map[string]int),
		committedRoomsByType: make(map[string][]string),
		floorTypeCommits:     make(map[int]map[string]int),
	}
	for _, r := range rooms {
		s.roomsByNumber[r.Number] = r
	}
	for _, bl := range blocks {
		if bl.Active() {
			s.blocksByRoom[bl.RoomNumber] = append(s.blocksByRoom[bl.RoomNumber], bl)
		}
	}
	for _, b := range assigned {
		if !b.Assigned() {
			continue
		}
		s.occupy(b.RoomNumber, b.StayRange(), slotsFor(b.Shift))
		for _, d := range b.StayRange().Days() {
			if wearWindow.Contains(d) {
				s.wear[b.RoomNumber]++
			}
		}
	}
	return s
}

// Room looks up reference data by room number.
func (s *State) Room(number string) (model.Room, bool) {
	r, ok := s.roomsByNumber[number]
	return r, ok
}

// CanHold reports whether the room can take the booking's stay: no slot
// collision on any night and no active block on any overlapping date,
// unless the block allows overrides and an override was explicitly
// requested.
func (s *State) CanHold(roomNumber string, b model.Booking, allowOverride bool) bool {
	stay := b.StayRange()

	for _, bl := range s.blocksByRoom[roomNumber] {
		if !bl.OverlapsRange(stay) {
			continue
		}
		if !(allowOverride && bl.CanOverride) {
			return false
		}
	}

	want := slotsFor(b.Shift)
	for _, d := range stay.Days() {
		if s.occupied[roomNumber][dateKey(d)]&want != 0 {
			return false
		}
	}
	return true
}

// Commit records an assignment in the working availability set.
func (s *State) Commit(b model.Booking, roomNumber string) {
	s.occupy(roomNumber, b.StayRange(), slotsFor(b.Shift))

	key := typeKey(b)
	s.committedRoomsByType[key] = append(s.committedRoomsByType[key], roomNumber)
	if room, ok := s.roomsByNumber[roomNumber]; ok {
		if s.floorTypeCommits[room.Floor] == nil {
			s.floorTypeCommits[room.Floor] = make(map[string]int)
		}
		s.floorTypeCommits[room.Floor][key]++
	}
}

// Wear returns the room's occupied nights inside the lookback window,
// used by the distribute_wear strategy.
func (s *State) Wear(roomNumber string) int {
	return s.wear[roomNumber]
}

// FragmentGaps counts the single-night availability gaps that
// assigning the stay to the room would strand at its boundaries. Fewer
// gaps means less fragmented inventory.
func (s *State) FragmentGaps(roomNumber string, stay model.DateRange) int {
	gaps := 0
	before := stay.Start.AddDate(0, 0, -1)
	if s.dateFree(roomNumber, before) && !s.dateFree(roomNumber, before.AddDate(0, 0, -1)) {
		gaps++
	}
	after := stay.End
	if s.dateFree(roomNumber, after) && !s.dateFree(roomNumber, after.AddDate(0, 0, 1)) {
		gaps++
	}
	return gaps
}

// AdjacentOccupiedNights counts how many of the stay's two boundary
// nights already border committed occupancy, for packing stays tightly.
func (s *State) AdjacentOccupiedNights(roomNumber string, stay model.DateRange) int {
	adjacent := 0
	if !s.dateFree(roomNumber, stay.Start.AddDate(0, 0, -1)) {
		adjacent++
	}
	if !s.dateFree(roomNumber, stay.End) {
		adjacent++
	}
	return adjacent
}

// FloorCommits returns how many bookings of the given type key were
// committed to the floor during this run.
func (s *State) FloorCommits(floor int, key string) int {
	return s.floorTypeCommits[floor][key]
}

// LastCommittedRoom returns the most recent room committed for the
// type key, or "" when none was.
func (s *State) LastCommittedRoom(key string) string {
	committed := s.committedRoomsByType[key]
	if len(committed) == 0 {
		return ""
	}
	return committed[len(committed)-1]
}

func (s *State) occupy(roomNumber string, rng model.DateRange, slots slotMask) {
	if s.occupied[roomNumber] == nil {
		s.occupied[roomNumber] = make(map[string]slotMask)
	}
	for _, d := range rng.Days() {
		s.occupied[roomNumber][dateKey(d)] |= slots
	}
}

func (s *State) dateFree(roomNumber string, d time.Time) bool {
	if s.occupied[roomNumber][dateKey(d)] != 0 {
		return false
	}
	for _, bl := range s.blocksByRoom[roomNumber] {
		if bl.Covers(d) {
			return false
		}
	}
	return true
}

func dateKey(d time.Time) string {
	return d.Format("2006-01-02")
}

// typeKey is the grouping key for group_by_type: the declared room-type
// requirement, falling back to guest type for bookings without one.
func typeKey(b model.Booking) string {
	if b.RoomType != "" {
		return b.RoomType
	}
	return b.GuestType
}

// OccupancyPercent computes the property-wide occupancy over a date
// range: occupied room-nights out of total room-nights. It feeds the
// occupancy rule type; the window is the range being assigned.
func OccupancyPercent(rooms []model.Room, bookings []model.Booking, rng model.DateRange) float64 {
	totalNights := len(rooms) * rng.Nights()
	if totalNights == 0 {
		return 0
	}
	occupiedNights := 0
	for _, b := range bookings {
		if !b.Assigned() {
			continue
		}
		for _, d := range b.StayRange().Days() {
			if rng.Contains(d) {
				occupiedNights++
			}
		}
	}
	return 100 * float64(occupiedNights) / float64(totalNights)
}
