package allocator

import (
	"sort"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
	"github.com/huuphu310/rooms-management-sub000/pkg/core/rules"
)

// ReasonNoAvailableRoom marks a booking that exhausted every candidate
// room. It is reported per booking; the batch always continues.
const ReasonNoAvailableRoom = "no_available_room"

// Request is the ephemeral input for one auto-assignment run.
type Request struct {
	Range              model.DateRange
	Strategy           model.StrategyName
	RespectPreferences bool

	// AllowBlockOverride is the explicit override request; without it
	// even a block with CanOverride set suppresses its room.
	AllowBlockOverride bool

	// WearLookbackDays is the distribute_wear window ending at the
	// range start (external configuration, default 90).
	WearLookbackDays int

	// RoomTypeOrder ranks room types lowest to highest for the
	// auto_upgrade directive. Without it no upgrades are offered.
	RoomTypeOrder []string
}

// Input is the immutable snapshot an assignment run works over.
type Input struct {
	Bookings    []model.Booking
	Rooms       []model.Room
	Blocks      []model.RoomBlock
	Rules       []model.AllocationRule
	RuleContext rules.Context
}

// Result is one booking's outcome within a run.
type Result struct {
	BookingID  string
	RoomNumber string
	Assigned   bool
	Reason     string
}

// Candidate pairs a room with its rule evaluation for one booking.
// Upgrade marks rooms admitted only through the auto_upgrade
// directive.
type Candidate struct {
	Room    model.Room
	Eval    rules.Evaluation
	Upgrade bool
}

// AutoAssign proposes room assignments for every unassigned booking
// overlapping the request range. The loop is greedy and
// order-sensitive: each assignment commits to the working availability
// set before the next booking is evaluated, so results are
// deterministic given the strategy's booking order and the candidate
// comparator. Bookings that exhaust their candidates are reported, not
// dropped.
func AutoAssign(req Request, in Input) ([]Result, error) {
	strategy, err := ForName(req.Strategy)
	if err != nil {
		return nil, err
	}

	var queue, assigned []model.Booking
	for _, b := range in.Bookings {
		if b.Assigned() {
			assigned = append(assigned, b)
			continue
		}
		if b.StayRange().Overlaps(req.Range) {
			queue = append(queue, b)
		}
	}

	lookback := req.WearLookbackDays
	if lookback <= 0 {
		lookback = 90
	}
	wearWindow := model.DateRange{
		Start: req.Range.Start.AddDate(0, 0, -lookback),
		End:   req.Range.Start,
	}
	state := NewState(in.Rooms, assigned, in.Blocks, wearWindow)

	sort.SliceStable(queue, func(i, j int) bool {
		return strategy.BookingLess(queue[i], queue[j])
	})

	results := make([]Result, 0, len(queue))
	for _, booking := range queue {
		candidates := collectCandidates(state, booking, in.Rules, in.RuleContext, req)
		if len(candidates) == 0 {
			results = append(results, Result{BookingID: booking.ID, Reason: ReasonNoAvailableRoom})
			continue
		}

		sort.SliceStable(candidates, func(i, j int) bool {
			return CandidateLess(state, strategy, booking, candidates[i], candidates[j], req.RespectPreferences)
		})

		winner := candidates[0]
		state.Commit(booking, winner.Room.Number)
		results = append(results, Result{
			BookingID:  booking.ID,
			RoomNumber: winner.Room.Number,
			Assigned:   true,
		})
	}
	return results, nil
}

// collectCandidates filters the inventory down to rooms that can hold
// the booking: room-type requirement is a hard filter (widened only by
// a matching auto_upgrade directive), blocked rooms drop out unless the
// block is overridable and an override was requested, and the working
// availability set rejects slot collisions.
func collectCandidates(state *State, b model.Booking, activeRules []model.AllocationRule, ctx rules.Context, req Request) []Candidate {
	var candidates []Candidate
	for _, room := range state.Rooms {
		if !state.CanHold(room.Number, b, req.AllowBlockOverride) {
			continue
		}

		eval := rules.Apply(b, room, activeRules, ctx)

		typeOK := b.RoomType == "" || room.Type == b.RoomType
		upgrade := false
		if !typeOK && eval.Actions.AutoUpgrade && isUpgrade(req.RoomTypeOrder, b.RoomType, room.Type) {
			typeOK = true
			upgrade = true
		}
		if !typeOK {
			continue
		}

		candidates = append(candidates, Candidate{Room: room, Eval: eval, Upgrade: upgrade})
	}
	return candidates
}

// CandidateLess is the named candidate ordering: higher rule priority
// first, then (when preferences are respected) rooms matching the
// rules' soft directives, then required-type rooms over upgrades, then
// the strategy's own ranking, then room number ascending. Directives
// only reorder; a directive nothing satisfies simply stops
// influencing the sort.
func CandidateLess(s *State, strategy Strategy, b model.Booking, x, y Candidate, respectPrefs bool) bool {
	if x.Eval.PriorityDelta != y.Eval.PriorityDelta {
		return x.Eval.PriorityDelta > y.Eval.PriorityDelta
	}

	if respectPrefs {
		px, py := preferenceScore(x), preferenceScore(y)
		if px != py {
			return px > py
		}
	}

	if x.Upgrade != y.Upgrade {
		return !x.Upgrade
	}

	if strategy.RoomLess(s, b, x.Room, y.Room) != strategy.RoomLess(s, b, y.Room, x.Room) {
		return strategy.RoomLess(s, b, x.Room, y.Room)
	}

	return ByRoomNumber(x.Room, y.Room)
}

func preferenceScore(c Candidate) int {
	score := 0
	if c.Eval.Actions.AssignRoomType != "" && c.Room.Type == c.Eval.Actions.AssignRoomType {
		score++
	}
	if c.Eval.Actions.PreferFloor != nil && c.Room.Floor == *c.Eval.Actions.PreferFloor {
		score++
	}
	return score
}

func isUpgrade(order []string, from, to string) bool {
	fromIdx, toIdx := -1, -1
	for i, t := range order {
		if t == from {
			fromIdx = i
		}
		if t == to {
			toIdx = i
		}
	}
	return fromIdx >= 0 && toIdx > fromIdx
}

// AvailableRoomsFor lists the room numbers that could hold the booking
// right now, honoring type requirement, blocks, and current occupancy.
// Triage uses it to attach candidate rooms to unassigned bookings.
func AvailableRoomsFor(b model.Booking, rooms []model.Room, bookings []model.Booking, blocks []model.RoomBlock) []string {
	var assigned []model.Booking
	for _, other := range bookings {
		if other.Assigned() {
			assigned = append(assigned, other)
		}
	}
	state := NewState(rooms, assigned, blocks, model.DateRange{})

	var available []string
	for _, room := range rooms {
		if b.RoomType != "" && room.Type != b.RoomType {
			continue
		}
		if state.CanHold(room.Number, b, false) {
			available = append(available, room.Number)
		}
	}
	sort.Strings(available)
	return available
}
