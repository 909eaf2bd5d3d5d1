package allocator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
	"github.com/huuphu310/rooms-management-sub000/pkg/core/rules"
)

func day(d int) time.Time {
	return time.Date(2026, time.April, d, 0, 0, 0, 0, time.UTC)
}

func rng(from, to int) model.DateRange {
	return model.DateRange{Start: day(from), End: day(to)}
}

func booking(id string, from, to int) model.Booking {
	return model.Booking{
		ID:       id,
		CheckIn:  day(from),
		CheckOut: day(to),
		RoomType: "standard",
	}
}

func stdRoom(number string, floor int) model.Room {
	return model.Room{Number: number, Floor: floor, Type: "standard"}
}

func request(strategy model.StrategyName) Request {
	return Request{Range: rng(1, 30), Strategy: strategy}
}

func resultByID(t *testing.T, results []Result, id string) Result {
	t.Helper()
	for _, r := range results {
		if r.BookingID == id {
			return r
		}
	}
	t.Fatalf("no result for booking %s", id)
	return Result{}
}

func TestAutoAssign_UnknownStrategy(t *testing.T) {
	_, err := AutoAssign(Request{Strategy: "closest_to_lift"}, Input{})
	assert.Error(t, err)
}

func TestAutoAssign_AssignsTopRankedRoom(t *testing.T) {
	in := Input{
		Bookings: []model.Booking{booking("b1", 5, 8)},
		Rooms:    []model.Room{stdRoom("103", 1), stdRoom("101", 1), stdRoom("102", 1)},
	}

	results, err := AutoAssign(request(model.StrategyOptimizeOccupancy), in)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].Assigned)
	// identical rooms fall through to the room-number tie-break
	assert.Equal(t, "101", results[0].RoomNumber)
}

func TestAutoAssign_RoomTypeIsHardFilter(t *testing.T) {
	b := booking("b1", 5, 8)
	b.RoomType = "suite"
	in := Input{
		Bookings: []model.Booking{b},
		Rooms:    []model.Room{stdRoom("101", 1), {Number: "501", Floor: 5, Type: "suite"}},
	}

	results, err := AutoAssign(request(model.StrategyOptimizeOccupancy), in)
	require.NoError(t, err)
	assert.Equal(t, "501", results[0].RoomNumber)
}

func TestAutoAssign_ReportsExhaustedBookings(t *testing.T) {
	in := Input{
		Bookings: []model.Booking{booking("b1", 5, 8), booking("b2", 5, 8)},
		Rooms:    []model.Room{stdRoom("101", 1)},
	}

	results, err := AutoAssign(request(model.StrategyOptimizeOccupancy), in)
	require.NoError(t, err)
	require.Len(t, results, 2, "exhausted bookings are reported, never dropped")

	assert.True(t, resultByID(t, results, "b1").Assigned)
	loser := resultByID(t, results, "b2")
	assert.False(t, loser.Assigned)
	assert.Equal(t, ReasonNoAvailableRoom, loser.Reason)
}

func TestAutoAssign_NeverDoubleAssignsOverlappingStays(t *testing.T) {
	in := Input{
		Bookings: []model.Booking{
			booking("b1", 5, 10),
			booking("b2", 8, 12), // overlaps b1
			booking("b3", 10, 12),
		},
		Rooms: []model.Room{stdRoom("101", 1), stdRoom("102", 1)},
	}

	results, err := AutoAssign(request(model.StrategyOptimizeOccupancy), in)
	require.NoError(t, err)

	r1, r2 := resultByID(t, results, "b1"), resultByID(t, results, "b2")
	require.True(t, r1.Assigned)
	require.True(t, r2.Assigned)
	assert.NotEqual(t, r1.RoomNumber, r2.RoomNumber)

	// b3 starts the night b1 ends, so sharing b1's room is fine
	assert.True(t, resultByID(t, results, "b3").Assigned)
}

func TestAutoAssign_DayAndNightShiftsShareARoomDate(t *testing.T) {
	dayShift := booking("day", 5, 5)
	dayShift.Shift = model.ShiftDay
	nightShift := booking("night", 5, 5)
	nightShift.Shift = model.ShiftNight

	in := Input{
		Bookings: []model.Booking{dayShift, nightShift},
		Rooms:    []model.Room{stdRoom("101", 1)},
	}

	results, err := AutoAssign(request(model.StrategyOptimizeOccupancy), in)
	require.NoError(t, err)
	assert.True(t, resultByID(t, results, "day").Assigned)
	assert.True(t, resultByID(t, results, "night").Assigned)
}

func TestAutoAssign_BlockedRoomExcluded(t *testing.T) {
	block := model.RoomBlock{
		ID: "blk", RoomNumber: "101", Start: day(6), End: day(7),
		Type: model.BlockMaintenance, CanOverride: false,
	}
	in := Input{
		Bookings: []model.Booking{booking("b1", 5, 8)},
		Rooms:    []model.Room{stdRoom("101", 1)},
		Blocks:   []model.RoomBlock{block},
	}

	results, err := AutoAssign(request(model.StrategyOptimizeOccupancy), in)
	require.NoError(t, err)
	assert.False(t, results[0].Assigned)
}

func TestAutoAssign_OverridableBlockNeedsExplicitRequest(t *testing.T) {
	block := model.RoomBlock{
		ID: "blk", RoomNumber: "101", Start: day(6), End: day(7),
		Type: model.BlockVIPHold, CanOverride: true,
	}
	in := Input{
		Bookings: []model.Booking{booking("b1", 5, 8)},
		Rooms:    []model.Room{stdRoom("101", 1)},
		Blocks:   []model.RoomBlock{block},
	}

	// can_override alone is not enough
	results, err := AutoAssign(request(model.StrategyOptimizeOccupancy), in)
	require.NoError(t, err)
	assert.False(t, results[0].Assigned)

	// explicit override request unlocks the room
	req := request(model.StrategyOptimizeOccupancy)
	req.AllowBlockOverride = true
	results, err = AutoAssign(req, in)
	require.NoError(t, err)
	assert.True(t, results[0].Assigned)
}

func TestAutoAssign_OverrideNeverBeatsHardBlock(t *testing.T) {
	block := model.RoomBlock{
		ID: "blk", RoomNumber: "101", Start: day(6), End: day(7),
		Type: model.BlockRenovation, CanOverride: false,
	}
	in := Input{
		Bookings: []model.Booking{booking("b1", 5, 8)},
		Rooms:    []model.Room{stdRoom("101", 1)},
		Blocks:   []model.RoomBlock{block},
	}

	req := request(model.StrategyOptimizeOccupancy)
	req.AllowBlockOverride = true
	results, err := AutoAssign(req, in)
	require.NoError(t, err)
	assert.False(t, results[0].Assigned)
}

func TestAutoAssign_VIPFirstJumpsTheQueue(t *testing.T) {
	vip := booking("vip-tomorrow", 6, 8)
	vip.VIP = true
	regular := booking("regular-today", 5, 8)

	in := Input{
		Bookings: []model.Booking{regular, vip},
		Rooms:    []model.Room{stdRoom("101", 1)},
	}

	results, err := AutoAssign(request(model.StrategyVIPFirst), in)
	require.NoError(t, err)

	assert.True(t, resultByID(t, results, "vip-tomorrow").Assigned,
		"VIP assigned first despite later check-in")
	assert.False(t, resultByID(t, results, "regular-today").Assigned)
}

func TestAutoAssign_DistributeWearPrefersLeastUsedRoom(t *testing.T) {
	worn := booking("past", 1, 11) // ten nights on room 101 inside the lookback
	worn.RoomNumber = "101"
	in := Input{
		Bookings: []model.Booking{worn, booking("b1", 15, 17)},
		Rooms:    []model.Room{stdRoom("101", 1), stdRoom("102", 1)},
	}

	req := Request{Range: rng(12, 30), Strategy: model.StrategyDistributeWear, WearLookbackDays: 30}
	results, err := AutoAssign(req, in)
	require.NoError(t, err)
	assert.Equal(t, "102", resultByID(t, results, "b1").RoomNumber)
}

func TestAutoAssign_GroupByTypeClustersSameFloor(t *testing.T) {
	b1 := booking("g1", 5, 7)
	b2 := booking("g2", 5, 7)
	// Plenty of rooms across two floors; the group should land together.
	in := Input{
		Bookings: []model.Booking{b1, b2},
		Rooms: []model.Room{
			stdRoom("201", 2), stdRoom("101", 1), stdRoom("102", 1), stdRoom("202", 2),
		},
	}

	results, err := AutoAssign(request(model.StrategyGroupByType), in)
	require.NoError(t, err)

	first := resultByID(t, results, "g1")
	second := resultByID(t, results, "g2")
	require.True(t, first.Assigned)
	require.True(t, second.Assigned)
	assert.Equal(t, "101", first.RoomNumber)
	assert.Equal(t, "102", second.RoomNumber, "second booking follows its type onto the same floor")
}

func TestAutoAssign_RuleBoostReordersCandidates(t *testing.T) {
	boost := model.AllocationRule{
		ID: "sea-view-boost", Type: model.RuleRoomFeature, Priority: 10, Active: true,
		Conditions: map[string]any{rules.CondFeatures: []string{"sea_view"}},
		Actions:    map[string]any{rules.ActPriorityBoost: 10},
	}
	seaView := stdRoom("105", 1)
	seaView.Features = []string{"sea_view"}

	in := Input{
		Bookings: []model.Booking{booking("b1", 5, 8)},
		Rooms:    []model.Room{stdRoom("101", 1), seaView},
		Rules:    []model.AllocationRule{boost},
	}

	results, err := AutoAssign(request(model.StrategyOptimizeOccupancy), in)
	require.NoError(t, err)
	assert.Equal(t, "105", results[0].RoomNumber)
}

func TestAutoAssign_PreferFloorIsSoft(t *testing.T) {
	preferTen := model.AllocationRule{
		ID: "vip-high-floor", Type: model.RuleDuration, Priority: 5, Active: true,
		Conditions: map[string]any{rules.CondMinNights: 1},
		Actions:    map[string]any{rules.ActPreferFloor: 10},
	}
	in := Input{
		Bookings: []model.Booking{booking("b1", 5, 8)},
		Rooms:    []model.Room{stdRoom("101", 1), stdRoom("301", 3)},
		Rules:    []model.AllocationRule{preferTen},
	}

	req := request(model.StrategyOptimizeOccupancy)
	req.RespectPreferences = true
	results, err := AutoAssign(req, in)
	require.NoError(t, err)
	// no floor 10 exists; assignment falls back instead of failing
	assert.True(t, results[0].Assigned)
	assert.Equal(t, "101", results[0].RoomNumber)
}

func TestAutoAssign_PreferFloorReordersWhenSatisfiable(t *testing.T) {
	preferThree := model.AllocationRule{
		ID: "quiet-floor", Type: model.RuleDuration, Priority: 5, Active: true,
		Conditions: map[string]any{rules.CondMinNights: 1},
		Actions:    map[string]any{rules.ActPreferFloor: 3},
	}
	in := Input{
		Bookings: []model.Booking{booking("b1", 5, 8)},
		Rooms:    []model.Room{stdRoom("101", 1), stdRoom("301", 3)},
		Rules:    []model.AllocationRule{preferThree},
	}

	req := request(model.StrategyOptimizeOccupancy)
	req.RespectPreferences = true
	results, err := AutoAssign(req, in)
	require.NoError(t, err)
	assert.Equal(t, "301", results[0].RoomNumber)
}

func TestAutoAssign_AutoUpgradeWidensTypeFilter(t *testing.T) {
	upgradeVIPs := model.AllocationRule{
		ID: "vip-upgrade", Type: model.RuleCustom, Priority: 5, Active: true,
		Conditions: map[string]any{"vip": true},
		Actions:    map[string]any{rules.ActAutoUpgrade: true},
	}
	b := booking("vip", 5, 8)
	b.VIP = true
	suite := model.Room{Number: "501", Floor: 5, Type: "suite"}

	in := Input{
		Bookings: []model.Booking{b},
		Rooms:    []model.Room{suite},
		Rules:    []model.AllocationRule{upgradeVIPs},
	}

	// only a suite is free and the booking wants standard
	req := request(model.StrategyOptimizeOccupancy)
	req.RoomTypeOrder = []string{"standard", "deluxe", "suite"}
	results, err := AutoAssign(req, in)
	require.NoError(t, err)
	assert.Equal(t, "501", results[0].RoomNumber)

	// without a type order the upgrade is not offered
	results, err = AutoAssign(request(model.StrategyOptimizeOccupancy), in)
	require.NoError(t, err)
	assert.False(t, results[0].Assigned)
}

func TestAutoAssign_DeterministicAcrossRuns(t *testing.T) {
	in := Input{
		Bookings: []model.Booking{
			booking("b3", 5, 8), booking("b1", 5, 8), booking("b2", 5, 8),
		},
		Rooms: []model.Room{stdRoom("103", 1), stdRoom("101", 1), stdRoom("102", 1)},
	}

	first, err := AutoAssign(request(model.StrategyOptimizeOccupancy), in)
	require.NoError(t, err)
	second, err := AutoAssign(request(model.StrategyOptimizeOccupancy), in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestOccupancyPercent(t *testing.T) {
	rooms := []model.Room{stdRoom("101", 1), stdRoom("102", 1)}
	occupied := booking("b1", 1, 6) // five nights
	occupied.RoomNumber = "101"

	pct := OccupancyPercent(rooms, []model.Booking{occupied}, rng(1, 6))
	assert.InDelta(t, 50.0, pct, 0.001)
}

func TestAvailableRoomsFor(t *testing.T) {
	taken := booking("t1", 5, 8)
	taken.RoomNumber = "101"
	blocked := model.RoomBlock{ID: "blk", RoomNumber: "102", Start: day(5), End: day(9), Type: model.BlockStaff}

	rooms := []model.Room{stdRoom("101", 1), stdRoom("102", 1), stdRoom("103", 1)}
	got := AvailableRoomsFor(booking("b1", 5, 8), rooms, []model.Booking{taken}, []model.RoomBlock{blocked})
	assert.Equal(t, []string{"103"}, got)
}
