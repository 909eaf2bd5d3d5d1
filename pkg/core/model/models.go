package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShiftType describes how a booking occupies a room-date.
type ShiftType string

const (
	ShiftTraditional ShiftType = "traditional"
	ShiftDay         ShiftType = "day_shift"
	ShiftNight       ShiftType = "night_shift"
	ShiftFullDay     ShiftType = "full_day"
)

func (s ShiftType) IsValid() bool {
	switch s {
	case ShiftTraditional, ShiftDay, ShiftNight, ShiftFullDay:
		return true
	}
	return false
}

// IsPartial reports whether the shift occupies only part of the day.
func (s ShiftType) IsPartial() bool {
	return s == ShiftDay || s == ShiftNight
}

// RoomStatus is the derived status of a room on a calendar date.
type RoomStatus string

const (
	StatusAvailable   RoomStatus = "available"
	StatusOccupied    RoomStatus = "occupied"
	StatusArriving    RoomStatus = "arriving"
	StatusDeparting   RoomStatus = "departing"
	StatusBlocked     RoomStatus = "blocked"
	StatusMaintenance RoomStatus = "maintenance"
	StatusPreAssigned RoomStatus = "pre_assigned"
)

func (s RoomStatus) IsValid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusArriving, StatusDeparting,
		StatusBlocked, StatusMaintenance, StatusPreAssigned:
		return true
	}
	return false
}

// AlertLevel is the urgency tier of an unassigned booking.
type AlertLevel string

const (
	AlertCritical AlertLevel = "critical"
	AlertWarning  AlertLevel = "warning"
	AlertInfo     AlertLevel = "info"
)

// BlockType categorizes an operator-imposed unavailability period.
type BlockType string

const (
	BlockMaintenance BlockType = "maintenance"
	BlockRenovation  BlockType = "renovation"
	BlockVIPHold     BlockType = "vip_hold"
	BlockLongStay    BlockType = "long_stay"
	BlockStaff       BlockType = "staff"
	BlockInspection  BlockType = "inspection"
	BlockDeepClean   BlockType = "deep_clean"
)

func (b BlockType) IsValid() bool {
	switch b {
	case BlockMaintenance, BlockRenovation, BlockVIPHold, BlockLongStay,
		BlockStaff, BlockInspection, BlockDeepClean:
		return true
	}
	return false
}

// RuleType identifies the condition family of an allocation rule.
type RuleType string

const (
	RuleGuestType   RuleType = "guest_type"
	RuleDuration    RuleType = "duration"
	RuleRoomFeature RuleType = "room_feature"
	RuleOccupancy   RuleType = "occupancy"
	RuleTimeBased   RuleType = "time_based"
	RuleCustom      RuleType = "custom"
)

func (r RuleType) IsValid() bool {
	switch r {
	case RuleGuestType, RuleDuration, RuleRoomFeature, RuleOccupancy,
		RuleTimeBased, RuleCustom:
		return true
	}
	return false
}

// StrategyName identifies a room-ranking policy used by auto-assignment.
type StrategyName string

const (
	StrategyOptimizeOccupancy StrategyName = "optimize_occupancy"
	StrategyVIPFirst          StrategyName = "vip_first"
	StrategyGroupByType       StrategyName = "group_by_type"
	StrategyDistributeWear    StrategyName = "distribute_wear"
)

func (s StrategyName) IsValid() bool {
	switch s {
	case StrategyOptimizeOccupancy, StrategyVIPFirst, StrategyGroupByType, StrategyDistributeWear:
		return true
	}
	return false
}

// Room is immutable reference data owned by the room-inventory service.
type Room struct {
	Number   string
	Floor    int
	Type     string
	Features []string
}

// HasFeatures reports whether the room carries every required feature tag.
func (r Room) HasFeatures(required []string) bool {
	for _, want := range required {
		found := false
		for _, have := range r.Features {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Booking is a stay supplied by the external booking service.
// RoomNumber is empty while the booking is unassigned.
type Booking struct {
	ID              string
	GuestName       string
	GuestType       string
	VIP             bool
	CheckIn         time.Time
	CheckOut        time.Time
	Shift           ShiftType
	RoomType        string
	RoomNumber      string
	PreAssigned     bool
	TotalAmount     decimal.Decimal
	PaidAmount      decimal.Decimal
	SpecialRequests []string
}

// Assigned reports whether the booking already holds a room.
func (b Booking) Assigned() bool {
	return b.RoomNumber != ""
}

// Nights returns the stay length in nights, minimum 1 so that shift
// bookings (same-day check-out) still occupy their date.
func (b Booking) Nights() int {
	n := int(dateOf(b.CheckOut).Sub(dateOf(b.CheckIn)).Hours() / 24)
	if n < 1 {
		n = 1
	}
	return n
}

// StayRange returns the nights the booking occupies as a date range.
func (b Booking) StayRange() DateRange {
	end := dateOf(b.CheckOut)
	start := dateOf(b.CheckIn)
	if !end.After(start) {
		end = start.AddDate(0, 0, 1)
	}
	return DateRange{Start: start, End: end}
}

// OccupiesDate reports whether the booking occupies the room on the
// given calendar date (nights are [check-in, check-out)).
func (b Booking) OccupiesDate(d time.Time) bool {
	return b.StayRange().Contains(d)
}

// RoomBlock is an operator-imposed reservation-free period on a room.
// Start and End are inclusive calendar dates.
type RoomBlock struct {
	ID            string
	RoomNumber    string
	Start         time.Time
	End           time.Time
	Type          BlockType
	Reason        string
	CanOverride   bool
	ReleasedAt    *time.Time
	ReleaseReason string
}

// Active reports whether the block has not been released.
func (b RoomBlock) Active() bool {
	return b.ReleasedAt == nil
}

// Covers reports whether the block covers the given calendar date.
func (b RoomBlock) Covers(d time.Time) bool {
	day := dateOf(d)
	return !day.Before(dateOf(b.Start)) && !day.After(dateOf(b.End))
}

// OverlapsRange reports whether the block covers any night in the range.
func (b RoomBlock) OverlapsRange(r DateRange) bool {
	return !dateOf(b.End).Before(r.Start) && dateOf(b.Start).Before(r.End)
}

// AllocationRule is an operator-defined conditional rule evaluated
// during assignment. Conditions and Actions shapes depend on Type.
type AllocationRule struct {
	ID         string
	Name       string
	Type       RuleType
	Priority   int
	Active     bool
	Conditions map[string]any
	Actions    map[string]any
}

// DateRange is a half-open range of nights [Start, End).
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether the date falls on a night in the range.
func (r DateRange) Contains(d time.Time) bool {
	day := dateOf(d)
	return !day.Before(r.Start) && day.Before(r.End)
}

// Overlaps reports whether the two ranges share at least one night.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

// Nights returns the number of nights in the range.
func (r DateRange) Nights() int {
	n := int(r.End.Sub(r.Start).Hours() / 24)
	if n < 0 {
		n = 0
	}
	return n
}

// Days enumerates every calendar date in the range.
func (r DateRange) Days() []time.Time {
	var days []time.Time
	for d := r.Start; d.Before(r.End); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) time.Time {
	return dateOf(t)
}
