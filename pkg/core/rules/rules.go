package rules

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
)

// ErrInvalidRule is returned when a rule is missing required condition
// or action fields. Invalid rules are rejected at creation time and
// never stored.
var ErrInvalidRule = errors.New("invalid allocation rule")

// Condition keys by rule type.
const (
	CondGuestType       = "guest_type"
	CondMinNights       = "min_duration_nights"
	CondFeatures        = "required_features"
	CondMinOccupancyPct = "min_occupancy_percent"
	CondTimeCondition   = "condition"
)

// Named temporal conditions for time_based rules.
const (
	TimeAdvanceBooking = "advance_booking" // booked more than 7 days out
	TimeLastMinute     = "last_minute"     // check-in within 24 hours
	TimeWeekendCheckIn = "weekend_checkin"
	TimeWeekdayCheckIn = "weekday_checkin"
	TimePeakSeason     = "peak_season"
)

// Action keys.
const (
	ActPriorityBoost  = "priority_boost"
	ActAssignRoomType = "assign_room_type"
	ActPreferFloor    = "prefer_floor"
	ActAutoUpgrade    = "auto_upgrade"
)

// Context carries the external inputs rule conditions depend on:
// peak-season windows come from configuration and the occupancy
// percentage is computed by the caller over the assignment range.
type Context struct {
	Now              time.Time
	OccupancyPercent float64
	PeakSeasons      []model.DateRange
}

// Actions are the soft directives matching rules may set. The caller
// honors them as preferences, never hard constraints; a directive with
// no satisfiable room is ignored and assignment falls back to the
// next-best candidate.
type Actions struct {
	AssignRoomType string
	PreferFloor    *int
	AutoUpgrade    bool
}

// Evaluation is the outcome of applying the active rules to one
// booking/room pair.
type Evaluation struct {
	PriorityDelta int
	Actions       Actions
	MatchedRules  []string
}

// Validate rejects rules whose conditions or actions are empty, whose
// type is unknown, or whose type-specific condition key is missing.
func Validate(rule model.AllocationRule) error {
	if !rule.Type.IsValid() {
		return fmt.Errorf("%w: unknown rule type %q", ErrInvalidRule, rule.Type)
	}
	if len(rule.Conditions) == 0 {
		return fmt.Errorf("%w: conditions must not be empty", ErrInvalidRule)
	}
	if len(rule.Actions) == 0 {
		return fmt.Errorf("%w: actions must not be empty", ErrInvalidRule)
	}

	required := map[model.RuleType]string{
		model.RuleGuestType:   CondGuestType,
		model.RuleDuration:    CondMinNights,
		model.RuleRoomFeature: CondFeatures,
		model.RuleOccupancy:   CondMinOccupancyPct,
		model.RuleTimeBased:   CondTimeCondition,
	}
	if key, ok := required[rule.Type]; ok {
		if _, present := rule.Conditions[key]; !present {
			return fmt.Errorf("%w: %s rule requires condition %q", ErrInvalidRule, rule.Type, key)
		}
	}
	return nil
}

// Apply evaluates the active rules against a booking/room pair in
// descending priority order. Every matching rule contributes its
// priority_boost additively; directive actions are set by the highest
// priority matching rule that carries them and later matches do not
// override.
func Apply(b model.Booking, room model.Room, active []model.AllocationRule, ctx Context) Evaluation {
	ordered := make([]model.AllocationRule, 0, len(active))
	for _, r := range active {
		if r.Active {
			ordered = append(ordered, r)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority > ordered[j].Priority
		}
		return ordered[i].ID < ordered[j].ID
	})

	var eval Evaluation
	for _, rule := range ordered {
		if !Matches(rule, b, room, ctx) {
			continue
		}
		eval.MatchedRules = append(eval.MatchedRules, rule.ID)

		if boost, ok := asNumber(rule.Actions[ActPriorityBoost]); ok {
			eval.PriorityDelta += int(boost)
		}
		if rt, ok := rule.Actions[ActAssignRoomType].(string); ok && eval.Actions.AssignRoomType == "" {
			eval.Actions.AssignRoomType = rt
		}
		if floor, ok := asNumber(rule.Actions[ActPreferFloor]); ok && eval.Actions.PreferFloor == nil {
			f := int(floor)
			eval.Actions.PreferFloor = &f
		}
		if up, ok := rule.Actions[ActAutoUpgrade].(bool); ok && up {
			eval.Actions.AutoUpgrade = true
		}
	}
	return eval
}

// Matches runs the rule's type-specific condition predicate.
func Matches(rule model.AllocationRule, b model.Booking, room model.Room, ctx Context) bool {
	switch rule.Type {
	case model.RuleGuestType:
		want, ok := rule.Conditions[CondGuestType].(string)
		return ok && want == b.GuestType

	case model.RuleDuration:
		min, ok := asNumber(rule.Conditions[CondMinNights])
		return ok && float64(b.Nights()) >= min

	case model.RuleRoomFeature:
		required, ok := asStringSlice(rule.Conditions[CondFeatures])
		return ok && room.HasFeatures(required)

	case model.RuleOccupancy:
		min, ok := asNumber(rule.Conditions[CondMinOccupancyPct])
		return ok && ctx.OccupancyPercent >= min

	case model.RuleTimeBased:
		cond, ok := rule.Conditions[CondTimeCondition].(string)
		return ok && matchesTimeCondition(cond, b, ctx)

	case model.RuleCustom:
		return matchesCustom(rule.Conditions, b)
	}
	return false
}

func matchesTimeCondition(cond string, b model.Booking, ctx Context) bool {
	until := b.CheckIn.Sub(ctx.Now)
	switch cond {
	case TimeAdvanceBooking:
		return until > 7*24*time.Hour
	case TimeLastMinute:
		return until < 24*time.Hour
	case TimeWeekendCheckIn:
		wd := b.CheckIn.Weekday()
		return wd == time.Saturday || wd == time.Sunday
	case TimeWeekdayCheckIn:
		wd := b.CheckIn.Weekday()
		return wd != time.Saturday && wd != time.Sunday
	case TimePeakSeason:
		for _, season := range ctx.PeakSeasons {
			if season.Contains(b.CheckIn) {
				return true
			}
		}
	}
	return false
}

// matchesCustom evaluates an opaque predicate by exact key/value
// containment against the booking's attribute map.
func matchesCustom(conditions map[string]any, b model.Booking) bool {
	attrs := map[string]any{
		"guest_type": b.GuestType,
		"room_type":  b.RoomType,
		"vip":        b.VIP,
		"shift":      string(b.Shift),
		"nights":     float64(b.Nights()),
	}
	for key, want := range conditions {
		have, ok := attrs[key]
		if !ok {
			return false
		}
		if wantNum, isNum := asNumber(want); isNum {
			haveNum, _ := asNumber(have)
			if wantNum != haveNum {
				return false
			}
			continue
		}
		if have != want {
			return false
		}
	}
	return true
}

// asNumber normalizes the numeric shapes that survive YAML and JSON
// decoding of the loosely-typed condition/action maps.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

func asStringSlice(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	}
	return nil, false
}
