package rules

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huuphu310/rooms-management-sub000/pkg/core/model"
)

var now = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

func nightsBooking(n int) model.Booking {
	return model.Booking{
		ID:       "b1",
		CheckIn:  now.AddDate(0, 0, 2),
		CheckOut: now.AddDate(0, 0, 2+n),
	}
}

func durationRule(minNights, boost int) model.AllocationRule {
	return model.AllocationRule{
		ID:       "r-duration",
		Name:     "long stay boost",
		Type:     model.RuleDuration,
		Priority: 10,
		Active:   true,
		Conditions: map[string]any{
			CondMinNights: minNights,
		},
		Actions: map[string]any{
			ActPriorityBoost: boost,
		},
	}
}

func TestValidate(t *testing.T) {
	valid := durationRule(7, 10)
	assert.NoError(t, Validate(valid))

	noConditions := valid
	noConditions.Conditions = nil
	assert.ErrorIs(t, Validate(noConditions), ErrInvalidRule)

	noActions := valid
	noActions.Actions = map[string]any{}
	assert.ErrorIs(t, Validate(noActions), ErrInvalidRule)

	badType := valid
	badType.Type = "lucky_dip"
	assert.ErrorIs(t, Validate(badType), ErrInvalidRule)

	missingKey := valid
	missingKey.Conditions = map[string]any{"nights": 7}
	assert.ErrorIs(t, Validate(missingKey), ErrInvalidRule)
}

func TestApply_DurationRule(t *testing.T) {
	rule := durationRule(7, 10)
	ctx := Context{Now: now}

	long := Apply(nightsBooking(8), model.Room{Number: "101"}, []model.AllocationRule{rule}, ctx)
	assert.Equal(t, 10, long.PriorityDelta)

	short := Apply(nightsBooking(3), model.Room{Number: "101"}, []model.AllocationRule{rule}, ctx)
	assert.Equal(t, 0, short.PriorityDelta)
}

func TestApply_InactiveRulesSkipped(t *testing.T) {
	rule := durationRule(1, 10)
	rule.Active = false

	eval := Apply(nightsBooking(5), model.Room{}, []model.AllocationRule{rule}, Context{Now: now})
	assert.Equal(t, 0, eval.PriorityDelta)
	assert.Empty(t, eval.MatchedRules)
}

func TestApply_BoostsAreAdditive(t *testing.T) {
	r1 := durationRule(1, 10)
	r2 := durationRule(2, 5)
	r2.ID = "r-duration-2"

	eval := Apply(nightsBooking(5), model.Room{}, []model.AllocationRule{r1, r2}, Context{Now: now})
	assert.Equal(t, 15, eval.PriorityDelta)
	assert.Equal(t, []string{"r-duration", "r-duration-2"}, eval.MatchedRules)
}

func TestApply_HigherPriorityDirectiveWins(t *testing.T) {
	low := model.AllocationRule{
		ID: "low", Type: model.RuleDuration, Priority: 1, Active: true,
		Conditions: map[string]any{CondMinNights: 1},
		Actions:    map[string]any{ActPreferFloor: 2, ActAssignRoomType: "standard"},
	}
	high := model.AllocationRule{
		ID: "high", Type: model.RuleDuration, Priority: 50, Active: true,
		Conditions: map[string]any{CondMinNights: 1},
		Actions:    map[string]any{ActPreferFloor: 5},
	}

	eval := Apply(nightsBooking(3), model.Room{}, []model.AllocationRule{low, high}, Context{Now: now})
	require.NotNil(t, eval.Actions.PreferFloor)
	assert.Equal(t, 5, *eval.Actions.PreferFloor)
	// assign_room_type only set by the lower rule, still honored
	assert.Equal(t, "standard", eval.Actions.AssignRoomType)
}

func TestMatches_GuestType(t *testing.T) {
	rule := model.AllocationRule{
		Type:       model.RuleGuestType,
		Active:     true,
		Conditions: map[string]any{CondGuestType: "corporate"},
		Actions:    map[string]any{ActPriorityBoost: 1},
	}

	b := nightsBooking(2)
	b.GuestType = "corporate"
	assert.True(t, Matches(rule, b, model.Room{}, Context{Now: now}))

	b.GuestType = "leisure"
	assert.False(t, Matches(rule, b, model.Room{}, Context{Now: now}))
}

func TestMatches_RoomFeature(t *testing.T) {
	rule := model.AllocationRule{
		Type:       model.RuleRoomFeature,
		Conditions: map[string]any{CondFeatures: []any{"balcony", "sea_view"}},
	}

	full := model.Room{Features: []string{"sea_view", "balcony", "minibar"}}
	assert.True(t, Matches(rule, nightsBooking(1), full, Context{}))

	partial := model.Room{Features: []string{"balcony"}}
	assert.False(t, Matches(rule, nightsBooking(1), partial, Context{}))
}

func TestMatches_Occupancy(t *testing.T) {
	rule := model.AllocationRule{
		Type:       model.RuleOccupancy,
		Conditions: map[string]any{CondMinOccupancyPct: 80},
	}

	assert.True(t, Matches(rule, nightsBooking(1), model.Room{}, Context{OccupancyPercent: 85}))
	assert.True(t, Matches(rule, nightsBooking(1), model.Room{}, Context{OccupancyPercent: 80}))
	assert.False(t, Matches(rule, nightsBooking(1), model.Room{}, Context{OccupancyPercent: 60}))
}

func TestMatches_TimeBased(t *testing.T) {
	mk := func(cond string) model.AllocationRule {
		return model.AllocationRule{
			Type:       model.RuleTimeBased,
			Conditions: map[string]any{CondTimeCondition: cond},
		}
	}
	ctx := Context{Now: now}

	farOut := model.Booking{CheckIn: now.AddDate(0, 0, 10)}
	assert.True(t, Matches(mk(TimeAdvanceBooking), farOut, model.Room{}, ctx))
	assert.False(t, Matches(mk(TimeLastMinute), farOut, model.Room{}, ctx))

	tonight := model.Booking{CheckIn: now.Add(3 * time.Hour)}
	assert.True(t, Matches(mk(TimeLastMinute), tonight, model.Room{}, ctx))
	assert.False(t, Matches(mk(TimeAdvanceBooking), tonight, model.Room{}, ctx))

	// 2026-03-14 is a Saturday
	saturday := model.Booking{CheckIn: time.Date(2026, time.March, 14, 14, 0, 0, 0, time.UTC)}
	assert.True(t, Matches(mk(TimeWeekendCheckIn), saturday, model.Room{}, ctx))
	assert.False(t, Matches(mk(TimeWeekdayCheckIn), saturday, model.Room{}, ctx))
}

func TestMatches_PeakSeasonFromContext(t *testing.T) {
	rule := model.AllocationRule{
		Type:       model.RuleTimeBased,
		Conditions: map[string]any{CondTimeCondition: TimePeakSeason},
	}
	season := model.DateRange{
		Start: time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC),
	}
	ctx := Context{Now: now, PeakSeasons: []model.DateRange{season}}

	inSeason := model.Booking{CheckIn: time.Date(2026, time.July, 10, 14, 0, 0, 0, time.UTC)}
	assert.True(t, Matches(rule, inSeason, model.Room{}, ctx))

	offSeason := model.Booking{CheckIn: time.Date(2026, time.October, 10, 14, 0, 0, 0, time.UTC)}
	assert.False(t, Matches(rule, offSeason, model.Room{}, ctx))
}

func TestMatches_CustomContainment(t *testing.T) {
	rule := model.AllocationRule{
		Type: model.RuleCustom,
		Conditions: map[string]any{
			"vip":        true,
			"guest_type": "corporate",
		},
	}

	b := nightsBooking(2)
	b.VIP = true
	b.GuestType = "corporate"
	assert.True(t, Matches(rule, b, model.Room{}, Context{}))

	b.VIP = false
	assert.False(t, Matches(rule, b, model.Room{}, Context{}))

	unknownKey := model.AllocationRule{
		Type:       model.RuleCustom,
		Conditions: map[string]any{"loyalty_tier": "gold"},
	}
	assert.False(t, Matches(unknownKey, b, model.Room{}, Context{}))
}
