package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vantage-Outdoor-LLC/argus/internal/model"
)

func TestFindEarliestStartEmptyGroup(t *testing.T) {
	store := NewStore(nil)

	slot, ok := FindEarliestStart(store, []string{"G1"}, 5, 1, day("2024-01-01"), DefaultHorizonDays)
	require.True(t, ok)
	assert.Equal(t, day("2024-01-01"), slot.Start)
	require.Len(t, slot.PerGroup, 1)
	assert.Equal(t, "G1", slot.PerGroup[0].GroupID)
	assert.Equal(t, []int{55}, slot.PerGroup[0].FreeSecondsByWeek)
}

func TestFindEarliestStartSkipsFullWeek(t *testing.T) {
	// 55s already booked for the week of Jan 1; a 10s request cannot start
	// until its first week window no longer overlaps that booking.
	store := NewStore([]model.GroupSchedule{
		{GroupID: "G1", Bookings: []model.Booking{
			{CampaignID: "AD-1", StartDate: day("2024-01-01"), EndDate: day("2024-01-08"), DurationSeconds: 55},
		}},
	})

	slot, ok := FindEarliestStart(store, []string{"G1"}, 10, 1, day("2024-01-01"), DefaultHorizonDays)
	require.True(t, ok)
	assert.Equal(t, day("2024-01-08"), slot.Start)

	// 5s still fits alongside the 55s on day one
	slot, ok = FindEarliestStart(store, []string{"G1"}, 5, 1, day("2024-01-01"), DefaultHorizonDays)
	require.True(t, ok)
	assert.Equal(t, day("2024-01-01"), slot.Start)
	assert.Equal(t, []int{0}, slot.PerGroup[0].FreeSecondsByWeek)
}

func TestFindEarliestStartNonProratedOverlap(t *testing.T) {
	// The existing booking touches only the first day of the candidate's
	// second week, yet charges its full duration against that week.
	store := NewStore([]model.GroupSchedule{
		{GroupID: "G1", Bookings: []model.Booking{
			{CampaignID: "AD-1", StartDate: day("2024-01-08"), EndDate: day("2024-01-15"), DurationSeconds: 55},
		}},
	})

	slot, ok := FindEarliestStart(store, []string{"G1"}, 10, 2, day("2024-01-01"), DefaultHorizonDays)
	require.True(t, ok)
	// weeks [1/1,1/8)+[1/8,1/15) collide until both windows clear 1/15
	assert.Equal(t, day("2024-01-15"), slot.Start)
}

func TestFindEarliestStartJointFeasibility(t *testing.T) {
	// G1 is free immediately, G2 only from Jan 8; the joint answer is the
	// first day both fit.
	store := NewStore([]model.GroupSchedule{
		{GroupID: "G2", Bookings: []model.Booking{
			{CampaignID: "AD-1", StartDate: day("2024-01-01"), EndDate: day("2024-01-08"), DurationSeconds: 58},
		}},
	})

	slot, ok := FindEarliestStart(store, []string{"G1", "G2"}, 10, 1, day("2024-01-01"), DefaultHorizonDays)
	require.True(t, ok)
	assert.Equal(t, day("2024-01-08"), slot.Start)
	assert.Len(t, slot.PerGroup, 2)
}

func TestFindEarliestStartInfeasibleWithinHorizon(t *testing.T) {
	// A permanent 56s tenant leaves no room for 5s anywhere in the horizon.
	store := NewStore([]model.GroupSchedule{
		{GroupID: "G1", Bookings: []model.Booking{
			{CampaignID: "AD-1", StartDate: day("2024-01-01"), EndDate: day("2034-01-01"), DurationSeconds: 56},
		}},
	})

	_, ok := FindEarliestStart(store, []string{"G1"}, 5, 1, day("2024-01-01"), DefaultHorizonDays)
	assert.False(t, ok)
}

func TestFindEarliestStartHorizonInclusive(t *testing.T) {
	// The blocker ends exactly at the last candidate the horizon allows.
	store := NewStore([]model.GroupSchedule{
		{GroupID: "G1", Bookings: []model.Booking{
			{CampaignID: "AD-1", StartDate: day("2024-01-01"), EndDate: addDays(day("2024-01-01"), DefaultHorizonDays), DurationSeconds: 56},
		}},
	})

	slot, ok := FindEarliestStart(store, []string{"G1"}, 5, 1, day("2024-01-01"), DefaultHorizonDays)
	require.True(t, ok)
	assert.Equal(t, addDays(day("2024-01-01"), DefaultHorizonDays), slot.Start)
}

func TestFindEarliestStartClampsNonPositiveWeeks(t *testing.T) {
	// Zero weeks must not turn the search vacuous: with the group fully
	// occupied for the whole horizon the answer stays negative.
	store := NewStore([]model.GroupSchedule{
		{GroupID: "G1", Bookings: []model.Booking{
			{CampaignID: "AD-1", StartDate: day("2024-01-01"), EndDate: day("2034-01-01"), DurationSeconds: 56},
		}},
	})

	_, ok := FindEarliestStart(store, []string{"G1"}, 10, 0, day("2024-01-01"), DefaultHorizonDays)
	assert.False(t, ok)

	slot, ok := FindEarliestStart(NewStore(nil), []string{"G1"}, 10, -3, day("2024-01-01"), DefaultHorizonDays)
	require.True(t, ok)
	assert.Equal(t, []int{50}, slot.PerGroup[0].FreeSecondsByWeek)
}

func TestFindEarliestStartNormalizesStartFrom(t *testing.T) {
	store := NewStore(nil)

	slot, ok := FindEarliestStart(store, []string{"G1"}, 5, 1, day("2024-01-01").Add(13*time.Hour), DefaultHorizonDays)
	require.True(t, ok)
	assert.Equal(t, day("2024-01-01"), slot.Start)
}
