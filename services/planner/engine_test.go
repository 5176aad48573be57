package planner

import (
	"testing"
	"time"

	"calendary/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testZone = "America/New_York"

func window(start, end string) models.SearchWindow {
	return models.SearchWindow{TimeZone: testZone, Start: start, End: end}
}

func request(durationMinutes int) models.SchedulingRequest {
	return models.SchedulingRequest{DurationMinutes: durationMinutes}
}

func parseRFC3339(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts
}

func assertWellFormed(t *testing.T, slots []models.ProposedSlot, durationMinutes int) {
	t.Helper()
	require.LessOrEqual(t, len(slots), MaxProposals)
	for i, slot := range slots {
		assert.Zero(t, slot.Start.Minute()%15, "slot %d not quarter-hour aligned: %v", i, slot.Start)
		assert.Equal(t, time.Duration(durationMinutes)*time.Minute, slot.End.Sub(slot.Start))
		if i > 0 {
			assert.False(t, slot.Start.Before(slots[i-1].End), "slots %d and %d overlap or are out of order", i-1, i)
		}
	}
}

func TestProposeMeetingSlotsAroundBusyInterval(t *testing.T) {
	busy := []models.BusyInterval{
		{Start: "2025-09-29T13:00:00-04:00", End: "2025-09-29T14:00:00-04:00"},
	}
	slots := ProposeMeetingSlots(busy, request(45),
		window("2025-09-29T09:00:00-04:00", "2025-09-29T17:00:00-04:00"))

	require.NotEmpty(t, slots)
	assertWellFormed(t, slots, 45)

	busyStart := parseRFC3339(t, busy[0].Start)
	busyEnd := parseRFC3339(t, busy[0].End)
	for _, slot := range slots {
		overlap := slot.Start.Before(busyEnd) && busyStart.Before(slot.End)
		assert.False(t, overlap, "slot %v-%v overlaps busy interval", slot.Start, slot.End)
	}
}

func TestProposeMeetingSlotsMorningPreference(t *testing.T) {
	req := request(30)
	req.TimeOfDayPreferences = []models.TimeOfDay{models.Morning}

	slots := ProposeMeetingSlots(nil, req,
		window("2025-09-29T06:00:00-04:00", "2025-09-29T21:00:00-04:00"))

	require.NotEmpty(t, slots)
	assertWellFormed(t, slots, 30)
	for _, slot := range slots {
		hour := slot.Start.Hour()
		assert.True(t, hour >= 9 && hour < 12, "slot starts outside morning: %v", slot.Start)
	}
}

func TestProposeMeetingSlotsEveningPreferenceWithLateWorkday(t *testing.T) {
	req := request(30)
	req.TimeOfDayPreferences = []models.TimeOfDay{models.Evening}

	w := window("2025-09-29T06:00:00-04:00", "2025-09-29T23:00:00-04:00")
	w.WorkdayStartHour = 9
	w.WorkdayEndHour = 21

	slots := ProposeMeetingSlots(nil, req, w)
	require.NotEmpty(t, slots)
	for _, slot := range slots {
		hour := slot.Start.Hour()
		assert.True(t, hour >= 17 && hour < 21, "slot starts outside evening: %v", slot.Start)
	}
}

func TestProposeMeetingSlotsSkipsPastBusyStartOfDay(t *testing.T) {
	busy := []models.BusyInterval{
		{Start: "2025-09-29T09:00:00-04:00", End: "2025-09-29T10:00:00-04:00"},
	}
	slots := ProposeMeetingSlots(busy, request(30),
		window("2025-09-29T09:00:00-04:00", "2025-09-29T12:00:00-04:00"))

	require.NotEmpty(t, slots)
	tenAM := parseRFC3339(t, "2025-09-29T10:00:00-04:00")
	assert.False(t, slots[0].Start.Before(tenAM), "first slot %v starts before busy interval ends", slots[0].Start)
}

func TestProposeMeetingSlotsHonorsPreferredDateRanges(t *testing.T) {
	loc, err := time.LoadLocation(testZone)
	require.NoError(t, err)

	// Only Wednesday Oct 1 is preferred inside a two-week window.
	prefStart := time.Date(2025, time.October, 1, 0, 0, 0, 0, loc)
	req := request(60)
	req.PreferredDateRanges = []models.TimeInterval{{Start: prefStart, End: prefStart.AddDate(0, 0, 1)}}

	slots := ProposeMeetingSlots(nil, req,
		window("2025-09-29T09:00:00-04:00", "2025-10-13T09:00:00-04:00"))

	require.NotEmpty(t, slots)
	assertWellFormed(t, slots, 60)
	for _, slot := range slots {
		candidate := models.TimeInterval{Start: slot.Start, End: slot.End}
		assert.True(t, candidate.Overlaps(req.PreferredDateRanges[0]),
			"slot %v does not overlap the preferred range", slot.Start)
	}
}

func TestProposeMeetingSlotsCapAndOrdering(t *testing.T) {
	slots := ProposeMeetingSlots(nil, request(30),
		window("2025-09-29T09:00:00-04:00", "2025-10-13T09:00:00-04:00"))

	assert.Len(t, slots, MaxProposals)
	assertWellFormed(t, slots, 30)
}

func TestProposeMeetingSlotsSnapsWindowStartForward(t *testing.T) {
	slots := ProposeMeetingSlots(nil, request(30),
		window("2025-09-29T09:05:00-04:00", "2025-09-29T17:00:00-04:00"))

	require.NotEmpty(t, slots)
	assert.Equal(t, 15, slots[0].Start.Minute())
	assert.Equal(t, 9, slots[0].Start.Hour())
}

func TestProposeMeetingSlotsRespectsWorkHours(t *testing.T) {
	// Window opens at 06:00 but work starts at 09:00.
	slots := ProposeMeetingSlots(nil, request(30),
		window("2025-09-29T06:00:00-04:00", "2025-09-29T17:00:00-04:00"))

	require.NotEmpty(t, slots)
	assert.Equal(t, 9, slots[0].Start.Hour())
}

func TestProposeMeetingSlotsRollsToNextDay(t *testing.T) {
	// The remaining workday is too short for the meeting; the scan should
	// land on the next morning.
	slots := ProposeMeetingSlots(nil, request(60),
		window("2025-09-29T16:30:00-04:00", "2025-10-01T17:00:00-04:00"))

	require.NotEmpty(t, slots)
	assert.Equal(t, 30, slots[0].Start.Day())
	assert.Equal(t, 9, slots[0].Start.Hour())
}

func TestProposeMeetingSlotsNoAvailability(t *testing.T) {
	// The whole window is busy.
	busy := []models.BusyInterval{
		{Start: "2025-09-29T09:00:00-04:00", End: "2025-09-29T17:00:00-04:00"},
	}
	slots := ProposeMeetingSlots(busy, request(30),
		window("2025-09-29T09:00:00-04:00", "2025-09-29T17:00:00-04:00"))
	assert.Empty(t, slots)
}

func TestProposeMeetingSlotsDropsMalformedBusyEntries(t *testing.T) {
	busy := []models.BusyInterval{
		{Start: "not-a-time", End: "2025-09-29T10:00:00-04:00"},
		{Start: "2025-09-29T11:00:00-04:00", End: "2025-09-29T10:00:00-04:00"}, // degenerate
	}
	slots := ProposeMeetingSlots(busy, request(30),
		window("2025-09-29T09:00:00-04:00", "2025-09-29T12:00:00-04:00"))

	// Malformed entries impose no constraints.
	require.NotEmpty(t, slots)
	assert.Equal(t, 9, slots[0].Start.Hour())
	assert.Equal(t, 0, slots[0].Start.Minute())
}

func TestProposeMeetingSlotsInvalidWindow(t *testing.T) {
	assert.Empty(t, ProposeMeetingSlots(nil, request(30),
		models.SearchWindow{TimeZone: "Not/AZone", Start: "2025-09-29T09:00:00-04:00", End: "2025-09-29T17:00:00-04:00"}))
	assert.Empty(t, ProposeMeetingSlots(nil, request(30),
		window("garbage", "2025-09-29T17:00:00-04:00")))
	assert.Empty(t, ProposeMeetingSlots(nil, request(30),
		window("2025-09-29T09:00:00-04:00", "garbage")))
	assert.Empty(t, ProposeMeetingSlots(nil, request(0),
		window("2025-09-29T09:00:00-04:00", "2025-09-29T17:00:00-04:00")))
}

func TestProposeMeetingSlotsLabel(t *testing.T) {
	slots := ProposeMeetingSlots(nil, request(30),
		window("2025-09-29T09:00:00-04:00", "2025-09-29T17:00:00-04:00"))

	require.NotEmpty(t, slots)
	assert.Equal(t, "Mon Sep 29, 9:00 AM", slots[0].Label)
}

func TestBuildSummary(t *testing.T) {
	assert.Equal(t, "I could not find any open slots over the next two weeks.", BuildSummary(0))
	assert.Equal(t, "I found one available time option.", BuildSummary(1))
	assert.Equal(t, "I found 3 available time options over the next two weeks.", BuildSummary(3))
}
