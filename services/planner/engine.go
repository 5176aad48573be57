package planner

import (
	"sort"
	"time"

	"calendary/models"
)

// MaxProposals caps how many slots one search returns.
const MaxProposals = 3

const (
	defaultWorkdayStart = 9
	defaultWorkdayEnd   = 17
)

const slotLabelLayout = "Mon Jan 2, 3:04 PM"

// ProposeMeetingSlots walks the search window forward on quarter-hour
// boundaries and returns up to MaxProposals non-overlapping slots of exactly
// the requested duration that avoid busy intervals, stay inside work hours
// and satisfy the request's date and time-of-day preferences.
//
// The scan only ever moves the cursor forward, so results come out in
// chronological order with no secondary sort. An unparseable window or zone
// is the defined "cannot search" outcome and yields an empty result; an
// exhausted window likewise yields whatever was accumulated.
func ProposeMeetingSlots(busy []models.BusyInterval, req models.SchedulingRequest, window models.SearchWindow) []models.ProposedSlot {
	if req.DurationMinutes <= 0 {
		return nil
	}
	loc, err := time.LoadLocation(window.TimeZone)
	if err != nil {
		return nil
	}
	searchStart, err := time.Parse(time.RFC3339, window.Start)
	if err != nil {
		return nil
	}
	searchEnd, err := time.Parse(time.RFC3339, window.End)
	if err != nil {
		return nil
	}
	searchStart = searchStart.In(loc)
	searchEnd = searchEnd.In(loc)

	startHour, endHour := window.WorkdayStartHour, window.WorkdayEndHour
	if startHour == 0 && endHour == 0 {
		startHour, endHour = defaultWorkdayStart, defaultWorkdayEnd
	}
	if startHour >= endHour {
		return nil
	}

	busyIntervals := normalizeBusy(busy, loc)
	duration := time.Duration(req.DurationMinutes) * time.Minute

	var results []models.ProposedSlot
	cursor := snapToQuarterHour(searchStart.Truncate(time.Minute))

	for !cursor.Add(duration).After(searchEnd) && len(results) < MaxProposals {
		dayStart := snapToQuarterHour(atHour(cursor, startHour))
		dayEnd := atHour(cursor, endHour)

		if cursor.Before(dayStart) {
			cursor = dayStart
		}

		// Day exhausted: jump to the next day's work start without
		// evaluating a candidate.
		if cursor.Add(duration).After(dayEnd) {
			cursor = snapToQuarterHour(atHour(cursor.AddDate(0, 0, 1), startHour))
			continue
		}

		candidate := models.TimeInterval{Start: cursor, End: cursor.Add(duration)}

		if len(req.PreferredDateRanges) > 0 && !overlapsAny(candidate, req.PreferredDateRanges) {
			cursor = snapToQuarterHour(candidate.End)
			continue
		}

		if len(req.TimeOfDayPreferences) > 0 {
			// A start outside all named periods is "no opinion" and
			// never filtered.
			if period, ok := timeOfDay(candidate.Start); ok && !containsPeriod(req.TimeOfDayPreferences, period) {
				cursor = snapToQuarterHour(candidate.End)
				continue
			}
		}

		if overlapsAny(candidate, busyIntervals) {
			// Skip to the earliest end among busy intervals starting at or
			// after the candidate, bounded by the candidate's own end so the
			// cursor never moves backward.
			next := candidate.End
			for _, b := range busyIntervals {
				if !b.Start.Before(candidate.Start) && b.End.Before(next) {
					next = b.End
				}
			}
			cursor = snapToQuarterHour(next)
			continue
		}

		results = append(results, models.ProposedSlot{
			Start: candidate.Start,
			End:   candidate.End,
			Label: candidate.Start.Format(slotLabelLayout),
		})
		cursor = snapToQuarterHour(candidate.End)
	}

	return results
}

// normalizeBusy parses, filters and sorts the provider's busy entries.
// Unparseable or degenerate entries are dropped.
func normalizeBusy(busy []models.BusyInterval, loc *time.Location) []models.TimeInterval {
	intervals := make([]models.TimeInterval, 0, len(busy))
	for _, b := range busy {
		start, err := time.Parse(time.RFC3339, b.Start)
		if err != nil {
			continue
		}
		end, err := time.Parse(time.RFC3339, b.End)
		if err != nil {
			continue
		}
		interval := models.TimeInterval{Start: start.In(loc), End: end.In(loc)}
		if !interval.Valid() {
			continue
		}
		intervals = append(intervals, interval)
	}
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].Start.Before(intervals[j].Start)
	})
	return intervals
}

func overlapsAny(candidate models.TimeInterval, intervals []models.TimeInterval) bool {
	for _, interval := range intervals {
		if candidate.Overlaps(interval) {
			return true
		}
	}
	return false
}

// snapToQuarterHour rounds t forward to the next :00/:15/:30/:45 boundary,
// leaving already-aligned times untouched. Rounding is always up so no slot
// starts before a quarter-hour mark.
func snapToQuarterHour(t time.Time) time.Time {
	rem := t.Minute() % 15
	if rem == 0 {
		return t
	}
	return t.Add(time.Duration(15-rem) * time.Minute).Truncate(time.Minute)
}

// atHour returns t's calendar day at hour o'clock in t's location.
func atHour(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

// timeOfDay buckets a local start time: morning 9-12, afternoon 12-17,
// evening 17-21. Anything else reports no bucket.
func timeOfDay(t time.Time) (models.TimeOfDay, bool) {
	minutes := t.Hour()*60 + t.Minute()
	switch {
	case minutes >= 9*60 && minutes < 12*60:
		return models.Morning, true
	case minutes >= 12*60 && minutes < 17*60:
		return models.Afternoon, true
	case minutes >= 17*60 && minutes < 21*60:
		return models.Evening, true
	}
	return "", false
}

func containsPeriod(prefs []models.TimeOfDay, period models.TimeOfDay) bool {
	for _, p := range prefs {
		if p == period {
			return true
		}
	}
	return false
}
