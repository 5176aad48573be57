package intent

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"calendary/models"
)

// Each recognized temporal form has its own matcher. Matchers are independent:
// one input may yield several, even overlapping, day windows, and a malformed
// mention is dropped without affecting the others.
var (
	tomorrowPattern    = regexp.MustCompile(`(?i)\btomorrow\b`)
	nextWeekPattern    = regexp.MustCompile(`(?i)\bnext\s+week\b`)
	nextWeekdayPattern = regexp.MustCompile(`(?i)\bnext\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	thisWeekdayPattern = regexp.MustCompile(`(?i)\b(?:this|on)\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	monthDatePattern   = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december|jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)\s+(\d{1,2})(?:,\s*(\d{2,4}))?`)
	numericDatePattern = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})(?:/(\d{2,4}))?`)
)

var weekdaysByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

var monthsByName = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September, "sept": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// ExtractDateMentions scans text for explicit and relative date mentions and
// returns one full-calendar-day window per recognized mention, in loc.
// Invalid parses yield fewer candidates, never an error.
func ExtractDateMentions(text string, now time.Time, loc *time.Location) []models.TimeInterval {
	now = now.In(loc)

	var ranges []models.TimeInterval
	ranges = append(ranges, matchTomorrow(text, now)...)
	ranges = append(ranges, matchNextWeek(text, now)...)
	ranges = append(ranges, matchWeekdays(text, now, nextWeekdayPattern, true)...)
	ranges = append(ranges, matchWeekdays(text, now, thisWeekdayPattern, false)...)
	ranges = append(ranges, matchMonthDates(text, now)...)
	ranges = append(ranges, matchNumericDates(text, now)...)

	valid := ranges[:0]
	for _, r := range ranges {
		if r.Valid() {
			valid = append(valid, r)
		}
	}
	return valid
}

func matchTomorrow(text string, now time.Time) []models.TimeInterval {
	if !tomorrowPattern.MatchString(text) {
		return nil
	}
	return []models.TimeInterval{dayWindow(startOfDay(now).AddDate(0, 0, 1))}
}

// matchNextWeek resolves "next week" to the 7 days (Mon-Sun) of the week
// after the reference week.
func matchNextWeek(text string, now time.Time) []models.TimeInterval {
	if !nextWeekPattern.MatchString(text) {
		return nil
	}
	start := startOfWeek(now.AddDate(0, 0, 7))
	return []models.TimeInterval{{Start: start, End: start.AddDate(0, 0, 7)}}
}

func matchWeekdays(text string, now time.Time, pattern *regexp.Regexp, forceNext bool) []models.TimeInterval {
	var ranges []models.TimeInterval
	for _, m := range pattern.FindAllStringSubmatch(text, -1) {
		target, ok := weekdaysByName[strings.ToLower(m[1])]
		if !ok {
			continue
		}
		ranges = append(ranges, dayWindow(resolveWeekday(now, target, forceNext)))
	}
	return ranges
}

// resolveWeekday picks the occurrence of target the sender most plausibly
// means. "next <weekday>" on that same weekday jumps a full week out; a
// candidate that is not after now is pushed forward one more week.
func resolveWeekday(now time.Time, target time.Weekday, forceNext bool) time.Time {
	candidate := startOfDay(now)
	offset := (int(target) - int(candidate.Weekday()) + 7) % 7
	if offset == 0 && forceNext {
		offset = 7
	}
	candidate = candidate.AddDate(0, 0, offset)
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}

func matchMonthDates(text string, now time.Time) []models.TimeInterval {
	var ranges []models.TimeInterval
	for _, m := range monthDatePattern.FindAllStringSubmatch(text, -1) {
		month, ok := monthsByName[strings.ToLower(m[1])]
		if !ok {
			continue
		}
		day, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		year := now.Year()
		if m[3] != "" {
			year = normalizeYear(m[3], now)
		}
		candidate, ok := civilDate(year, month, day, now.Location())
		if !ok {
			continue
		}
		if candidate.Before(now) {
			candidate = candidate.AddDate(1, 0, 0)
		}
		ranges = append(ranges, dayWindow(candidate))
	}
	return ranges
}

func matchNumericDates(text string, now time.Time) []models.TimeInterval {
	var ranges []models.TimeInterval
	for _, m := range numericDatePattern.FindAllStringSubmatch(text, -1) {
		month, err := strconv.Atoi(m[1])
		if err != nil || month < 1 || month > 12 {
			continue
		}
		day, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		year := now.Year()
		if m[3] != "" {
			year = normalizeYear(m[3], now)
		}
		candidate, ok := civilDate(year, time.Month(month), day, now.Location())
		if !ok {
			continue
		}
		if candidate.Before(now) {
			candidate = candidate.AddDate(1, 0, 0)
		}
		ranges = append(ranges, dayWindow(candidate))
	}
	return ranges
}

// normalizeYear interprets two-digit years as 2000+YY.
func normalizeYear(raw string, now time.Time) int {
	year, err := strconv.Atoi(raw)
	if err != nil {
		return now.Year()
	}
	if year < 100 {
		return 2000 + year
	}
	return year
}

// civilDate builds midnight of year/month/day in loc, rejecting combinations
// time.Date would silently normalize (e.g. February 30).
func civilDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek returns midnight of the Monday of t's week.
func startOfWeek(t time.Time) time.Time {
	t = startOfDay(t)
	return t.AddDate(0, 0, -((int(t.Weekday()) + 6) % 7))
}

func dayWindow(day time.Time) models.TimeInterval {
	start := startOfDay(day)
	return models.TimeInterval{Start: start, End: start.AddDate(0, 0, 1)}
}
