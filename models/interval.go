package models

import "time"

// TimeInterval is a half-open [Start, End) range. Both ends carry their
// own location so arithmetic stays correct across DST transitions.
type TimeInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Valid reports whether the interval is non-degenerate.
func (i TimeInterval) Valid() bool {
	return i.Start.Before(i.End)
}

// Overlaps reports whether two half-open intervals intersect.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// BusyInterval is one committed range from the calendar provider, in the
// RFC 3339 form the free/busy API hands back. Unparseable or degenerate
// entries are dropped during search, never surfaced as errors.
type BusyInterval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SearchWindow bounds a slot search. Start and End are RFC 3339 instants;
// if either fails to parse the search yields no results. Work-hour bounds
// of 0/0 fall back to 9-17.
type SearchWindow struct {
	TimeZone         string `json:"timeZone"`
	Start            string `json:"start"`
	End              string `json:"end"`
	WorkdayStartHour int    `json:"workdayStartHour"`
	WorkdayEndHour   int    `json:"workdayEndHour"`
}

// ProposedSlot is one accepted meeting candidate. Start is always on a
// quarter-hour boundary and End-Start equals the requested duration.
type ProposedSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label"`
}
