package models

// TimeOfDay is a coarse bucket constraining acceptable slot start times.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
)

// SchedulingRequest is the structured intent extracted from one email.
// An empty PreferredDateRanges means the search is unconstrained by date.
type SchedulingRequest struct {
	DurationMinutes      int            `json:"durationMinutes"`
	PreferredDateRanges  []TimeInterval `json:"preferredDateRanges,omitempty"`
	TimeOfDayPreferences []TimeOfDay    `json:"timeOfDayPreferences,omitempty"`
	ParticipantMentions  []string       `json:"participantMentions,omitempty"`
	Notes                string         `json:"notes,omitempty"`
}
