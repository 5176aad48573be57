package intent

import (
	"strings"
	"time"

	"calendary/models"
)

// ComposeSchedulingRequest merges temporal extraction, preference extraction
// and the caller-supplied duration into one immutable request. The reference
// instant is an explicit parameter: the caller captures "now" once and both
// extractors see the same value, so identical inputs give identical output.
// Duration is taken verbatim; nothing is inferred from the text.
func ComposeSchedulingRequest(text string, fallbackDurationMinutes int, loc *time.Location, now time.Time) models.SchedulingRequest {
	now = now.In(loc)
	return models.SchedulingRequest{
		DurationMinutes:      fallbackDurationMinutes,
		PreferredDateRanges:  ExtractDateMentions(text, now, loc),
		TimeOfDayPreferences: ExtractTimeOfDay(text),
		ParticipantMentions:  ExtractParticipants(text),
		Notes:                strings.TrimSpace(text),
	}
}
