package intent

import (
	"regexp"

	"calendary/models"
)

var (
	morningPattern   = regexp.MustCompile(`(?i)\bmorning\b`)
	afternoonPattern = regexp.MustCompile(`(?i)\bafternoon\b`)
	eveningPattern   = regexp.MustCompile(`(?i)\bevening\b`)

	// "with Alice", "with Sarah Chen and Dave", "with everyone", "with the team".
	participantPattern = regexp.MustCompile(`\b[Ww]ith\s+(?:[Ee]veryone\b|[Tt]he\s+[Tt]eam\b|[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?(?:\s+and\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)*)`)
	withPrefixPattern  = regexp.MustCompile(`(?i)^with\s+`)
)

// ExtractTimeOfDay returns the set of time-of-day buckets the text mentions.
func ExtractTimeOfDay(text string) []models.TimeOfDay {
	var prefs []models.TimeOfDay
	if morningPattern.MatchString(text) {
		prefs = append(prefs, models.Morning)
	}
	if afternoonPattern.MatchString(text) {
		prefs = append(prefs, models.Afternoon)
	}
	if eveningPattern.MatchString(text) {
		prefs = append(prefs, models.Evening)
	}
	return prefs
}

// ExtractParticipants returns the distinct participant mentions in the text,
// in order of first appearance.
func ExtractParticipants(text string) []string {
	var mentions []string
	seen := make(map[string]bool)
	for _, m := range participantPattern.FindAllString(text, -1) {
		mention := withPrefixPattern.ReplaceAllString(m, "")
		if mention == "" || seen[mention] {
			continue
		}
		seen[mention] = true
		mentions = append(mentions, mention)
	}
	return mentions
}
