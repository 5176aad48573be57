package planner

import "fmt"

// BuildSummary phrases a slot count for the caller. Zero results is the
// defined "no availability" outcome, not an error.
func BuildSummary(count int) string {
	switch count {
	case 0:
		return "I could not find any open slots over the next two weeks."
	case 1:
		return "I found one available time option."
	default:
		return fmt.Sprintf("I found %d available time options over the next two weeks.", count)
	}
}
