package models

// AvailabilityRequest is the payload the booking assistant posts.
type AvailabilityRequest struct {
	EmailBody       string `json:"emailBody" binding:"required"`
	DurationMinutes int    `json:"durationMinutes" binding:"required,gt=0"`
	UseGemini       bool   `json:"useGemini"`
}

// AvailabilityResponse carries the ranked slots plus the structured request
// echo so downstream drafting can reuse what was inferred.
type AvailabilityResponse struct {
	Summary       string            `json:"summary"`
	ProposedSlots []ProposedSlot    `json:"proposedSlots"`
	ReplyDraft    string            `json:"replyDraft"`
	Request       SchedulingRequest `json:"request"`
}
