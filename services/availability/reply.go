package availability

import (
	"context"
	"fmt"
	"strings"

	"calendary/models"
	"calendary/utils"

	"go.uber.org/zap"
)

const originalEmailLimit = 400

// draftReply produces the reply text for the found slots. Model drafting is
// opt-in per request; any drafting failure falls back to the template reply.
func (s *DefaultAvailabilityService) draftReply(ctx context.Context, input models.AvailabilityRequest, request models.SchedulingRequest, slots []models.ProposedSlot, zone string) string {
	if !input.UseGemini || s.Drafter == nil {
		return buildFallbackReply(input.EmailBody, slots)
	}

	reply, err := s.Drafter.DraftReply(ctx, buildPrompt(input.EmailBody, request, slots, zone))
	if err != nil || reply == "" {
		utils.GetLogger().Warn("reply drafting failed, using template", zap.Error(err))
		return buildFallbackReply(input.EmailBody, slots)
	}
	return reply
}

func buildFallbackReply(emailBody string, slots []models.ProposedSlot) string {
	bullets := make([]string, 0, len(slots))
	for _, slot := range slots {
		bullets = append(bullets, "• "+slot.Label)
	}
	return fmt.Sprintf("Thanks for reaching out!\n\nHere are a few times that work well for me:\n%s\n\nLet me know if any of these work or if you need other options.\n\n%s",
		strings.Join(bullets, "\n"), truncateOriginal(emailBody))
}

func buildPrompt(emailBody string, request models.SchedulingRequest, slots []models.ProposedSlot, zone string) string {
	options := make([]string, 0, len(slots))
	for i, slot := range slots {
		options = append(options, fmt.Sprintf("Option %d: %s", i+1, slot.Label))
	}

	return fmt.Sprintf(`Draft a short, professional meeting reply. Mention appreciation, present these options, and ask the recipient to confirm or suggest alternatives.

Meeting duration: %d minutes
Timezone: %s
Options:
%s

Original email:
"""
%s
"""`, request.DurationMinutes, zone, strings.Join(options, "\n"), emailBody)
}

func truncateOriginal(text string) string {
	trimmed := strings.TrimSpace(text)
	runes := []rune(trimmed)
	if len(runes) <= originalEmailLimit {
		return trimmed
	}
	return string(runes[:originalEmailLimit]) + "…"
}
