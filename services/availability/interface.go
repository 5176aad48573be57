package availability

import (
	"context"
	"time"

	"calendary/calendar"
	"calendary/models"
	"calendary/services/intelligence"

	"github.com/go-redis/redis/v8"
)

// AvailabilityService runs the full pipeline for one email: extract intent,
// fetch busy intervals, search for slots and draft a reply.
type AvailabilityService interface {
	Propose(ctx context.Context, userID string, input models.AvailabilityRequest) (*models.AvailabilityResponse, error)
}

// DefaultAvailabilityService implements AvailabilityService.
type DefaultAvailabilityService struct {
	Calendar calendar.BusyProvider
	Drafter  intelligence.ReplyDrafter // nil disables model drafting
	Cache    *redis.Client             // nil disables busy-list caching

	// Clock supplies the reference instant; tests pin it for reproducible
	// date rollover. Defaults to time.Now.
	Clock func() time.Time

	WindowDays       int
	WorkdayStartHour int
	WorkdayEndHour   int
}
