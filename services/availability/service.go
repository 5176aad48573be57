package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"calendary/models"
	"calendary/services/intent"
	"calendary/services/planner"
	"calendary/utils"

	"go.uber.org/zap"
)

const (
	defaultWindowDays = 14
	busyCacheTTL      = 2 * time.Minute
)

// ErrInvalidInput flags a request the pipeline cannot start from.
var ErrInvalidInput = errors.New("availability: emailBody and a positive durationMinutes are required")

// Propose runs the pipeline: resolve the calendar zone, capture one reference
// instant, extract intent from the email, search the next N days for slots
// and assemble summary, reply draft and structured request echo.
func (s *DefaultAvailabilityService) Propose(ctx context.Context, userID string, input models.AvailabilityRequest) (*models.AvailabilityResponse, error) {
	logger := utils.GetLogger()

	if strings.TrimSpace(input.EmailBody) == "" || input.DurationMinutes <= 0 {
		return nil, ErrInvalidInput
	}

	zone, err := s.Calendar.TimeZone(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve calendar time zone: %w", err)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		logger.Warn("unknown calendar time zone, falling back to UTC", zap.String("zone", zone))
		zone, loc = "UTC", time.UTC
	}

	// One reference instant feeds both extraction and search so date
	// rollover decisions are consistent within the call.
	now := s.now().In(loc)

	windowDays := s.WindowDays
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	windowStart := now
	windowEnd := now.AddDate(0, 0, windowDays)

	busy, err := s.busyIntervals(ctx, userID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("fetch busy intervals: %w", err)
	}

	request := intent.ComposeSchedulingRequest(input.EmailBody, input.DurationMinutes, loc, now)

	window := models.SearchWindow{
		TimeZone:         zone,
		Start:            windowStart.Format(time.RFC3339),
		End:              windowEnd.Format(time.RFC3339),
		WorkdayStartHour: s.WorkdayStartHour,
		WorkdayEndHour:   s.WorkdayEndHour,
	}
	slots := planner.ProposeMeetingSlots(busy, request, window)

	logger.Info("availability search complete",
		zap.String("userID", userID),
		zap.Int("busyIntervals", len(busy)),
		zap.Int("slots", len(slots)))

	return &models.AvailabilityResponse{
		Summary:       planner.BuildSummary(len(slots)),
		ProposedSlots: slots,
		ReplyDraft:    s.draftReply(ctx, input, request, slots, zone),
		Request:       request,
	}, nil
}

func (s *DefaultAvailabilityService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

// busyIntervals fetches the busy list, short-term cached per user and window
// so repeated drafts against the same inbox don't re-query the provider.
func (s *DefaultAvailabilityService) busyIntervals(ctx context.Context, userID string, start, end time.Time) ([]models.BusyInterval, error) {
	if s.Cache == nil {
		return s.Calendar.BusyIntervals(ctx, userID, start, end)
	}

	// Both window edges go into the key so a reconfigured window never
	// serves a busy list cached for a different span.
	key := fmt.Sprintf("busy:%s:%s:%s", userID,
		start.Format("2006-01-02T15:04"), end.Format("2006-01-02T15:04"))
	if data, err := s.Cache.Get(ctx, key).Result(); err == nil {
		var cached []models.BusyInterval
		if err := json.Unmarshal([]byte(data), &cached); err == nil {
			return cached, nil
		}
	}

	busy, err := s.Calendar.BusyIntervals(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(busy); err == nil {
		if err := s.Cache.Set(ctx, key, data, busyCacheTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache busy intervals", zap.Error(err))
		}
	}
	return busy, nil
}
