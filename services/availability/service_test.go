package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"calendary/calendar"
	"calendary/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBusyProvider struct {
	zone    string
	busy    []models.BusyInterval
	err     error
	queries int
}

func (f *fakeBusyProvider) TimeZone(ctx context.Context, userID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.zone, nil
}

func (f *fakeBusyProvider) BusyIntervals(ctx context.Context, userID string, start, end time.Time) ([]models.BusyInterval, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.queries++
	return f.busy, nil
}

type fakeDrafter struct {
	reply string
	err   error
}

func (f *fakeDrafter) DraftReply(ctx context.Context, prompt string) (string, error) {
	return f.reply, f.err
}

// Monday, September 29, 2025, 08:00 in New York.
func fixedClock(t *testing.T) func() time.Time {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	now := time.Date(2025, time.September, 29, 8, 0, 0, 0, loc)
	return func() time.Time { return now }
}

func newService(t *testing.T, provider calendar.BusyProvider) *DefaultAvailabilityService {
	t.Helper()
	return &DefaultAvailabilityService{
		Calendar: provider,
		Clock:    fixedClock(t),
	}
}

func TestProposeHappyPath(t *testing.T) {
	provider := &fakeBusyProvider{
		zone: "America/New_York",
		busy: []models.BusyInterval{
			{Start: "2025-09-30T09:00:00-04:00", End: "2025-09-30T10:00:00-04:00"},
		},
	}
	svc := newService(t, provider)

	resp, err := svc.Propose(context.Background(), "user-1", models.AvailabilityRequest{
		EmailBody:       "Can we meet tomorrow morning?",
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	// "tomorrow morning" pins Tuesday Sep 30, 9-12 local, minus the busy hour.
	require.NotEmpty(t, resp.ProposedSlots)
	for _, slot := range resp.ProposedSlots {
		assert.Equal(t, 30, slot.Start.Day())
		hour := slot.Start.Hour()
		assert.True(t, hour >= 10 && hour < 12, "slot outside the free morning: %v", slot.Start)
	}

	assert.Equal(t, 30, resp.Request.DurationMinutes)
	assert.Equal(t, []models.TimeOfDay{models.Morning}, resp.Request.TimeOfDayPreferences)
	require.Len(t, resp.Request.PreferredDateRanges, 1)

	assert.Contains(t, resp.Summary, "available time option")
	assert.Contains(t, resp.ReplyDraft, "Thanks for reaching out!")
	assert.Contains(t, resp.ReplyDraft, resp.ProposedSlots[0].Label)
	assert.Contains(t, resp.ReplyDraft, "Can we meet tomorrow morning?")
}

func TestProposeNoSlots(t *testing.T) {
	provider := &fakeBusyProvider{zone: "America/New_York"}
	svc := newService(t, provider)
	svc.WindowDays = 1

	// The only preferred day is fully busy.
	provider.busy = []models.BusyInterval{
		{Start: "2025-09-29T00:00:00-04:00", End: "2025-10-01T00:00:00-04:00"},
	}

	resp, err := svc.Propose(context.Background(), "user-1", models.AvailabilityRequest{
		EmailBody:       "any time tomorrow?",
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.ProposedSlots)
	assert.Equal(t, "I could not find any open slots over the next two weeks.", resp.Summary)
}

func TestProposeInvalidInput(t *testing.T) {
	svc := newService(t, &fakeBusyProvider{zone: "UTC"})

	_, err := svc.Propose(context.Background(), "user-1", models.AvailabilityRequest{EmailBody: "   ", DurationMinutes: 30})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Propose(context.Background(), "user-1", models.AvailabilityRequest{EmailBody: "hello", DurationMinutes: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProposeNotConnected(t *testing.T) {
	svc := newService(t, &fakeBusyProvider{err: calendar.ErrNotConnected})

	_, err := svc.Propose(context.Background(), "user-1", models.AvailabilityRequest{
		EmailBody:       "meet tomorrow?",
		DurationMinutes: 30,
	})
	assert.ErrorIs(t, err, calendar.ErrNotConnected)
}

func TestProposeUnknownZoneFallsBackToUTC(t *testing.T) {
	svc := newService(t, &fakeBusyProvider{zone: "Not/AZone"})

	resp, err := svc.Propose(context.Background(), "user-1", models.AvailabilityRequest{
		EmailBody:       "whenever works",
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.ProposedSlots)
	assert.Equal(t, time.UTC, resp.ProposedSlots[0].Start.Location())
}

func TestProposeUsesDrafterWhenRequested(t *testing.T) {
	svc := newService(t, &fakeBusyProvider{zone: "America/New_York"})
	svc.Drafter = &fakeDrafter{reply: "Model-drafted reply."}

	resp, err := svc.Propose(context.Background(), "user-1", models.AvailabilityRequest{
		EmailBody:       "meet tomorrow?",
		DurationMinutes: 30,
		UseGemini:       true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Model-drafted reply.", resp.ReplyDraft)
}

func TestProposeFallsBackWhenDrafterFails(t *testing.T) {
	svc := newService(t, &fakeBusyProvider{zone: "America/New_York"})
	svc.Drafter = &fakeDrafter{err: errors.New("model unavailable")}

	resp, err := svc.Propose(context.Background(), "user-1", models.AvailabilityRequest{
		EmailBody:       "meet tomorrow?",
		DurationMinutes: 30,
		UseGemini:       true,
	})
	require.NoError(t, err)
	assert.Contains(t, resp.ReplyDraft, "Thanks for reaching out!")
}

func TestBusyCacheScopedToWindow(t *testing.T) {
	mr := miniredis.RunT(t)

	provider := &fakeBusyProvider{zone: "America/New_York"}
	svc := newService(t, provider)
	svc.Cache = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	input := models.AvailabilityRequest{EmailBody: "meet tomorrow?", DurationMinutes: 30}

	// Same window twice: the second call is served from the cache.
	_, err := svc.Propose(context.Background(), "user-1", input)
	require.NoError(t, err)
	_, err = svc.Propose(context.Background(), "user-1", input)
	require.NoError(t, err)
	assert.Equal(t, 1, provider.queries)

	// A reconfigured window must not reuse the cached busy list.
	svc.WindowDays = 7
	_, err = svc.Propose(context.Background(), "user-1", input)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.queries)
}

func TestProposeIgnoresDrafterWithoutOptIn(t *testing.T) {
	svc := newService(t, &fakeBusyProvider{zone: "America/New_York"})
	svc.Drafter = &fakeDrafter{reply: "Model-drafted reply."}

	resp, err := svc.Propose(context.Background(), "user-1", models.AvailabilityRequest{
		EmailBody:       "meet tomorrow?",
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	assert.NotEqual(t, "Model-drafted reply.", resp.ReplyDraft)
}
