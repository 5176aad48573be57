package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	tokenRepo "calendary/database/repository/token"
	"calendary/models"
	"calendary/utils"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// ErrNotConnected is returned when the user never completed the OAuth flow.
var ErrNotConnected = errors.New("calendar: user has not connected a Google account")

// GoogleProvider implements BusyProvider against the Google Calendar
// free/busy API, using per-user tokens from the token repository.
type GoogleProvider struct {
	OAuth  *oauth2.Config
	Tokens tokenRepo.TokenRepository
}

func NewGoogleProvider(oauthCfg *oauth2.Config, tokens tokenRepo.TokenRepository) *GoogleProvider {
	return &GoogleProvider{OAuth: oauthCfg, Tokens: tokens}
}

func (p *GoogleProvider) service(ctx context.Context, userID string) (*gcal.Service, error) {
	token, err := p.Tokens.Get(ctx, userID)
	if errors.Is(err, tokenRepo.ErrNotFound) {
		return nil, ErrNotConnected
	}
	if err != nil {
		return nil, fmt.Errorf("load stored token: %w", err)
	}

	src := &savingTokenSource{
		ctx:    ctx,
		base:   p.OAuth.TokenSource(ctx, token),
		repo:   p.Tokens,
		userID: userID,
		last:   token,
	}
	svc, err := gcal.NewService(ctx, option.WithTokenSource(src))
	if err != nil {
		return nil, fmt.Errorf("create calendar client: %w", err)
	}
	return svc, nil
}

// TimeZone reports the primary calendar's IANA zone, defaulting to UTC when
// the profile carries none.
func (p *GoogleProvider) TimeZone(ctx context.Context, userID string) (string, error) {
	svc, err := p.service(ctx, userID)
	if err != nil {
		return "", err
	}
	entry, err := svc.CalendarList.Get("primary").Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("fetch calendar profile: %w", err)
	}
	if entry.TimeZone == "" {
		return "UTC", nil
	}
	return entry.TimeZone, nil
}

// BusyIntervals queries free/busy for the primary calendar over [start, end).
func (p *GoogleProvider) BusyIntervals(ctx context.Context, userID string, start, end time.Time) ([]models.BusyInterval, error) {
	svc, err := p.service(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp, err := svc.Freebusy.Query(&gcal.FreeBusyRequest{
		TimeMin: start.Format(time.RFC3339),
		TimeMax: end.Format(time.RFC3339),
		Items:   []*gcal.FreeBusyRequestItem{{Id: "primary"}},
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("free/busy query: %w", err)
	}

	primary, ok := resp.Calendars["primary"]
	if !ok {
		return nil, nil
	}
	busy := make([]models.BusyInterval, 0, len(primary.Busy))
	for _, period := range primary.Busy {
		busy = append(busy, models.BusyInterval{Start: period.Start, End: period.End})
	}
	return busy, nil
}

// savingTokenSource writes refreshed access tokens back to the repository so
// the next call does not need another refresh round-trip.
type savingTokenSource struct {
	ctx    context.Context
	base   oauth2.TokenSource
	repo   tokenRepo.TokenRepository
	userID string
	last   *oauth2.Token
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}
	if s.last == nil || token.AccessToken != s.last.AccessToken {
		if err := s.repo.Save(s.ctx, s.userID, token); err != nil {
			utils.GetLogger().Warn("failed to persist refreshed token",
				zap.String("userID", s.userID), zap.Error(err))
		}
		s.last = token
	}
	return token, nil
}
