package calendar

import (
	"context"
	"time"

	"calendary/models"
)

// BusyProvider is the external collaborator that supplies a calendar's busy
// intervals and its IANA time zone. The scheduling core never infers a zone
// itself; it searches whatever this provider reports.
type BusyProvider interface {
	TimeZone(ctx context.Context, userID string) (string, error)
	BusyIntervals(ctx context.Context, userID string, start, end time.Time) ([]models.BusyInterval, error)
}
