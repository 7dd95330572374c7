package subscription

import (
	"strings"
	"time"

	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/pkg/types"
)

// BillingPeriodYears is the default subscription length.
const BillingPeriodYears = 1

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// ParseDate reads a date as sent by the console. Layouts without a zone are
// read in loc. It returns nil for empty or unparseable input.
func ParseDate(s string, loc *time.Location) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t
		}
	}
	return nil
}

// ResolveBillingEnd returns explicit when it is set and after start, and
// start plus twelve months otherwise.
func ResolveBillingEnd(start time.Time, explicit *time.Time) time.Time {
	if explicit != nil && !explicit.IsZero() && explicit.After(start) {
		return *explicit
	}
	return start.AddDate(BillingPeriodYears, 0, 0)
}

// DisplayStatusAt is the status shown for sub on the calendar day of now in
// loc. A subscription stays valid through its expiry day; from the next day
// it is Expired whatever its stored status.
func DisplayStatusAt(sub *models.Subscription, now time.Time, loc *time.Location) types.DisplayStatus {
	if sub == nil {
		return types.DisplayStatusInactive
	}
	if loc == nil {
		loc = time.UTC
	}
	if !sub.ExpiryDate.IsZero() && dayOf(sub.ExpiryDate, loc).Before(dayOf(now, loc)) {
		return types.DisplayStatusExpired
	}
	if sub.Status == types.StatusActive {
		return types.DisplayStatusActive
	}
	return types.DisplayStatusInactive
}

func dayOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
