package subscription

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fatflowers/console/internal/models"
	"github.com/fatflowers/console/pkg/types"
)

func TestParseDate(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	got := ParseDate("2024-01-15", loc)
	require.NotNil(t, got)
	require.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, loc), *got)

	got = ParseDate("2024-01-15T10:00:00Z", loc)
	require.NotNil(t, got)
	require.True(t, got.Equal(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)))

	got = ParseDate("15/01/2024", nil)
	require.NotNil(t, got)
	require.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *got)

	require.Nil(t, ParseDate("", loc))
	require.Nil(t, ParseDate("not a date", loc))
	require.Nil(t, ParseDate("2024-13-45", loc))
}

func TestResolveBillingEnd(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), ResolveBillingEnd(start, nil))

	leap := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), ResolveBillingEnd(leap, nil))

	same := start
	require.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), ResolveBillingEnd(start, &same))
}

func TestDisplayStatusAt(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// Expires on 2025-01-15 India time.
	expiry := time.Date(2025, 1, 15, 0, 0, 0, 0, loc)
	active := &models.Subscription{Status: types.StatusActive, ExpiryDate: expiry}
	inactive := &models.Subscription{Status: types.StatusInactive, ExpiryDate: expiry}

	tests := []struct {
		name string
		sub  *models.Subscription
		now  time.Time
		want types.DisplayStatus
	}{
		{"before expiry", active, time.Date(2025, 1, 14, 12, 0, 0, 0, loc), types.DisplayStatusActive},
		{"late on expiry day", active, time.Date(2025, 1, 15, 23, 59, 0, 0, loc), types.DisplayStatusActive},
		{"day after expiry", active, time.Date(2025, 1, 16, 0, 1, 0, 0, loc), types.DisplayStatusExpired},
		// 2025-01-15 20:00 UTC is already the 16th in India.
		{"day boundary follows billing zone", active, time.Date(2025, 1, 15, 20, 0, 0, 0, time.UTC), types.DisplayStatusExpired},
		{"inactive not expired", inactive, time.Date(2025, 1, 1, 0, 0, 0, 0, loc), types.DisplayStatusInactive},
		{"expired wins over inactive", inactive, time.Date(2025, 2, 1, 0, 0, 0, 0, loc), types.DisplayStatusExpired},
		{"nil", nil, time.Now(), types.DisplayStatusInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DisplayStatusAt(tt.sub, tt.now, loc))
		})
	}
}
