package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActiveStatus_WireCodes(t *testing.T) {
	b, err := json.Marshal(struct {
		Status ActiveStatus `json:"status"`
	}{Status: StatusActive})
	require.NoError(t, err)
	require.JSONEq(t, `{"status":"Y"}`, string(b))

	var got struct {
		Status ActiveStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"n"}`), &got))
	require.Equal(t, StatusInactive, got.Status)

	require.Error(t, json.Unmarshal([]byte(`{"status":"X"}`), &got))
}

func TestPaymentStatus_ScanAndValue(t *testing.T) {
	var s PaymentStatus
	require.NoError(t, s.Scan([]byte("Y")))
	require.Equal(t, PaymentPaid, s)

	v, err := s.Value()
	require.NoError(t, err)
	require.Equal(t, "Y", v)

	require.NoError(t, s.Scan(nil))
	require.Equal(t, PaymentPending, s)

	require.Error(t, s.Scan(42))
}

func TestParseGSTType(t *testing.T) {
	require.Equal(t, GSTInterState, ParseGSTType(" inter "))
	require.Equal(t, GSTIntraState, ParseGSTType("INTRA"))
	require.Equal(t, GSTIntraState, ParseGSTType(""))
	require.Equal(t, DiscountPercent, ParseDiscountType("percent"))
	require.Equal(t, DiscountAmount, ParseDiscountType("flat"))
}
