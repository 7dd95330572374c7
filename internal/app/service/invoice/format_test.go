package invoice

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"5", "5.00"},
		{"999.999", "1,000.00"},
		{"4500", "4,500.00"},
		{"123456", "1,23,456.00"},
		{"1234567.5", "12,34,567.50"},
		{"123456789", "12,34,56,789.00"},
		{"-500", "-500.00"},
		{"-123456", "-1,23,456.00"},
		{"-0.001", "0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAmount(decimal.RequireFromString(tt.in)), tt.in)
	}
	assert.Equal(t, "Rs. 5,310.00", FormatMoney(decimal.NewFromInt(5310)))
}
