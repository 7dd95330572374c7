package billing

import (
	"encoding/json"
	"math"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// CoerceNumber reads a loosely typed number. Anything that is not a finite
// number, or a string holding one, yields zero.
func CoerceNumber(v any) decimal.Decimal {
	switch n := v.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return n
	case *decimal.Decimal:
		if n == nil {
			return decimal.Zero
		}
		return *n
	case int:
		return decimal.NewFromInt(int64(n))
	case int32:
		return decimal.NewFromInt32(n)
	case int64:
		return decimal.NewFromInt(n)
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(n)), 0)
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(n), 0)
	case float32:
		return fromFloat(float64(n))
	case float64:
		return fromFloat(n)
	case json.Number:
		return fromString(n.String())
	case string:
		return fromString(n)
	case bool:
		if n {
			return decimal.NewFromInt(1)
		}
		return decimal.Zero
	}
	return decimal.Zero
}

// CoerceInt truncates CoerceNumber toward zero.
func CoerceInt(v any) int {
	return int(CoerceNumber(v).IntPart())
}

func fromFloat(f float64) decimal.Decimal {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(f)
}

func fromString(s string) decimal.Decimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
