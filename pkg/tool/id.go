package tool

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

func GenerateUUIDV7() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewOrderID returns a human readable order number, ORD-YYYYMMDD-XXXXXXXX,
// dated in loc. The suffix is the random tail of a v7 uuid.
func NewOrderID(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	id := strings.ReplaceAll(GenerateUUIDV7(), "-", "")
	return "ORD-" + now.In(loc).Format("20060102") + "-" + strings.ToUpper(id[len(id)-8:])
}
