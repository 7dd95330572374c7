package types

import "strings"

// GSTType decides which GST lines apply to an invoice.
type GSTType string

const (
	// GSTIntraState bills CGST and SGST.
	GSTIntraState GSTType = "INTRA"
	// GSTInterState bills IGST.
	GSTInterState GSTType = "INTER"
)

// ParseGSTType normalises a loosely written gst_type; anything that is not
// inter-state is treated as intra-state.
func ParseGSTType(s string) GSTType {
	if strings.EqualFold(strings.TrimSpace(s), string(GSTInterState)) {
		return GSTInterState
	}
	return GSTIntraState
}

func (t GSTType) IsInterState() bool { return t == GSTInterState }

type DiscountType string

const (
	DiscountAmount  DiscountType = "Amount"
	DiscountPercent DiscountType = "Percent"
)

// ParseDiscountType defaults to an absolute amount.
func ParseDiscountType(s string) DiscountType {
	if strings.EqualFold(strings.TrimSpace(s), string(DiscountPercent)) {
		return DiscountPercent
	}
	return DiscountAmount
}
