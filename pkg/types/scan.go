package types

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultScanSize = 10
	MaxScanSize     = 200
)

// ScanRequest is the paging, sorting and filtering body shared by list endpoints.
type ScanRequest struct {
	Filters   []*CommonFilter `json:"filters"`
	From      int             `json:"from"`
	Size      int             `json:"size"`
	SortBy    string          `json:"sort_by"`
	SortOrder string          `json:"sort_order"`
}

type ScanResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// ScanSpec names the columns a table exposes to list endpoints.
type ScanSpec struct {
	Fields      []string
	DefaultSort string
}

// Scan counts and pages tx according to req. Filter and sort columns are
// checked against spec before they reach SQL.
func Scan[T any](tx *gorm.DB, req *ScanRequest, spec ScanSpec) (*ScanResponse[T], error) {
	if req == nil {
		req = &ScanRequest{}
	}
	if err := ValidateFilters(req.Filters, spec.Fields); err != nil {
		return nil, err
	}
	sortBy, err := ValidateSort(req.SortBy, spec.Fields, spec.DefaultSort)
	if err != nil {
		return nil, err
	}
	size := req.Size
	if size <= 0 {
		size = DefaultScanSize
	}
	if size > MaxScanSize {
		size = MaxScanSize
	}
	from := max(req.From, 0)

	if len(req.Filters) > 0 {
		tx = tx.Where(clause.Where{Exprs: []clause.Expression{FiltersAnd(req.Filters)}})
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	rows := make([]T, 0)
	q := tx.Limit(size).Offset(from)
	if sortBy != "" {
		desc := !strings.EqualFold(req.SortOrder, "asc")
		q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: sortBy}, Desc: desc}}})
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list rows: %w", err)
	}
	return &ScanResponse[T]{Items: rows, Total: total}, nil
}
