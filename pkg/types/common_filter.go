package types

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm/clause"
)

type CommonFilterOperator string

const (
	CommonFilterOperatorEq     CommonFilterOperator = "eq"
	CommonFilterOperatorNotEq  CommonFilterOperator = "not_eq"
	CommonFilterOperatorLt     CommonFilterOperator = "lt"
	CommonFilterOperatorLte    CommonFilterOperator = "lte"
	CommonFilterOperatorGt     CommonFilterOperator = "gt"
	CommonFilterOperatorGte    CommonFilterOperator = "gte"
	CommonFilterOperatorRange  CommonFilterOperator = "range"
	CommonFilterOperatorIn     CommonFilterOperator = "in"
	CommonFilterOperatorSearch CommonFilterOperator = "search"
)

// CommonFilter is the filter shape the console sends to every list endpoint.
type CommonFilter struct {
	Field    string               `json:"field"`
	Operator CommonFilterOperator `json:"operator"`
	Values   []any                `json:"values"`
}

// ErrUnsupportedField rejects filter or sort columns a list does not expose.
var ErrUnsupportedField = errors.New("unsupported field")

var columnName = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidateFilters rejects filters on columns outside allowed. Field names end
// up in SQL, so they are never taken from the request unchecked.
func ValidateFilters(filters []*CommonFilter, allowed []string) error {
	for _, f := range filters {
		if f == nil {
			continue
		}
		if !columnName.MatchString(f.Field) || !contains(allowed, f.Field) {
			return fmt.Errorf("%w: filter %q", ErrUnsupportedField, f.Field)
		}
	}
	return nil
}

// ValidateSort returns the column to order by, or def when sortBy is empty.
func ValidateSort(sortBy string, allowed []string, def string) (string, error) {
	if sortBy == "" {
		return def, nil
	}
	if !columnName.MatchString(sortBy) || !contains(allowed, sortBy) {
		return "", fmt.Errorf("%w: sort %q", ErrUnsupportedField, sortBy)
	}
	return sortBy, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// Build constructs a GORM expression.
func (f *CommonFilter) Build(builder clause.Builder) {
	if len(f.Values) == 0 {
		builder.WriteString("1=1")
		return
	}

	value := f.Values[0]

	switch f.Operator {
	case CommonFilterOperatorEq:
		clause.Eq{Column: f.Field, Value: value}.Build(builder)
	case CommonFilterOperatorNotEq:
		clause.Neq{Column: f.Field, Value: value}.Build(builder)
	case CommonFilterOperatorLt:
		clause.Lt{Column: f.Field, Value: value}.Build(builder)
	case CommonFilterOperatorLte:
		clause.Lte{Column: f.Field, Value: value}.Build(builder)
	case CommonFilterOperatorGt:
		clause.Gt{Column: f.Field, Value: value}.Build(builder)
	case CommonFilterOperatorGte:
		clause.Gte{Column: f.Field, Value: value}.Build(builder)
	case CommonFilterOperatorRange:
		if len(f.Values) < 2 {
			builder.WriteString("1=1")
			return
		}
		clause.And(clause.Gte{Column: f.Field, Value: f.Values[0]}, clause.Lte{Column: f.Field, Value: f.Values[1]}).Build(builder)
	case CommonFilterOperatorIn:
		clause.IN{Column: f.Field, Values: f.Values}.Build(builder)
	case CommonFilterOperatorSearch:
		// case-insensitive contains, portable across postgres and sqlite
		term := "%" + strings.ToLower(fmt.Sprint(value)) + "%"
		clause.Expr{SQL: "LOWER(?) LIKE ?", Vars: []any{clause.Column{Name: f.Field}, term}}.Build(builder)
	default:
		builder.WriteString("1=1")
	}
}

// FiltersAnd combines filters into a single clause.Expression.
type FiltersAnd []*CommonFilter

func (w FiltersAnd) Build(builder clause.Builder) {
	exprs := make([]clause.Expression, 0, len(w))
	for _, f := range w {
		if f != nil {
			exprs = append(exprs, f)
		}
	}
	if len(exprs) == 0 {
		builder.WriteString("1=1")
		return
	}
	clause.And(exprs...).Build(builder)
}
