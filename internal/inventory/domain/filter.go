package domain

import (
	"fmt"
	"strconv"
)

// Filter is an optional exact-match predicate on one named field.
type Filter struct {
	Field string
	Value string
}

// NoFilter matches every row.
var NoFilter = Filter{}

// Where builds a filter on field.
func Where(field, value string) Filter {
	return Filter{Field: field, Value: value}
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return f.Field == ""
}

// Fielder exposes filterable fields of an entity as strings.
type Fielder interface {
	FieldValue(name string) (string, bool)
}

// Matcher compiles f against T. Unknown fields are a validation error.
func Matcher[T Fielder](f Filter) (func(T) bool, error) {
	if f.IsZero() {
		return func(T) bool { return true }, nil
	}
	var zero T
	if _, ok := zero.FieldValue(f.Field); !ok {
		return nil, fmt.Errorf("%w: cannot filter on %q", ErrValidation, f.Field)
	}
	want := f.Value
	if f.Field == "status" {
		status, err := ParseStockStatus(want)
		if err != nil {
			return nil, err
		}
		want = string(status)
	}
	return func(v T) bool {
		got, _ := v.FieldValue(f.Field)
		return got == want
	}, nil
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
