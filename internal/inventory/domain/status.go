package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StockStatus is the canonical status marker carried by ingredients,
// supplies and merchandise. It is set by whoever records the stock level;
// nothing in this module derives it from quantities.
type StockStatus string

const (
	StatusAvailable StockStatus = "available"
	StatusLow       StockStatus = "low"
	StatusRestock   StockStatus = "restock"
	StatusOut       StockStatus = "out"
	StatusExpired   StockStatus = "expired"
)

var statusLabels = map[StockStatus]string{
	StatusAvailable: "In Stock",
	StatusLow:       "Low Stock",
	StatusRestock:   "Needs Restock",
	StatusOut:       "Out of Stock",
	StatusExpired:   "Expired",
}

// Label returns the display label used by the dashboard.
func (s StockStatus) Label() string {
	return statusLabels[s]
}

// Valid reports whether s is a canonical status.
func (s StockStatus) Valid() bool {
	_, ok := statusLabels[s]
	return ok
}

// ParseStockStatus accepts either the canonical value or its display
// label, ignoring case.
func ParseStockStatus(s string) (StockStatus, error) {
	in := strings.TrimSpace(s)
	for status, label := range statusLabels {
		if strings.EqualFold(in, string(status)) || strings.EqualFold(in, label) {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: unknown status %q", ErrValidation, s)
}

// UnmarshalJSON normalizes labels to canonical values. An empty string is
// kept empty so create paths can apply the default.
func (s *StockStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: status must be a string", ErrValidation)
	}
	if raw == "" {
		*s = ""
		return nil
	}
	parsed, err := ParseStockStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// OrDefault returns StatusAvailable for an unset status.
func (s StockStatus) OrDefault() StockStatus {
	if s == "" {
		return StatusAvailable
	}
	return s
}
