package domain

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Ingredient is a consumable used in recipes.
type Ingredient struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	Quantity    float64     `json:"quantity"`
	Measurement string      `json:"measurement"`
	BestBefore  *time.Time  `json:"bestBefore,omitempty"`
	Expiration  *time.Time  `json:"expiration,omitempty"`
	Status      StockStatus `json:"status"`
}

// FieldValue implements Fielder.
func (i Ingredient) FieldValue(name string) (string, bool) {
	switch name {
	case "name":
		return i.Name, true
	case "measurement":
		return i.Measurement, true
	case "status":
		return string(i.Status), true
	}
	return "", false
}

// Validate checks required ingredient fields.
func (i Ingredient) Validate() error {
	return validateStock(i.Name, i.Quantity, i.Measurement, i.Status)
}

// IngredientPatch is a partial ingredient update.
type IngredientPatch struct {
	Name        *string      `json:"name"`
	Quantity    *float64     `json:"quantity"`
	Measurement *string      `json:"measurement"`
	BestBefore  *time.Time   `json:"bestBefore"`
	Expiration  *time.Time   `json:"expiration"`
	Status      *StockStatus `json:"status"`
}

// Apply merges the present fields onto i.
func (p IngredientPatch) Apply(i *Ingredient) {
	setIf(&i.Name, p.Name)
	setIf(&i.Quantity, p.Quantity)
	setIf(&i.Measurement, p.Measurement)
	if p.BestBefore != nil {
		i.BestBefore = p.BestBefore
	}
	if p.Expiration != nil {
		i.Expiration = p.Expiration
	}
	setIf(&i.Status, p.Status)
}

// Supply is a non-food consumable (cups, lids, napkins).
type Supply struct {
	ID          uint        `json:"id"`
	Name        string      `json:"name"`
	Quantity    float64     `json:"quantity"`
	Measurement string      `json:"measurement"`
	SupplyDate  time.Time   `json:"supplyDate"`
	Status      StockStatus `json:"status"`
}

// FieldValue implements Fielder.
func (s Supply) FieldValue(name string) (string, bool) {
	switch name {
	case "name":
		return s.Name, true
	case "measurement":
		return s.Measurement, true
	case "status":
		return string(s.Status), true
	}
	return "", false
}

// Validate checks required supply fields.
func (s Supply) Validate() error {
	return validateStock(s.Name, s.Quantity, s.Measurement, s.Status)
}

// SupplyPatch is a partial supply update.
type SupplyPatch struct {
	Name        *string      `json:"name"`
	Quantity    *float64     `json:"quantity"`
	Measurement *string      `json:"measurement"`
	SupplyDate  *time.Time   `json:"supplyDate"`
	Status      *StockStatus `json:"status"`
}

// Apply merges the present fields onto s.
func (p SupplyPatch) Apply(s *Supply) {
	setIf(&s.Name, p.Name)
	setIf(&s.Quantity, p.Quantity)
	setIf(&s.Measurement, p.Measurement)
	setIf(&s.SupplyDate, p.SupplyDate)
	setIf(&s.Status, p.Status)
}

// Merchandise is retail stock counted in whole units.
type Merchandise struct {
	ID        uint        `json:"id"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	DateAdded time.Time   `json:"dateAdded"`
	Status    StockStatus `json:"status"`
}

// FieldValue implements Fielder.
func (m Merchandise) FieldValue(name string) (string, bool) {
	switch name {
	case "name":
		return m.Name, true
	case "status":
		return string(m.Status), true
	}
	return "", false
}

// Validate checks required merchandise fields.
func (m Merchandise) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if m.Quantity < 0 {
		return fmt.Errorf("%w: quantity cannot be negative", ErrValidation)
	}
	if !m.Status.Valid() {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, m.Status)
	}
	return nil
}

// MerchandisePatch is a partial merchandise update.
type MerchandisePatch struct {
	Name      *string      `json:"name"`
	Quantity  *int         `json:"quantity"`
	DateAdded *time.Time   `json:"dateAdded"`
	Status    *StockStatus `json:"status"`
}

// Apply merges the present fields onto m.
func (p MerchandisePatch) Apply(m *Merchandise) {
	setIf(&m.Name, p.Name)
	setIf(&m.Quantity, p.Quantity)
	setIf(&m.DateAdded, p.DateAdded)
	setIf(&m.Status, p.Status)
}

func validateStock(name string, quantity float64, measurement string, status StockStatus) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if quantity < 0 || math.IsNaN(quantity) || math.IsInf(quantity, 0) {
		return fmt.Errorf("%w: quantity must be a non-negative number", ErrValidation)
	}
	if strings.TrimSpace(measurement) == "" {
		return fmt.Errorf("%w: measurement is required", ErrValidation)
	}
	if !status.Valid() {
		return fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}
	return nil
}
