package domain

import (
	"fmt"
	"strings"
	"time"
)

// Recipe describes how a product is prepared. Its ingredient and supply
// lines live in their own tables keyed by RecipeID.
type Recipe struct {
	ID         uint       `json:"id"`
	ProductID  uint       `json:"productId"`
	BestBefore string     `json:"bestBefore,omitempty"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`
}

// FieldValue implements Fielder.
func (r Recipe) FieldValue(name string) (string, bool) {
	if name == "productId" {
		return idString(r.ProductID), true
	}
	return "", false
}

// Validate checks the shape of r. Reference checks happen in the store.
func (r Recipe) Validate() error {
	if r.ProductID == 0 {
		return fmt.Errorf("%w: productId is required", ErrValidation)
	}
	return nil
}

// RecipePatch is a partial recipe update.
type RecipePatch struct {
	ProductID  *uint      `json:"productId"`
	BestBefore *string    `json:"bestBefore"`
	ExpiryDate *time.Time `json:"expiryDate"`
}

// Apply merges the present fields onto r.
func (p RecipePatch) Apply(r *Recipe) {
	setIf(&r.ProductID, p.ProductID)
	setIf(&r.BestBefore, p.BestBefore)
	if p.ExpiryDate != nil {
		r.ExpiryDate = p.ExpiryDate
	}
}

// RecipeIngredient is one ingredient line of a recipe.
type RecipeIngredient struct {
	ID           uint    `json:"id"`
	RecipeID     uint    `json:"recipeId"`
	IngredientID uint    `json:"ingredientId"`
	Quantity     float64 `json:"quantity"`
	Measurement  string  `json:"measurement"`
}

// FieldValue implements Fielder.
func (l RecipeIngredient) FieldValue(name string) (string, bool) {
	switch name {
	case "recipeId":
		return idString(l.RecipeID), true
	case "ingredientId":
		return idString(l.IngredientID), true
	}
	return "", false
}

// Validate checks the shape of l.
func (l RecipeIngredient) Validate() error {
	if l.RecipeID == 0 {
		return fmt.Errorf("%w: recipeId is required", ErrValidation)
	}
	return l.ValidateLine()
}

// ValidateLine checks everything but the owning recipe, for lines
// submitted together with a new recipe.
func (l RecipeIngredient) ValidateLine() error {
	if l.IngredientID == 0 {
		return fmt.Errorf("%w: ingredientId is required", ErrValidation)
	}
	return validateLine(l.Quantity, l.Measurement)
}

// RecipeIngredientPatch is a partial recipe ingredient update.
type RecipeIngredientPatch struct {
	IngredientID *uint    `json:"ingredientId"`
	Quantity     *float64 `json:"quantity"`
	Measurement  *string  `json:"measurement"`
}

// Apply merges the present fields onto l.
func (p RecipeIngredientPatch) Apply(l *RecipeIngredient) {
	setIf(&l.IngredientID, p.IngredientID)
	setIf(&l.Quantity, p.Quantity)
	setIf(&l.Measurement, p.Measurement)
}

// RecipeSupply is one supply line of a recipe.
type RecipeSupply struct {
	ID          uint    `json:"id"`
	RecipeID    uint    `json:"recipeId"`
	SupplyID    uint    `json:"supplyId"`
	Quantity    float64 `json:"quantity"`
	Measurement string  `json:"measurement"`
}

// FieldValue implements Fielder.
func (l RecipeSupply) FieldValue(name string) (string, bool) {
	switch name {
	case "recipeId":
		return idString(l.RecipeID), true
	case "supplyId":
		return idString(l.SupplyID), true
	}
	return "", false
}

// Validate checks the shape of l.
func (l RecipeSupply) Validate() error {
	if l.RecipeID == 0 {
		return fmt.Errorf("%w: recipeId is required", ErrValidation)
	}
	return l.ValidateLine()
}

// ValidateLine checks everything but the owning recipe.
func (l RecipeSupply) ValidateLine() error {
	if l.SupplyID == 0 {
		return fmt.Errorf("%w: supplyId is required", ErrValidation)
	}
	return validateLine(l.Quantity, l.Measurement)
}

// RecipeSupplyPatch is a partial recipe supply update.
type RecipeSupplyPatch struct {
	SupplyID    *uint    `json:"supplyId"`
	Quantity    *float64 `json:"quantity"`
	Measurement *string  `json:"measurement"`
}

// Apply merges the present fields onto l.
func (p RecipeSupplyPatch) Apply(l *RecipeSupply) {
	setIf(&l.SupplyID, p.SupplyID)
	setIf(&l.Quantity, p.Quantity)
	setIf(&l.Measurement, p.Measurement)
}

func validateLine(quantity float64, measurement string) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if strings.TrimSpace(measurement) == "" {
		return fmt.Errorf("%w: measurement is required", ErrValidation)
	}
	return nil
}
