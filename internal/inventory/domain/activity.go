package domain

import (
	"fmt"
	"strings"
	"time"
)

// ActivityLog is an immutable audit entry.
type ActivityLog struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"userId"`
	ActionType  string    `json:"actionType"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// FieldValue implements Fielder.
func (a ActivityLog) FieldValue(name string) (string, bool) {
	switch name {
	case "actionType":
		return a.ActionType, true
	case "userId":
		return idString(a.UserID), true
	}
	return "", false
}

// Validate checks the caller-supplied fields of an entry.
func (a ActivityLog) Validate() error {
	if a.UserID == 0 {
		return fmt.Errorf("%w: userId is required", ErrValidation)
	}
	if strings.TrimSpace(a.ActionType) == "" {
		return fmt.Errorf("%w: actionType is required", ErrValidation)
	}
	if strings.TrimSpace(a.Description) == "" {
		return fmt.Errorf("%w: description is required", ErrValidation)
	}
	return nil
}

// Audit action types
const (
	ActionProductCreated     = "PRODUCT_CREATED"
	ActionProductUpdated     = "PRODUCT_UPDATED"
	ActionProductDeleted     = "PRODUCT_DELETED"
	ActionIngredientCreated  = "INGREDIENT_CREATED"
	ActionIngredientUpdated  = "INGREDIENT_UPDATED"
	ActionIngredientDeleted  = "INGREDIENT_DELETED"
	ActionSupplyCreated      = "SUPPLY_CREATED"
	ActionSupplyUpdated      = "SUPPLY_UPDATED"
	ActionSupplyDeleted      = "SUPPLY_DELETED"
	ActionMerchandiseCreated = "MERCHANDISE_CREATED"
	ActionMerchandiseUpdated = "MERCHANDISE_UPDATED"
	ActionMerchandiseDeleted = "MERCHANDISE_DELETED"
	ActionRecipeCreated      = "RECIPE_CREATED"
	ActionRecipeUpdated      = "RECIPE_UPDATED"
	ActionRecipeDeleted      = "RECIPE_DELETED"

	ActionRecipeIngredientAdded   = "RECIPE_INGREDIENT_ADDED"
	ActionRecipeIngredientUpdated = "RECIPE_INGREDIENT_UPDATED"
	ActionRecipeIngredientRemoved = "RECIPE_INGREDIENT_REMOVED"
	ActionRecipeSupplyAdded       = "RECIPE_SUPPLY_ADDED"
	ActionRecipeSupplyUpdated     = "RECIPE_SUPPLY_UPDATED"
	ActionRecipeSupplyRemoved     = "RECIPE_SUPPLY_REMOVED"

	ActionStaffCreated   = "STAFF_CREATED"
	ActionStaffUpdated   = "STAFF_UPDATED"
	ActionStaffArchived  = "STAFF_ARCHIVED"
	ActionStaffRestored  = "STAFF_RESTORED"
	ActionUserRegistered = "USER_REGISTERED"
	ActionUserLogin      = "USER_LOGIN"
	ActionUserLogout     = "USER_LOGOUT"
)
