package domain

import (
	"fmt"
	"strings"
)

// Product is a menu item sold by the café.
type Product struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Size        string `json:"size,omitempty"`
}

// FieldValue implements Fielder.
func (p Product) FieldValue(name string) (string, bool) {
	switch name {
	case "name":
		return p.Name, true
	case "category":
		return p.Category, true
	case "size":
		return p.Size, true
	}
	return "", false
}

// Validate checks required product fields.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrValidation)
	}
	if strings.TrimSpace(p.Category) == "" {
		return fmt.Errorf("%w: category is required", ErrValidation)
	}
	return nil
}

// ProductPatch is a partial product update.
type ProductPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Size        *string `json:"size"`
}

// Apply merges the present fields onto p.
func (patch ProductPatch) Apply(p *Product) {
	setIf(&p.Name, patch.Name)
	setIf(&p.Description, patch.Description)
	setIf(&p.Category, patch.Category)
	setIf(&p.Size, patch.Size)
}
