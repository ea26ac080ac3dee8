package repository

import "github.com/tair/cafe-inventory/internal/inventory/domain"

// --- products ---

// CreateProduct inserts a product.
func (s *Store) CreateProduct(p domain.Product) (domain.Product, error) {
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}
	return s.products.insert(p, nil)
}

// GetProduct retrieves a product by ID
func (s *Store) GetProduct(id uint) (domain.Product, error) {
	return s.products.get(id)
}

// ListProducts lists products matching f.
func (s *Store) ListProducts(f domain.Filter) ([]domain.Product, error) {
	return listFiltered(s.products, f)
}

// UpdateProduct merges patch onto the product.
func (s *Store) UpdateProduct(id uint, patch domain.ProductPatch) (domain.Product, error) {
	return s.products.update(id, func(p *domain.Product) error {
		patch.Apply(p)
		return p.Validate()
	}, nil)
}

// DeleteProduct removes a product. Recipes pointing at it are left as is.
func (s *Store) DeleteProduct(id uint) bool {
	defer s.unlinking()()
	return s.products.remove(id)
}

// --- ingredients ---

// CreateIngredient inserts an ingredient.
func (s *Store) CreateIngredient(i domain.Ingredient) (domain.Ingredient, error) {
	if err := i.Validate(); err != nil {
		return domain.Ingredient{}, err
	}
	return s.ingredients.insert(i, nil)
}

// GetIngredient retrieves an ingredient by ID
func (s *Store) GetIngredient(id uint) (domain.Ingredient, error) {
	return s.ingredients.get(id)
}

// ListIngredients lists ingredients matching f.
func (s *Store) ListIngredients(f domain.Filter) ([]domain.Ingredient, error) {
	return listFiltered(s.ingredients, f)
}

// UpdateIngredient merges patch onto the ingredient.
func (s *Store) UpdateIngredient(id uint, patch domain.IngredientPatch) (domain.Ingredient, error) {
	return s.ingredients.update(id, func(i *domain.Ingredient) error {
		patch.Apply(i)
		return i.Validate()
	}, nil)
}

// DeleteIngredient removes an ingredient. Recipe lines pointing at it are
// left as is.
func (s *Store) DeleteIngredient(id uint) bool {
	defer s.unlinking()()
	return s.ingredients.remove(id)
}

// --- supplies ---

// CreateSupply inserts a supply.
func (s *Store) CreateSupply(v domain.Supply) (domain.Supply, error) {
	if err := v.Validate(); err != nil {
		return domain.Supply{}, err
	}
	return s.supplies.insert(v, nil)
}

// GetSupply retrieves a supply by ID
func (s *Store) GetSupply(id uint) (domain.Supply, error) {
	return s.supplies.get(id)
}

// ListSupplies lists supplies matching f.
func (s *Store) ListSupplies(f domain.Filter) ([]domain.Supply, error) {
	return listFiltered(s.supplies, f)
}

// UpdateSupply merges patch onto the supply.
func (s *Store) UpdateSupply(id uint, patch domain.SupplyPatch) (domain.Supply, error) {
	return s.supplies.update(id, func(v *domain.Supply) error {
		patch.Apply(v)
		return v.Validate()
	}, nil)
}

// DeleteSupply removes a supply. Recipe lines pointing at it are left as is.
func (s *Store) DeleteSupply(id uint) bool {
	defer s.unlinking()()
	return s.supplies.remove(id)
}

// --- merchandise ---

// CreateMerchandise inserts a merchandise item.
func (s *Store) CreateMerchandise(m domain.Merchandise) (domain.Merchandise, error) {
	if err := m.Validate(); err != nil {
		return domain.Merchandise{}, err
	}
	return s.merchandise.insert(m, nil)
}

// GetMerchandise retrieves a merchandise item by ID
func (s *Store) GetMerchandise(id uint) (domain.Merchandise, error) {
	return s.merchandise.get(id)
}

// ListMerchandise lists merchandise matching f.
func (s *Store) ListMerchandise(f domain.Filter) ([]domain.Merchandise, error) {
	return listFiltered(s.merchandise, f)
}

// UpdateMerchandise merges patch onto the merchandise item.
func (s *Store) UpdateMerchandise(id uint, patch domain.MerchandisePatch) (domain.Merchandise, error) {
	return s.merchandise.update(id, func(m *domain.Merchandise) error {
		patch.Apply(m)
		return m.Validate()
	}, nil)
}

// DeleteMerchandise removes a merchandise item.
func (s *Store) DeleteMerchandise(id uint) bool {
	return s.merchandise.remove(id)
}
