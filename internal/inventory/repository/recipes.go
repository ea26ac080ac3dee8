package repository

import (
	"fmt"

	"github.com/tair/cafe-inventory/internal/inventory/domain"
)

// --- recipes ---

// CreateRecipe inserts a recipe for an existing product.
func (s *Store) CreateRecipe(r domain.Recipe) (domain.Recipe, error) {
	defer s.linking()()
	if err := r.Validate(); err != nil {
		return domain.Recipe{}, err
	}
	if err := s.requireProduct(r.ProductID); err != nil {
		return domain.Recipe{}, err
	}
	return s.recipes.insert(r, nil)
}

// CreateRecipeWithLines validates the recipe and every line, checks all
// references, and only then inserts the recipe followed by its lines. The
// RecipeID of each line is ignored and set to the new recipe.
func (s *Store) CreateRecipeWithLines(r domain.Recipe, ingredients []domain.RecipeIngredient, supplies []domain.RecipeSupply) (domain.Recipe, []domain.RecipeIngredient, []domain.RecipeSupply, error) {
	defer s.linking()()
	if err := r.Validate(); err != nil {
		return domain.Recipe{}, nil, nil, err
	}
	if err := s.requireProduct(r.ProductID); err != nil {
		return domain.Recipe{}, nil, nil, err
	}
	for i, line := range ingredients {
		if err := line.ValidateLine(); err != nil {
			return domain.Recipe{}, nil, nil, fmt.Errorf("ingredient line %d: %w", i+1, err)
		}
		if err := s.requireIngredient(line.IngredientID); err != nil {
			return domain.Recipe{}, nil, nil, fmt.Errorf("ingredient line %d: %w", i+1, err)
		}
	}
	for i, line := range supplies {
		if err := line.ValidateLine(); err != nil {
			return domain.Recipe{}, nil, nil, fmt.Errorf("supply line %d: %w", i+1, err)
		}
		if err := s.requireSupply(line.SupplyID); err != nil {
			return domain.Recipe{}, nil, nil, fmt.Errorf("supply line %d: %w", i+1, err)
		}
	}

	created, err := s.recipes.insert(r, nil)
	if err != nil {
		return domain.Recipe{}, nil, nil, err
	}

	ingOut := make([]domain.RecipeIngredient, 0, len(ingredients))
	for _, line := range ingredients {
		line.RecipeID = created.ID
		stored, err := s.recipeIngredients.insert(line, nil)
		if err != nil {
			return domain.Recipe{}, nil, nil, err
		}
		ingOut = append(ingOut, stored)
	}
	supOut := make([]domain.RecipeSupply, 0, len(supplies))
	for _, line := range supplies {
		line.RecipeID = created.ID
		stored, err := s.recipeSupplies.insert(line, nil)
		if err != nil {
			return domain.Recipe{}, nil, nil, err
		}
		supOut = append(supOut, stored)
	}
	return created, ingOut, supOut, nil
}

// GetRecipe retrieves a recipe by ID
func (s *Store) GetRecipe(id uint) (domain.Recipe, error) {
	return s.recipes.get(id)
}

// ListRecipes lists recipes matching f.
func (s *Store) ListRecipes(f domain.Filter) ([]domain.Recipe, error) {
	return listFiltered(s.recipes, f)
}

// UpdateRecipe merges patch onto the recipe. A new productId must exist.
func (s *Store) UpdateRecipe(id uint, patch domain.RecipePatch) (domain.Recipe, error) {
	defer s.linking()()
	if patch.ProductID != nil {
		if err := s.requireProduct(*patch.ProductID); err != nil {
			return domain.Recipe{}, err
		}
	}
	return s.recipes.update(id, func(r *domain.Recipe) error {
		patch.Apply(r)
		return r.Validate()
	}, nil)
}

// DeleteRecipe removes a recipe together with the lines it owns.
func (s *Store) DeleteRecipe(id uint) bool {
	defer s.unlinking()()
	if !s.recipes.remove(id) {
		return false
	}
	s.recipeIngredients.removeWhere(func(l domain.RecipeIngredient) bool { return l.RecipeID == id })
	s.recipeSupplies.removeWhere(func(l domain.RecipeSupply) bool { return l.RecipeID == id })
	return true
}

// --- recipe ingredient lines ---

// CreateRecipeIngredient inserts an ingredient line for an existing recipe
// and ingredient.
func (s *Store) CreateRecipeIngredient(l domain.RecipeIngredient) (domain.RecipeIngredient, error) {
	defer s.linking()()
	if err := l.Validate(); err != nil {
		return domain.RecipeIngredient{}, err
	}
	if err := s.requireRecipe(l.RecipeID); err != nil {
		return domain.RecipeIngredient{}, err
	}
	if err := s.requireIngredient(l.IngredientID); err != nil {
		return domain.RecipeIngredient{}, err
	}
	return s.recipeIngredients.insert(l, nil)
}

// GetRecipeIngredient retrieves a recipe ingredient line by ID
func (s *Store) GetRecipeIngredient(id uint) (domain.RecipeIngredient, error) {
	return s.recipeIngredients.get(id)
}

// ListRecipeIngredients lists ingredient lines matching f.
func (s *Store) ListRecipeIngredients(f domain.Filter) ([]domain.RecipeIngredient, error) {
	return listFiltered(s.recipeIngredients, f)
}

// UpdateRecipeIngredient merges patch onto the line.
func (s *Store) UpdateRecipeIngredient(id uint, patch domain.RecipeIngredientPatch) (domain.RecipeIngredient, error) {
	defer s.linking()()
	if patch.IngredientID != nil {
		if err := s.requireIngredient(*patch.IngredientID); err != nil {
			return domain.RecipeIngredient{}, err
		}
	}
	return s.recipeIngredients.update(id, func(l *domain.RecipeIngredient) error {
		patch.Apply(l)
		return l.Validate()
	}, nil)
}

// DeleteRecipeIngredient removes an ingredient line.
func (s *Store) DeleteRecipeIngredient(id uint) bool {
	return s.recipeIngredients.remove(id)
}

// --- recipe supply lines ---

// CreateRecipeSupply inserts a supply line for an existing recipe and
// supply.
func (s *Store) CreateRecipeSupply(l domain.RecipeSupply) (domain.RecipeSupply, error) {
	defer s.linking()()
	if err := l.Validate(); err != nil {
		return domain.RecipeSupply{}, err
	}
	if err := s.requireRecipe(l.RecipeID); err != nil {
		return domain.RecipeSupply{}, err
	}
	if err := s.requireSupply(l.SupplyID); err != nil {
		return domain.RecipeSupply{}, err
	}
	return s.recipeSupplies.insert(l, nil)
}

// GetRecipeSupply retrieves a recipe supply line by ID
func (s *Store) GetRecipeSupply(id uint) (domain.RecipeSupply, error) {
	return s.recipeSupplies.get(id)
}

// ListRecipeSupplies lists supply lines matching f.
func (s *Store) ListRecipeSupplies(f domain.Filter) ([]domain.RecipeSupply, error) {
	return listFiltered(s.recipeSupplies, f)
}

// UpdateRecipeSupply merges patch onto the line.
func (s *Store) UpdateRecipeSupply(id uint, patch domain.RecipeSupplyPatch) (domain.RecipeSupply, error) {
	defer s.linking()()
	if patch.SupplyID != nil {
		if err := s.requireSupply(*patch.SupplyID); err != nil {
			return domain.RecipeSupply{}, err
		}
	}
	return s.recipeSupplies.update(id, func(l *domain.RecipeSupply) error {
		patch.Apply(l)
		return l.Validate()
	}, nil)
}

// DeleteRecipeSupply removes a supply line.
func (s *Store) DeleteRecipeSupply(id uint) bool {
	return s.recipeSupplies.remove(id)
}

// --- reference checks ---

// linking holds the relations lock shared and returns its release.
func (s *Store) linking() func() {
	s.relations.RLock()
	return s.relations.RUnlock
}

// unlinking holds the relations lock exclusively and returns its release.
func (s *Store) unlinking() func() {
	s.relations.Lock()
	return s.relations.Unlock
}

func (s *Store) requireProduct(id uint) error {
	if !s.products.exists(id) {
		return fmt.Errorf("%w: product %d does not exist", domain.ErrValidation, id)
	}
	return nil
}

func (s *Store) requireRecipe(id uint) error {
	if !s.recipes.exists(id) {
		return fmt.Errorf("%w: recipe %d does not exist", domain.ErrValidation, id)
	}
	return nil
}

func (s *Store) requireIngredient(id uint) error {
	if !s.ingredients.exists(id) {
		return fmt.Errorf("%w: ingredient %d does not exist", domain.ErrValidation, id)
	}
	return nil
}

func (s *Store) requireSupply(id uint) error {
	if !s.supplies.exists(id) {
		return fmt.Errorf("%w: supply %d does not exist", domain.ErrValidation, id)
	}
	return nil
}

func (s *Store) requireUser(id uint) error {
	if !s.users.exists(id) {
		return fmt.Errorf("%w: user %d does not exist", domain.ErrValidation, id)
	}
	return nil
}
