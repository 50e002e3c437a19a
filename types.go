package recipemd

import (
	"math/big"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Amount is a quantity with an optional exact numeric factor and an optional
// unit. Factors are kept as rationals so fraction notation ("1 1/2") survives
// scaling without floating point drift. The zero Unit string means the amount
// has no unit.
type Amount struct {
	Factor *big.Rat
	Unit   string
}

// NewAmount builds an Amount from an integer factor and unit.
func NewAmount(factor int64, unit string) Amount {
	return Amount{Factor: big.NewRat(factor, 1), Unit: unit}
}

// NewRatAmount builds an Amount from a rational factor and unit.
func NewRatAmount(num, den int64, unit string) Amount {
	return Amount{Factor: big.NewRat(num, den), Unit: unit}
}

// HasFactor reports whether the amount carries a numeric factor.
func (a Amount) HasFactor() bool {
	return a.Factor != nil
}

// Equal reports structural equality of two amounts.
func (a Amount) Equal(other Amount) bool {
	if a.Unit != other.Unit {
		return false
	}
	if (a.Factor == nil) != (other.Factor == nil) {
		return false
	}
	if a.Factor == nil {
		return true
	}
	return a.Factor.Cmp(other.Factor) == 0
}

// String renders the amount in canonical form without rounding.
func (a Amount) String() string {
	return serializeAmount(a, nil)
}

func (a Amount) clone() Amount {
	out := Amount{Unit: a.Unit}
	if a.Factor != nil {
		out.Factor = new(big.Rat).Set(a.Factor)
	}
	return out
}

// Ingredient is a single entry of an ingredient list. When Link is set the
// ingredient references another recipe document and Name carries the link's
// display text.
type Ingredient struct {
	Name   string
	Amount *Amount
	Link   string
}

func (i Ingredient) clone() Ingredient {
	out := Ingredient{Name: i.Name, Link: i.Link}
	if i.Amount != nil {
		amount := i.Amount.clone()
		out.Amount = &amount
	}
	return out
}

// IngredientGroup is a titled collection of ingredients with optional nested
// subgroups. Nesting reflects the heading levels of the source document.
type IngredientGroup struct {
	Title       string
	Ingredients []Ingredient
	Groups      []IngredientGroup
}

// LeafIngredients returns the group's ingredients followed by those of all
// nested subgroups, depth first.
func (g IngredientGroup) LeafIngredients() []Ingredient {
	return collectLeaves(g.Ingredients, g.Groups)
}

func (g IngredientGroup) clone() IngredientGroup {
	out := IngredientGroup{Title: g.Title}
	out.Ingredients = cloneIngredients(g.Ingredients)
	out.Groups = cloneGroups(g.Groups)
	return out
}

// Recipe is the parsed form of a RecipeMD document. Instances are treated as
// immutable values; scaling and flattening return fresh copies.
type Recipe struct {
	Title        string
	Description  string
	Tags         []string
	Yields       []Amount
	Ingredients  []Ingredient
	Groups       []IngredientGroup
	Instructions string
}

// LeafIngredients returns every ingredient of the recipe, ungrouped entries
// first, then grouped entries depth first in document order.
func (r *Recipe) LeafIngredients() []Ingredient {
	return collectLeaves(r.Ingredients, r.Groups)
}

// Units returns all units mentioned by the recipe: ingredient amount units
// followed by yield units. Empty units are skipped.
func (r *Recipe) Units() []string {
	var units []string
	for _, ingr := range r.LeafIngredients() {
		if ingr.Amount != nil && ingr.Amount.Unit != "" {
			units = append(units, ingr.Amount.Unit)
		}
	}
	for _, y := range r.Yields {
		if y.Unit != "" {
			units = append(units, y.Unit)
		}
	}
	return units
}

// Validate checks the model invariants: a title must be present, every group
// must carry a title, and the recipe must declare at least one ingredient or
// ingredient group.
func (r *Recipe) Validate() error {
	err := validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Ingredients, validation.By(func(any) error {
			if len(r.Ingredients) == 0 && len(r.Groups) == 0 {
				return validation.NewError(
					"recipe.ingredients_required",
					"at least one ingredient or ingredient group is required",
				)
			}
			return nil
		})),
	)
	if err != nil {
		return err
	}
	return validateGroups(r.Groups)
}

func validateGroups(groups []IngredientGroup) error {
	for _, g := range groups {
		if g.Title == "" {
			return validation.NewError(
				"recipe.group_title_required",
				"ingredient group title is required",
			)
		}
		if err := validateGroups(g.Groups); err != nil {
			return err
		}
	}
	return nil
}

func (r *Recipe) clone() *Recipe {
	out := &Recipe{
		Title:        r.Title,
		Description:  r.Description,
		Instructions: r.Instructions,
	}
	out.Tags = append([]string(nil), r.Tags...)
	out.Yields = make([]Amount, 0, len(r.Yields))
	for _, y := range r.Yields {
		out.Yields = append(out.Yields, y.clone())
	}
	out.Ingredients = cloneIngredients(r.Ingredients)
	out.Groups = cloneGroups(r.Groups)
	return out
}

func cloneIngredients(in []Ingredient) []Ingredient {
	if in == nil {
		return nil
	}
	out := make([]Ingredient, 0, len(in))
	for _, ingr := range in {
		out = append(out, ingr.clone())
	}
	return out
}

func cloneGroups(in []IngredientGroup) []IngredientGroup {
	if in == nil {
		return nil
	}
	out := make([]IngredientGroup, 0, len(in))
	for _, g := range in {
		out = append(out, g.clone())
	}
	return out
}

func collectLeaves(ingredients []Ingredient, groups []IngredientGroup) []Ingredient {
	out := append([]Ingredient(nil), ingredients...)
	for _, g := range groups {
		out = append(out, collectLeaves(g.Ingredients, g.Groups)...)
	}
	return out
}
