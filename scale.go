package recipemd

import (
	"math/big"
)

// Multiply returns a copy of r with every yield and every ingredient amount
// scaled by factor. Amounts without a numeric factor ("some salt") pass
// through unchanged.
func Multiply(r *Recipe, factor *big.Rat) *Recipe {
	out := r.clone()
	for i := range out.Yields {
		if out.Yields[i].Factor != nil {
			out.Yields[i].Factor.Mul(out.Yields[i].Factor, factor)
		}
	}
	scaleIngredients(out.Ingredients, factor)
	scaleGroups(out.Groups, factor)
	return out
}

func scaleIngredients(ingredients []Ingredient, factor *big.Rat) {
	for i := range ingredients {
		if a := ingredients[i].Amount; a != nil && a.Factor != nil {
			a.Factor.Mul(a.Factor, factor)
		}
	}
}

func scaleGroups(groups []IngredientGroup, factor *big.Rat) {
	for i := range groups {
		scaleIngredients(groups[i].Ingredients, factor)
		scaleGroups(groups[i].Groups, factor)
	}
}

// ScaleToYield returns a copy of r scaled so that the yield whose unit
// matches required renders required's factor. A unitless request against a
// recipe without a unitless yield is read as a number of whole recipes and
// scales by the factor directly.
func ScaleToYield(r *Recipe, required Amount) (*Recipe, error) {
	if required.Factor == nil {
		return nil, &NoMatchingYieldError{
			Requested: required,
			Available: append([]Amount(nil), r.Yields...),
		}
	}

	for _, y := range r.Yields {
		if y.Unit != required.Unit {
			continue
		}
		if y.Factor == nil || y.Factor.Sign() == 0 {
			return nil, &NoMatchingYieldError{
				Requested: required,
				Available: append([]Amount(nil), r.Yields...),
			}
		}
		factor := new(big.Rat).Quo(required.Factor, y.Factor)
		return Multiply(r, factor), nil
	}

	if required.Unit == "" {
		return Multiply(r, required.Factor), nil
	}

	return nil, &NoMatchingYieldError{
		Requested: required,
		Available: append([]Amount(nil), r.Yields...),
	}
}
