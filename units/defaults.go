package units

import (
	"math/big"
)

// Metric returns a small built-in system covering volume and weight in
// metric units, with common kitchen units mapped onto them.
func Metric() *UnitSystem {
	return &UnitSystem{
		Quantities: []Quantity{
			{
				BaseUnit: Unit{
					ID:               "l",
					ConversionFactor: big.NewRat(1, 1),
					AlternativeNames: []string{"liter", "liters", "litre", "litres"},
				},
				AlternativeUnits: []Unit{
					{
						ID:               "ml",
						ConversionFactor: big.NewRat(1000, 1),
						AlternativeNames: []string{"milliliter", "milliliters"},
					},
					{
						ID:               "tsp",
						ConversionFactor: big.NewRat(200, 1),
						AlternativeNames: []string{"teaspoon", "teaspoons"},
						DisplayIgnoreMax: big.NewRat(4, 1),
					},
					{
						ID:               "tbsp",
						ConversionFactor: big.NewRat(200, 3),
						AlternativeNames: []string{"tablespoon", "tablespoons"},
						DisplayIgnoreMax: big.NewRat(4, 1),
					},
				},
				DisplayUnits: []DisplayUnit{
					{UnitName: "ml", Max: big.NewRat(500, 1)},
				},
			},
			{
				BaseUnit: Unit{
					ID:               "kg",
					ConversionFactor: big.NewRat(1, 1),
					AlternativeNames: []string{"kilogram", "kilograms"},
				},
				AlternativeUnits: []Unit{
					{
						ID:               "g",
						ConversionFactor: big.NewRat(1000, 1),
						AlternativeNames: []string{"gram", "grams"},
					},
					{
						ID:               "mg",
						ConversionFactor: big.NewRat(1000000, 1),
						AlternativeNames: []string{"milligram", "milligrams"},
					},
				},
				DisplayUnits: []DisplayUnit{
					{UnitName: "g", Max: big.NewRat(1000, 1)},
				},
			},
		},
	}
}
