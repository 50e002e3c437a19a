package units

import (
	"errors"
	"math/big"
	"testing"

	recipemd "github.com/goliatone/go-recipemd"
)

func TestConvertTo(t *testing.T) {
	system := Metric()

	amount := recipemd.Amount{Factor: big.NewRat(3, 20), Unit: "l"}
	converted, err := system.ConvertTo(amount, "ml")
	if err != nil {
		t.Fatalf("ConvertTo: %v", err)
	}
	if converted.Unit != "ml" || converted.Factor.Cmp(big.NewRat(150, 1)) != 0 {
		t.Fatalf("expected 150 ml, got %s %s", converted.Factor.RatString(), converted.Unit)
	}
}

func TestConvertToAcceptsAlternativeNames(t *testing.T) {
	system := Metric()

	amount := recipemd.Amount{Factor: big.NewRat(2, 1), Unit: "liters"}
	converted, err := system.ConvertTo(amount, "ml")
	if err != nil {
		t.Fatalf("ConvertTo: %v", err)
	}
	if converted.Factor.Cmp(big.NewRat(2000, 1)) != 0 {
		t.Fatalf("expected 2000 ml, got %s", converted.Factor.RatString())
	}
}

func TestConvertToBase(t *testing.T) {
	system := Metric()

	amount := recipemd.Amount{Factor: big.NewRat(250, 1), Unit: "g"}
	base, err := system.ConvertToBase(amount)
	if err != nil {
		t.Fatalf("ConvertToBase: %v", err)
	}
	if base.Unit != "kg" || base.Factor.Cmp(big.NewRat(1, 4)) != 0 {
		t.Fatalf("expected 1/4 kg, got %s %s", base.Factor.RatString(), base.Unit)
	}
}

func TestConvertUnknownUnit(t *testing.T) {
	system := Metric()

	_, err := system.ConvertTo(recipemd.Amount{Factor: big.NewRat(1, 1), Unit: "parsec"}, "ml")
	if !errors.Is(err, ErrConversion) {
		t.Fatalf("expected ErrConversion, got %v", err)
	}
}

func TestConvertBetweenQuantitiesFails(t *testing.T) {
	system := Metric()

	_, err := system.ConvertTo(recipemd.Amount{Factor: big.NewRat(1, 1), Unit: "l"}, "g")
	if !errors.Is(err, ErrConversion) {
		t.Fatalf("expected ErrConversion for l to g, got %v", err)
	}
}

func TestNormalize(t *testing.T) {
	system := Metric()

	// under the display threshold the volume renders in ml
	small, err := system.Normalize(recipemd.Amount{Factor: big.NewRat(3, 10), Unit: "l"})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if small.Unit != "ml" || small.Factor.Cmp(big.NewRat(300, 1)) != 0 {
		t.Fatalf("expected 300 ml, got %s %s", small.Factor.RatString(), small.Unit)
	}

	// larger volumes stay in the base unit
	large, err := system.Normalize(recipemd.Amount{Factor: big.NewRat(2, 1), Unit: "l"})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if large.Unit != "l" || large.Factor.Cmp(big.NewRat(2, 1)) != 0 {
		t.Fatalf("expected 2 l, got %s %s", large.Factor.RatString(), large.Unit)
	}
}

func TestNormalizeKeepsSmallAuthoredUnits(t *testing.T) {
	system := Metric()

	amount, err := system.Normalize(recipemd.Amount{Factor: big.NewRat(3, 1), Unit: "tbsp"})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if amount.Unit != "tbsp" || amount.Factor.Cmp(big.NewRat(3, 1)) != 0 {
		t.Fatalf("expected 3 tbsp kept, got %s %s", amount.Factor.RatString(), amount.Unit)
	}
}

func TestNormalizeUnknownUnitPassesThrough(t *testing.T) {
	system := Metric()

	amount, err := system.Normalize(recipemd.Amount{Factor: big.NewRat(2, 1), Unit: "handful"})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if amount.Unit != "handful" {
		t.Fatalf("expected unknown unit kept, got %q", amount.Unit)
	}
}

func TestParseYAML(t *testing.T) {
	definition := []byte(`
quantities:
  - base_unit:
      id: l
      conversion_factor: 1
      alternative_names: [liter, liters]
    alternative_units:
      - id: ml
        conversion_factor: 1000
      - id: cup
        conversion_factor: 4
    display_units:
      - unit_name: ml
        max: 500
`)

	system, err := Parse(definition)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(system.Quantities) != 1 {
		t.Fatalf("expected 1 quantity, got %d", len(system.Quantities))
	}

	converted, err := system.ConvertTo(recipemd.Amount{Factor: big.NewRat(1, 2), Unit: "cup"}, "ml")
	if err != nil {
		t.Fatalf("ConvertTo: %v", err)
	}
	if converted.Factor.Cmp(big.NewRat(125, 1)) != 0 {
		t.Fatalf("expected 125 ml, got %s", converted.Factor.RatString())
	}
}

func TestParseYAMLInvalidFactor(t *testing.T) {
	definition := []byte(`
quantities:
  - base_unit:
      id: l
    alternative_units:
      - id: ml
        conversion_factor: lots
`)

	if _, err := Parse(definition); err == nil {
		t.Fatalf("expected error for invalid factor")
	}
}

func TestValidateRejectsZeroFactor(t *testing.T) {
	system := &UnitSystem{
		Quantities: []Quantity{
			{
				BaseUnit: Unit{ID: "l", ConversionFactor: big.NewRat(1, 1)},
				AlternativeUnits: []Unit{
					{ID: "ml", ConversionFactor: new(big.Rat)},
				},
			},
		},
	}
	if err := system.Validate(); err == nil {
		t.Fatalf("expected validation error for zero conversion factor")
	}
}
