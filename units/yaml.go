package units

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"gopkg.in/yaml.v3"
)

// YAML definition shape:
//
//	quantities:
//	  - base_unit:
//	      id: l
//	      conversion_factor: 1
//	      alternative_names: [liter, liters]
//	    alternative_units:
//	      - id: ml
//	        conversion_factor: 1000
//	    display_units:
//	      - unit_name: ml
//	        max: 0.5
//
// Factors accept integers, decimals and "a/b" fractions and are kept exact.

type systemYAML struct {
	Quantities []quantityYAML `yaml:"quantities"`
}

type quantityYAML struct {
	BaseUnit         unitYAML          `yaml:"base_unit"`
	AlternativeUnits []unitYAML        `yaml:"alternative_units"`
	DisplayUnits     []displayUnitYAML `yaml:"display_units"`
}

type unitYAML struct {
	ID               string   `yaml:"id"`
	ConversionFactor ratYAML  `yaml:"conversion_factor"`
	PreferredName    string   `yaml:"preferred_name"`
	AlternativeNames []string `yaml:"alternative_names"`
	DisplayIgnoreMax ratYAML  `yaml:"display_ignore_max"`
}

type displayUnitYAML struct {
	UnitName string  `yaml:"unit_name"`
	Min      ratYAML `yaml:"min"`
	Max      ratYAML `yaml:"max"`
}

type ratYAML struct {
	rat *big.Rat
}

func (r *ratYAML) UnmarshalYAML(node *yaml.Node) error {
	text := strings.TrimSpace(node.Value)
	if text == "" || text == "~" || node.Tag == "!!null" {
		return nil
	}
	rat, ok := new(big.Rat).SetString(text)
	if !ok {
		return fmt.Errorf("units: invalid factor %q", node.Value)
	}
	r.rat = rat
	return nil
}

// Load reads a YAML unit system definition and validates it.
func Load(r io.Reader) (*UnitSystem, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("units: read definition: %w", err)
	}
	return Parse(data)
}

// Parse parses a YAML unit system definition and validates it.
func Parse(data []byte) (*UnitSystem, error) {
	var doc systemYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("units: parse definition: %w", err)
	}

	system := &UnitSystem{}
	for _, q := range doc.Quantities {
		quantity := Quantity{BaseUnit: unitFromYAML(q.BaseUnit)}
		if quantity.BaseUnit.ConversionFactor == nil {
			quantity.BaseUnit.ConversionFactor = big.NewRat(1, 1)
		}
		for _, u := range q.AlternativeUnits {
			quantity.AlternativeUnits = append(quantity.AlternativeUnits, unitFromYAML(u))
		}
		for _, du := range q.DisplayUnits {
			quantity.DisplayUnits = append(quantity.DisplayUnits, DisplayUnit{
				UnitName: du.UnitName,
				Min:      du.Min.rat,
				Max:      du.Max.rat,
			})
		}
		system.Quantities = append(system.Quantities, quantity)
	}

	if err := system.Validate(); err != nil {
		return nil, fmt.Errorf("units: invalid definition: %w", err)
	}
	return system, nil
}

func unitFromYAML(u unitYAML) Unit {
	return Unit{
		ID:               u.ID,
		ConversionFactor: u.ConversionFactor.rat,
		PreferredName:    u.PreferredName,
		AlternativeNames: u.AlternativeNames,
		DisplayIgnoreMax: u.DisplayIgnoreMax.rat,
	}
}
