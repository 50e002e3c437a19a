// Package units converts recipe amounts between compatible units. A
// UnitSystem groups units into quantities (volume, mass) that share a base
// unit; every unit carries an exact rational factor relative to that base.
// Systems are defined in code or loaded from a YAML definition.
package units

import (
	"math/big"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	recipemd "github.com/goliatone/go-recipemd"
)

// Unit is a single unit of measurement within a quantity.
type Unit struct {
	// ID identifies the unit, typically its symbol ("ml").
	ID string
	// ConversionFactor expresses the unit relative to its quantity's base
	// unit: base amount * factor = amount in this unit. For base unit "l",
	// unit "ml" carries factor 1000.
	ConversionFactor *big.Rat
	// PreferredName, when set, is used instead of ID when converting for
	// display.
	PreferredName string
	// AlternativeNames lists long forms and translations ("liter",
	// "liters") that recipes may use for this unit.
	AlternativeNames []string
	// DisplayIgnoreMax keeps the authored unit when normalizing amounts at
	// or below this factor, so "3 Tbsp" is not rewritten to "45 ml".
	DisplayIgnoreMax *big.Rat
}

// DisplayName returns the name used when converting to this unit for
// display.
func (u Unit) DisplayName() string {
	if u.PreferredName != "" {
		return u.PreferredName
	}
	return u.ID
}

// Names returns every name the unit answers to.
func (u Unit) Names() []string {
	names := append([]string{u.ID}, u.AlternativeNames...)
	if u.PreferredName != "" {
		names = append(names, u.PreferredName)
	}
	return names
}

// Matches reports whether name refers to this unit.
func (u Unit) Matches(name string) bool {
	for _, candidate := range u.Names() {
		if candidate == name {
			return true
		}
	}
	return false
}

// DisplayUnit selects the unit used when normalizing amounts whose base
// factor falls strictly between Min and Max. Nil bounds are open.
type DisplayUnit struct {
	UnitName string
	Min      *big.Rat
	Max      *big.Rat
}

// Quantity is a physical quantity such as volume or weight, with one base
// unit and any number of alternative units expressed relative to it.
type Quantity struct {
	BaseUnit         Unit
	AlternativeUnits []Unit
	DisplayUnits     []DisplayUnit
}

// Units returns the base unit followed by the alternative units.
func (q Quantity) Units() []Unit {
	return append([]Unit{q.BaseUnit}, q.AlternativeUnits...)
}

func (q Quantity) unit(name string) (Unit, bool) {
	for _, u := range q.Units() {
		if u.Matches(name) {
			return u, true
		}
	}
	return Unit{}, false
}

// ConvertToUnit converts the amount to the named target unit. When
// normalizeName is set the result carries the target unit's display name
// instead of the name as given.
func (q Quantity) ConvertToUnit(a recipemd.Amount, targetName string, normalizeName bool) (recipemd.Amount, error) {
	if a.Unit == "" {
		return recipemd.Amount{}, &ConversionError{To: targetName, Reason: "amount has no unit"}
	}
	if a.Factor == nil {
		return recipemd.Amount{}, &ConversionError{From: a.Unit, To: targetName, Reason: "amount has no factor"}
	}
	source, ok := q.unit(a.Unit)
	if !ok {
		return recipemd.Amount{}, &ConversionError{From: a.Unit, To: q.BaseUnit.ID}
	}
	target, ok := q.unit(targetName)
	if !ok {
		return recipemd.Amount{}, &ConversionError{From: a.Unit, To: targetName}
	}

	name := targetName
	if normalizeName {
		name = target.DisplayName()
	}
	factor := new(big.Rat).Quo(a.Factor, source.ConversionFactor)
	factor.Mul(factor, target.ConversionFactor)
	return recipemd.Amount{Factor: factor, Unit: name}, nil
}

// ConvertToBase converts the amount to the quantity's base unit.
func (q Quantity) ConvertToBase(a recipemd.Amount) (recipemd.Amount, error) {
	return q.ConvertToUnit(a, q.BaseUnit.ID, false)
}

// NormalizeUnit rewrites the amount into the unit the quantity prefers for
// display: the authored unit when its threshold applies, otherwise the first
// applicable display unit, otherwise the base unit.
func (q Quantity) NormalizeUnit(a recipemd.Amount) (recipemd.Amount, error) {
	if a.Unit == "" {
		return a, nil
	}
	unit, ok := q.unit(a.Unit)
	if !ok {
		return recipemd.Amount{}, &ConversionError{From: a.Unit, To: q.BaseUnit.ID}
	}
	if unit.DisplayIgnoreMax != nil && a.Factor != nil && a.Factor.Cmp(unit.DisplayIgnoreMax) <= 0 {
		return recipemd.Amount{Factor: a.Factor, Unit: unit.DisplayName()}, nil
	}
	for _, du := range q.DisplayUnits {
		if q.displayUnitApplies(du, a) {
			return q.ConvertToUnit(a, du.UnitName, true)
		}
	}
	return q.ConvertToUnit(a, q.BaseUnit.ID, true)
}

func (q Quantity) displayUnitApplies(du DisplayUnit, a recipemd.Amount) bool {
	base, err := q.ConvertToBase(a)
	if err != nil || base.Factor == nil {
		return false
	}
	if du.Min != nil {
		bound, err := q.ConvertToBase(recipemd.Amount{Factor: du.Min, Unit: du.UnitName})
		if err != nil || base.Factor.Cmp(bound.Factor) <= 0 {
			return false
		}
	}
	if du.Max != nil {
		bound, err := q.ConvertToBase(recipemd.Amount{Factor: du.Max, Unit: du.UnitName})
		if err != nil || base.Factor.Cmp(bound.Factor) >= 0 {
			return false
		}
	}
	return true
}

// UnitSystem is a collection of quantities. Conversions try each quantity in
// order until one knows both units involved.
type UnitSystem struct {
	Quantities []Quantity
}

// ConvertTo converts the amount to the named target unit.
func (s *UnitSystem) ConvertTo(a recipemd.Amount, targetName string) (recipemd.Amount, error) {
	for _, q := range s.Quantities {
		out, err := q.ConvertToUnit(a, targetName, false)
		if err == nil {
			return out, nil
		}
	}
	return recipemd.Amount{}, &ConversionError{From: a.Unit, To: targetName}
}

// ConvertToBase converts the amount to the base unit of the quantity that
// knows its unit.
func (s *UnitSystem) ConvertToBase(a recipemd.Amount) (recipemd.Amount, error) {
	for _, q := range s.Quantities {
		out, err := q.ConvertToBase(a)
		if err == nil {
			return out, nil
		}
	}
	return recipemd.Amount{}, &ConversionError{From: a.Unit, To: "base unit"}
}

// Normalize rewrites the amount into its quantity's preferred display unit.
// Amounts with units no quantity knows pass through unchanged.
func (s *UnitSystem) Normalize(a recipemd.Amount) (recipemd.Amount, error) {
	if a.Unit == "" {
		return a, nil
	}
	for _, q := range s.Quantities {
		if _, ok := q.unit(a.Unit); ok {
			return q.NormalizeUnit(a)
		}
	}
	return a, nil
}

// Validate checks the structural invariants of the system: every unit needs
// an ID and a nonzero conversion factor, every base unit factor must be 1.
func (s *UnitSystem) Validate() error {
	for _, q := range s.Quantities {
		if err := validateQuantity(q); err != nil {
			return err
		}
	}
	return nil
}

var one = big.NewRat(1, 1)

func validateQuantity(q Quantity) error {
	if q.BaseUnit.ConversionFactor != nil && q.BaseUnit.ConversionFactor.Cmp(one) != 0 {
		return validation.NewError(
			"units.base_factor",
			"base unit conversion factor must be 1",
		)
	}
	for _, u := range q.Units() {
		if err := validateUnit(u); err != nil {
			return err
		}
	}
	for _, du := range q.DisplayUnits {
		if _, ok := q.unit(du.UnitName); !ok {
			return validation.NewError(
				"units.display_unit_unknown",
				"display unit does not name a unit of its quantity",
			)
		}
	}
	return nil
}

func validateUnit(u Unit) error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.ID, validation.Required),
		validation.Field(&u.ConversionFactor, validation.Required, validation.By(func(any) error {
			if u.ConversionFactor != nil && u.ConversionFactor.Sign() == 0 {
				return validation.NewError("units.zero_factor", "conversion factor must be nonzero")
			}
			return nil
		})),
	)
}
