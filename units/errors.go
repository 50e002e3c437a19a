package units

import (
	"errors"
	"fmt"
)

// ErrConversion is the sentinel every ConversionError unwraps to.
var ErrConversion = errors.New("units: no conversion")

// ConversionError reports an amount that could not be converted, either
// because a unit is unknown to the system or the amount is missing a unit or
// factor.
type ConversionError struct {
	From   string
	To     string
	Reason string
}

func (e *ConversionError) Error() string {
	if e == nil {
		return ErrConversion.Error()
	}
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", ErrConversion.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: from %q to %q", ErrConversion.Error(), e.From, e.To)
}

func (e *ConversionError) Unwrap() error {
	return ErrConversion
}
