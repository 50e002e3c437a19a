package recipemd

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidStructure = errors.New("recipe: document does not match the recipe structure")
	ErrMalformedAmount  = errors.New("recipe: malformed amount")
	ErrNoMatchingYield  = errors.New("recipe: no matching yield")
	ErrRecursiveLink    = errors.New("recipe: recursive recipe link")
	ErrUnresolvedLink   = errors.New("recipe: unresolved recipe link")
)

// StructuralError reports a grammar violation in a recipe document. Line is
// 1-based; zero means the offending location is past the end of the document.
type StructuralError struct {
	Reason string
	Line   int
}

func (e *StructuralError) Error() string {
	if e == nil {
		return ErrInvalidStructure.Error()
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", ErrInvalidStructure.Error(), e.Reason, e.Line)
	}
	return fmt.Sprintf("%s: %s", ErrInvalidStructure.Error(), e.Reason)
}

func (e *StructuralError) Unwrap() error {
	return ErrInvalidStructure
}

// MalformedAmountError reports text that occupied an amount position but had
// no parsable numeric prefix.
type MalformedAmountError struct {
	Input string
	Line  int
}

func (e *MalformedAmountError) Error() string {
	if e == nil {
		return ErrMalformedAmount.Error()
	}
	if e.Line > 0 {
		return fmt.Sprintf("%s: %q (line %d)", ErrMalformedAmount.Error(), e.Input, e.Line)
	}
	return fmt.Sprintf("%s: %q", ErrMalformedAmount.Error(), e.Input)
}

func (e *MalformedAmountError) Unwrap() error {
	return ErrMalformedAmount
}

// NoMatchingYieldError reports a scaling request for a yield unit the recipe
// does not declare.
type NoMatchingYieldError struct {
	Requested Amount
	Available []Amount
}

func (e *NoMatchingYieldError) Error() string {
	if e == nil {
		return ErrNoMatchingYield.Error()
	}
	units := make([]string, 0, len(e.Available))
	for _, y := range e.Available {
		units = append(units, fmt.Sprintf("%q", y.Unit))
	}
	if len(units) == 0 {
		return fmt.Sprintf("%s: unit %q, recipe declares no yields", ErrNoMatchingYield.Error(), e.Requested.Unit)
	}
	return fmt.Sprintf("%s: unit %q, declared units: %s", ErrNoMatchingYield.Error(), e.Requested.Unit, strings.Join(units, ", "))
}

func (e *NoMatchingYieldError) Unwrap() error {
	return ErrNoMatchingYield
}

// RecursiveLinkError reports a cycle in the ingredient link graph found
// during flattening. Chain lists the link targets on the recursion path,
// ending with the repeated target.
type RecursiveLinkError struct {
	Chain []string
}

func (e *RecursiveLinkError) Error() string {
	if e == nil || len(e.Chain) == 0 {
		return ErrRecursiveLink.Error()
	}
	return fmt.Sprintf("%s: %s", ErrRecursiveLink.Error(), strings.Join(e.Chain, " -> "))
}

func (e *RecursiveLinkError) Unwrap() error {
	return ErrRecursiveLink
}

// UnresolvedLinkError reports a link target that could not be loaded during
// flattening. It is collected as a warning; flattening continues for sibling
// ingredients.
type UnresolvedLinkError struct {
	Link string
	Name string
	Err  error
}

func (e *UnresolvedLinkError) Error() string {
	if e == nil {
		return ErrUnresolvedLink.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %q for ingredient %q: %v", ErrUnresolvedLink.Error(), e.Link, e.Name, e.Err)
	}
	return fmt.Sprintf("%s: %q for ingredient %q", ErrUnresolvedLink.Error(), e.Link, e.Name)
}

func (e *UnresolvedLinkError) Unwrap() error {
	return ErrUnresolvedLink
}
