// Package filter implements the boolean query language used to select
// recipes: terms match against a recipe's tags, ingredient names and units,
// combined with not/and/or/xor connectives. An expression tree is built once,
// via Parse or the constructors, and may evaluate many recipes concurrently;
// evaluation never mutates the tree.
package filter

import (
	recipemd "github.com/goliatone/go-recipemd"
)

// Scope selects which searchable strings of a recipe a term runs against.
type Scope int

const (
	// ScopeAny matches against tags, ingredient names and units alike.
	ScopeAny Scope = iota
	// ScopeTag matches against the recipe's tags.
	ScopeTag
	// ScopeIngredient matches against all ingredient names, grouped or not.
	ScopeIngredient
	// ScopeUnit matches against all units mentioned by amounts and yields.
	ScopeUnit
)

// Expr is a node of a filter expression tree. The set of implementations is
// closed; trees are built with Parse or the constructor functions and are
// immutable once built.
type Expr interface {
	// Evaluate reports whether the recipe satisfies the expression.
	Evaluate(r *recipemd.Recipe) bool

	expr()
}

type termExpr struct {
	scope   Scope
	matcher Matcher
}

type notExpr struct {
	operand Expr
}

type andExpr struct {
	left, right Expr
}

type orExpr struct {
	left, right Expr
}

type xorExpr struct {
	left, right Expr
}

func (termExpr) expr() {}
func (notExpr) expr()  {}
func (andExpr) expr()  {}
func (orExpr) expr()   {}
func (xorExpr) expr()  {}

// Tag builds a term matching the recipe's tags.
func Tag(m Matcher) Expr { return termExpr{scope: ScopeTag, matcher: m} }

// Ingredient builds a term matching ingredient names.
func Ingredient(m Matcher) Expr { return termExpr{scope: ScopeIngredient, matcher: m} }

// Unit builds a term matching amount and yield units.
func Unit(m Matcher) Expr { return termExpr{scope: ScopeUnit, matcher: m} }

// Any builds a term matching tags, ingredient names and units.
func Any(m Matcher) Expr { return termExpr{scope: ScopeAny, matcher: m} }

// Not negates an expression.
func Not(x Expr) Expr { return notExpr{operand: x} }

// And is true when both operands are true.
func And(left, right Expr) Expr { return andExpr{left: left, right: right} }

// Or is true when at least one operand is true.
func Or(left, right Expr) Expr { return orExpr{left: left, right: right} }

// Xor is true when exactly one operand is true.
func Xor(left, right Expr) Expr { return xorExpr{left: left, right: right} }

func (t termExpr) Evaluate(r *recipemd.Recipe) bool {
	for _, value := range searchable(r, t.scope) {
		if t.matcher.Matches(value) {
			return true
		}
	}
	return false
}

func (n notExpr) Evaluate(r *recipemd.Recipe) bool {
	return !n.operand.Evaluate(r)
}

func (a andExpr) Evaluate(r *recipemd.Recipe) bool {
	return a.left.Evaluate(r) && a.right.Evaluate(r)
}

func (o orExpr) Evaluate(r *recipemd.Recipe) bool {
	return o.left.Evaluate(r) || o.right.Evaluate(r)
}

func (x xorExpr) Evaluate(r *recipemd.Recipe) bool {
	return x.left.Evaluate(r) != x.right.Evaluate(r)
}

func searchable(r *recipemd.Recipe, scope Scope) []string {
	var values []string
	if scope == ScopeAny || scope == ScopeTag {
		values = append(values, r.Tags...)
	}
	if scope == ScopeAny || scope == ScopeIngredient {
		for _, ingredient := range r.LeafIngredients() {
			values = append(values, ingredient.Name)
		}
	}
	if scope == ScopeAny || scope == ScopeUnit {
		values = append(values, r.Units()...)
	}
	return values
}
