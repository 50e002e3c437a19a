package recipemd

import (
	"context"
	"regexp"
	"strings"
)

// Resolver loads the recipe a link target points to. Implementations decide
// how link strings map to documents (relative file paths, URLs, a fixture
// map).
type Resolver interface {
	Resolve(ctx context.Context, link string) (*Recipe, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(ctx context.Context, link string) (*Recipe, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx context.Context, link string) (*Recipe, error) {
	return f(ctx, link)
}

// Warning records a linked ingredient that could not be substituted during
// flattening. The ingredient stays in place and flattening continues.
type Warning struct {
	Link string
	Name string
	Err  error
}

// Flatten substitutes every resolvable linked ingredient with the linked
// recipe's ingredients, recursively. Each substituted ingredient becomes an
// ingredient group titled with the link; groups land after the plain
// ingredients of their level. Linked instructions are appended as demoted
// sections and linked tags are merged. A link cycle aborts with
// ErrRecursiveLink; any other failure to substitute becomes a Warning.
func Flatten(ctx context.Context, r *Recipe, resolver Resolver) (*Recipe, []Warning, error) {
	f := &flattener{resolver: resolver, active: map[string]bool{}}
	out, err := f.flatten(ctx, r, nil)
	if err != nil {
		return nil, f.warnings, err
	}
	return out, f.warnings, nil
}

type flattener struct {
	resolver Resolver
	warnings []Warning
	active   map[string]bool
}

// flattenState accumulates per-recipe results while one recipe's ingredient
// tree is substituted.
type flattenState struct {
	recipe      *Recipe
	sections    []instructionSection
	seenHeading map[string]bool
	seenTag     map[string]bool
	substituted bool
}

type instructionSection struct {
	heading string
	body    string
	main    bool
}

func (f *flattener) flatten(ctx context.Context, r *Recipe, path []string) (*Recipe, error) {
	out := r.clone()
	state := &flattenState{
		recipe:      out,
		seenHeading: map[string]bool{},
		seenTag:     map[string]bool{},
	}
	for _, tag := range out.Tags {
		state.seenTag[tag] = true
	}

	var err error
	out.Ingredients, out.Groups, err = f.substituteLevel(ctx, out.Ingredients, out.Groups, path, state)
	if err != nil {
		return nil, err
	}
	if !state.substituted {
		return out, nil
	}

	if out.Instructions != "" {
		state.sections = append(state.sections, instructionSection{
			heading: out.Title,
			body:    out.Instructions,
			main:    true,
		})
	}
	if len(state.sections) == 1 && state.sections[0].main {
		return out, nil
	}
	parts := make([]string, 0, len(state.sections))
	for _, section := range state.sections {
		parts = append(parts, "## "+section.heading+"\n\n"+demoteHeadings(section.body))
	}
	out.Instructions = strings.Join(parts, "\n\n")
	return out, nil
}

func (f *flattener) substituteLevel(ctx context.Context, ingredients []Ingredient, groups []IngredientGroup, path []string, state *flattenState) ([]Ingredient, []IngredientGroup, error) {
	var outIngredients []Ingredient
	var outGroups []IngredientGroup

	for _, ingredient := range ingredients {
		if ingredient.Link == "" {
			outIngredients = append(outIngredients, ingredient)
			continue
		}
		group, ok, err := f.substituteIngredient(ctx, ingredient, path, state)
		if err != nil {
			return nil, nil, err
		}
		if !ok {
			outIngredients = append(outIngredients, ingredient)
			continue
		}
		outGroups = append(outGroups, group)
	}

	for _, g := range groups {
		sub := IngredientGroup{Title: g.Title}
		var err error
		sub.Ingredients, sub.Groups, err = f.substituteLevel(ctx, g.Ingredients, g.Groups, path, state)
		if err != nil {
			return nil, nil, err
		}
		outGroups = append(outGroups, sub)
	}

	return outIngredients, outGroups, nil
}

func (f *flattener) substituteIngredient(ctx context.Context, ingredient Ingredient, path []string, state *flattenState) (IngredientGroup, bool, error) {
	chain := make([]string, 0, len(path)+1)
	chain = append(chain, path...)
	chain = append(chain, ingredient.Link)

	if f.active[ingredient.Link] {
		return IngredientGroup{}, false, &RecursiveLinkError{Chain: chain}
	}

	linked, err := f.resolver.Resolve(ctx, ingredient.Link)
	if err != nil || linked == nil {
		f.warn(ingredient, &UnresolvedLinkError{Link: ingredient.Link, Name: ingredient.Name, Err: err})
		return IngredientGroup{}, false, nil
	}

	f.active[ingredient.Link] = true
	flattened, err := f.flatten(ctx, linked, chain)
	delete(f.active, ingredient.Link)
	if err != nil {
		return IngredientGroup{}, false, err
	}

	heading := linkTitle(ingredient, flattened)
	title := heading
	if ingredient.Amount != nil {
		scaled, err := ScaleToYield(flattened, *ingredient.Amount)
		if err != nil {
			f.warn(ingredient, err)
			return IngredientGroup{}, false, nil
		}
		flattened = scaled
	} else if len(flattened.Yields) == 1 {
		// no amount to scale by, keep the sub-recipe's yield visible
		title += " (" + flattened.Yields[0].String() + ")"
	}

	state.substituted = true
	for _, tag := range flattened.Tags {
		if !state.seenTag[tag] {
			state.seenTag[tag] = true
			state.recipe.Tags = append(state.recipe.Tags, tag)
		}
	}
	if flattened.Instructions != "" && !state.seenHeading[heading] {
		state.seenHeading[heading] = true
		state.sections = append(state.sections, instructionSection{
			heading: heading,
			body:    flattened.Instructions,
		})
	}

	return IngredientGroup{
		Title:       title,
		Ingredients: flattened.Ingredients,
		Groups:      flattened.Groups,
	}, true, nil
}

func (f *flattener) warn(ingredient Ingredient, err error) {
	f.warnings = append(f.warnings, Warning{
		Link: ingredient.Link,
		Name: ingredient.Name,
		Err:  err,
	})
}

func linkTitle(ingredient Ingredient, linked *Recipe) string {
	if ingredient.Name == linked.Title {
		return "[" + ingredient.Name + "](" + ingredient.Link + ")"
	}
	return "[" + ingredient.Name + ": " + linked.Title + "](" + ingredient.Link + ")"
}

var atxHeading = regexp.MustCompile(`(?m)^( {0,3})(#{1,5}.*)$`)

// demoteHeadings pushes every ATX heading one level deeper, capped at level
// six by only matching up to five leading hashes.
func demoteHeadings(body string) string {
	return atxHeading.ReplaceAllString(body, "${1}#${2}")
}
