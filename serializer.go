package recipemd

import (
	"strings"
)

// SerializerConfig configures recipe serialization.
type SerializerConfig struct {
	// Rounding limits serialized factors to this many decimal places when
	// set. Nil keeps exact values.
	Rounding *int
}

// Serializer renders Recipe values back to RecipeMD markdown. Serializing a
// parsed recipe yields a document that parses to the same recipe.
type Serializer struct {
	rounding *int
}

// NewSerializer constructs a Serializer.
func NewSerializer(cfg SerializerConfig) *Serializer {
	return &Serializer{rounding: cfg.Rounding}
}

// Serialize renders the recipe as a RecipeMD document.
func (s *Serializer) Serialize(r *Recipe) string {
	var b strings.Builder

	b.WriteString("# ")
	b.WriteString(r.Title)
	b.WriteString("\n\n")

	if r.Description != "" {
		b.WriteString(r.Description)
		b.WriteString("\n\n")
	}
	if len(r.Tags) > 0 {
		b.WriteString("*")
		b.WriteString(strings.Join(r.Tags, ", "))
		b.WriteString("*\n\n")
	}
	if len(r.Yields) > 0 {
		parts := make([]string, len(r.Yields))
		for i := range r.Yields {
			parts[i] = s.SerializeAmount(&r.Yields[i])
		}
		b.WriteString("**")
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("**\n\n")
	}

	b.WriteString("---\n\n")

	entries := make([]string, 0, len(r.Ingredients)+len(r.Groups))
	for _, ingredient := range r.Ingredients {
		entries = append(entries, s.serializeIngredient(ingredient))
	}
	for _, group := range r.Groups {
		entries = append(entries, s.serializeGroup(group, 2))
	}
	b.WriteString(strings.TrimSpace(strings.Join(entries, "\n")))

	if r.Instructions != "" {
		b.WriteString("\n\n---\n\n")
		b.WriteString(r.Instructions)
	}

	return b.String()
}

// SerializeAmount renders a single amount, e.g. "1/2 l" or "3 Servings".
func (s *Serializer) SerializeAmount(a *Amount) string {
	return serializeAmount(*a, s.rounding)
}

func serializeAmount(a Amount, rounding *int) string {
	switch {
	case a.Factor != nil && a.Unit != "":
		return formatFactor(a.Factor, rounding) + " " + a.Unit
	case a.Factor != nil:
		return formatFactor(a.Factor, rounding)
	default:
		return a.Unit
	}
}

func (s *Serializer) serializeGroup(g IngredientGroup, level int) string {
	entries := make([]string, 0, len(g.Ingredients)+len(g.Groups))
	for _, ingredient := range g.Ingredients {
		entries = append(entries, s.serializeIngredient(ingredient))
	}
	for _, sub := range g.Groups {
		entries = append(entries, s.serializeGroup(sub, level+1))
	}
	return "\n" + strings.Repeat("#", level) + " " + g.Title + "\n\n" + strings.Join(entries, "\n")
}

func (s *Serializer) serializeIngredient(ingredient Ingredient) string {
	text := ingredient.Name
	if ingredient.Link != "" {
		text = "[" + ingredient.Name + "](" + ingredient.Link + ")"
	}
	if ingredient.Amount != nil {
		return "- *" + s.SerializeAmount(ingredient.Amount) + "* " + text
	}
	return "- " + text
}
