package recipemd

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
)

// JSON wire shape: absent optional fields serialize as null, empty
// collections as []. Factors travel as strings so exact values survive the
// round trip ("1.5", "1/3").

type amountJSON struct {
	Factor *string `json:"factor"`
	Unit   *string `json:"unit"`
}

type ingredientJSON struct {
	Name   string  `json:"name"`
	Amount *Amount `json:"amount"`
	Link   *string `json:"link"`
}

type groupJSON struct {
	Title       string           `json:"title"`
	Ingredients []ingredientJSON `json:"ingredients"`
	Groups      []groupJSON      `json:"ingredient_groups"`
}

type recipeJSON struct {
	Title        *string          `json:"title"`
	Description  *string          `json:"description"`
	Tags         []string         `json:"tags"`
	Yields       []Amount         `json:"yields"`
	Ingredients  []ingredientJSON `json:"ingredients"`
	Groups       []groupJSON      `json:"ingredient_groups"`
	Instructions *string          `json:"instructions"`
}

// MarshalJSON implements json.Marshaler.
func (a *Amount) MarshalJSON() ([]byte, error) {
	var doc amountJSON
	if a.Factor != nil {
		factor := formatFactor(a.Factor, nil)
		doc.Factor = &factor
	}
	if a.Unit != "" {
		unit := a.Unit
		doc.Unit = &unit
	}
	return json.Marshal(doc)
}

// UnmarshalJSON implements json.Unmarshaler. Factors are accepted as JSON
// numbers or as strings holding a decimal or a fraction.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var doc struct {
		Factor json.RawMessage `json:"factor"`
		Unit   *string         `json:"unit"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	a.Factor = nil
	if raw := strings.TrimSpace(string(doc.Factor)); raw != "" && raw != "null" {
		if strings.HasPrefix(raw, `"`) {
			var unquoted string
			if err := json.Unmarshal(doc.Factor, &unquoted); err != nil {
				return err
			}
			raw = strings.TrimSpace(unquoted)
		}
		factor := new(big.Rat)
		if _, ok := factor.SetString(raw); !ok {
			return fmt.Errorf("recipe: invalid amount factor %q", raw)
		}
		a.Factor = factor
	}

	a.Unit = ""
	if doc.Unit != nil {
		a.Unit = *doc.Unit
	}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (i Ingredient) MarshalJSON() ([]byte, error) {
	return json.Marshal(ingredientToJSON(i))
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Ingredient) UnmarshalJSON(data []byte) error {
	var doc ingredientJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*i = ingredientFromJSON(doc)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (g IngredientGroup) MarshalJSON() ([]byte, error) {
	return json.Marshal(groupToJSON(g))
}

// UnmarshalJSON implements json.Unmarshaler.
func (g *IngredientGroup) UnmarshalJSON(data []byte) error {
	var doc groupJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*g = groupFromJSON(doc)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (r *Recipe) MarshalJSON() ([]byte, error) {
	doc := recipeJSON{
		Title:        nullableString(r.Title),
		Description:  nullableString(r.Description),
		Tags:         emptySlice(r.Tags),
		Yields:       emptySlice(r.Yields),
		Ingredients:  make([]ingredientJSON, 0, len(r.Ingredients)),
		Groups:       make([]groupJSON, 0, len(r.Groups)),
		Instructions: nullableString(r.Instructions),
	}
	for _, ingredient := range r.Ingredients {
		doc.Ingredients = append(doc.Ingredients, ingredientToJSON(ingredient))
	}
	for _, group := range r.Groups {
		doc.Groups = append(doc.Groups, groupToJSON(group))
	}
	return json.Marshal(doc)
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *Recipe) UnmarshalJSON(data []byte) error {
	var doc recipeJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	*r = Recipe{
		Tags:   doc.Tags,
		Yields: doc.Yields,
	}
	if doc.Title != nil {
		r.Title = *doc.Title
	}
	if doc.Description != nil {
		r.Description = *doc.Description
	}
	if doc.Instructions != nil {
		r.Instructions = *doc.Instructions
	}
	for _, ingredient := range doc.Ingredients {
		r.Ingredients = append(r.Ingredients, ingredientFromJSON(ingredient))
	}
	for _, group := range doc.Groups {
		r.Groups = append(r.Groups, groupFromJSON(group))
	}
	return nil
}

func ingredientToJSON(i Ingredient) ingredientJSON {
	doc := ingredientJSON{
		Name:   i.Name,
		Amount: i.Amount,
		Link:   nullableString(i.Link),
	}
	return doc
}

func ingredientFromJSON(doc ingredientJSON) Ingredient {
	ingredient := Ingredient{Name: doc.Name, Amount: doc.Amount}
	if doc.Link != nil {
		ingredient.Link = *doc.Link
	}
	return ingredient
}

func groupToJSON(g IngredientGroup) groupJSON {
	doc := groupJSON{
		Title:       g.Title,
		Ingredients: make([]ingredientJSON, 0, len(g.Ingredients)),
		Groups:      make([]groupJSON, 0, len(g.Groups)),
	}
	for _, ingredient := range g.Ingredients {
		doc.Ingredients = append(doc.Ingredients, ingredientToJSON(ingredient))
	}
	for _, sub := range g.Groups {
		doc.Groups = append(doc.Groups, groupToJSON(sub))
	}
	return doc
}

func groupFromJSON(doc groupJSON) IngredientGroup {
	group := IngredientGroup{Title: doc.Title}
	for _, ingredient := range doc.Ingredients {
		group.Ingredients = append(group.Ingredients, ingredientFromJSON(ingredient))
	}
	for _, sub := range doc.Groups {
		group.Groups = append(group.Groups, groupFromJSON(sub))
	}
	return group
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func emptySlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
