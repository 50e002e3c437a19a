package recipemd

import (
	"errors"
	"math/big"
	"os"
	"testing"
)

func readFixture(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture %s: %v", path, err)
	}
	return data
}

func parseFixture(t *testing.T, path string) *Recipe {
	t.Helper()
	recipe, err := NewParser().Parse(readFixture(t, path))
	if err != nil {
		t.Fatalf("Parse(%s): %v", path, err)
	}
	return recipe
}

func TestParseRecipe(t *testing.T) {
	recipe := parseFixture(t, "testdata/guacamole.md")

	if recipe.Title != "Guacamole" {
		t.Fatalf("title mismatch, got %q", recipe.Title)
	}
	if recipe.Description != "A creamy dip from scratch.\n\nGreat with tortilla chips." {
		t.Fatalf("description mismatch, got %q", recipe.Description)
	}

	wantTags := []string{"dip", "party", "vegan"}
	if len(recipe.Tags) != len(wantTags) {
		t.Fatalf("tags mismatch: %#v", recipe.Tags)
	}
	for i := range wantTags {
		if recipe.Tags[i] != wantTags[i] {
			t.Fatalf("tags mismatch: %#v", recipe.Tags)
		}
	}

	if len(recipe.Yields) != 2 {
		t.Fatalf("expected 2 yields, got %#v", recipe.Yields)
	}
	if !recipe.Yields[0].Equal(NewAmount(4, "Servings")) {
		t.Fatalf("first yield mismatch: %s", recipe.Yields[0])
	}
	if !recipe.Yields[1].Equal(NewAmount(200, "g")) {
		t.Fatalf("second yield mismatch: %s", recipe.Yields[1])
	}

	if len(recipe.Ingredients) != 4 {
		t.Fatalf("expected 4 ungrouped ingredients, got %d", len(recipe.Ingredients))
	}
	if recipe.Ingredients[0].Name != "ripe avocados" || !recipe.Ingredients[0].Amount.Equal(NewAmount(2, "")) {
		t.Fatalf("first ingredient mismatch: %+v", recipe.Ingredients[0])
	}
	if recipe.Ingredients[1].Name != "lemon, squeezed" || !recipe.Ingredients[1].Amount.Equal(NewRatAmount(1, 2, "")) {
		t.Fatalf("second ingredient mismatch: %+v", recipe.Ingredients[1])
	}
	if recipe.Ingredients[2].Name != "salt" || !recipe.Ingredients[2].Amount.Equal(NewRatAmount(1, 2, "teaspoon")) {
		t.Fatalf("third ingredient mismatch: %+v", recipe.Ingredients[2])
	}
	if recipe.Ingredients[3].Name != "garlic" || recipe.Ingredients[3].Amount != nil {
		t.Fatalf("fourth ingredient mismatch: %+v", recipe.Ingredients[3])
	}

	if len(recipe.Groups) != 1 {
		t.Fatalf("expected 1 ingredient group, got %d", len(recipe.Groups))
	}
	topping := recipe.Groups[0]
	if topping.Title != "Topping" || len(topping.Ingredients) != 1 || topping.Ingredients[0].Name != "tomato" {
		t.Fatalf("topping group mismatch: %+v", topping)
	}
	if len(topping.Groups) != 1 || topping.Groups[0].Title != "Extra" {
		t.Fatalf("expected nested Extra group, got %+v", topping.Groups)
	}
	extra := topping.Groups[0]
	if len(extra.Ingredients) != 1 || extra.Ingredients[0].Name != "coriander" || !extra.Ingredients[0].Amount.Equal(NewAmount(2, "tbsp")) {
		t.Fatalf("extra group mismatch: %+v", extra)
	}

	if recipe.Instructions != "Mash the avocados.\n\nMix in the other ingredients." {
		t.Fatalf("instructions mismatch, got %q", recipe.Instructions)
	}

	leaves := recipe.LeafIngredients()
	if len(leaves) != 6 {
		t.Fatalf("expected 6 leaf ingredients, got %d", len(leaves))
	}
}

func TestParseLinkedIngredient(t *testing.T) {
	src := "# Pizza\n\n---\n\n- *1* [Pizza Dough](dough.md)\n- *200 g* cheese\n"

	recipe, err := NewParser().ParseString(src)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if len(recipe.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredients, got %d", len(recipe.Ingredients))
	}

	dough := recipe.Ingredients[0]
	if dough.Link != "dough.md" {
		t.Fatalf("expected link dough.md, got %q", dough.Link)
	}
	if dough.Name != "Pizza Dough" {
		t.Fatalf("expected link text as name, got %q", dough.Name)
	}
	if !dough.Amount.Equal(NewAmount(1, "")) {
		t.Fatalf("amount mismatch: %s", dough.Amount)
	}

	if recipe.Ingredients[1].Link != "" {
		t.Fatalf("cheese should not carry a link: %+v", recipe.Ingredients[1])
	}
}

func TestParseMissingTitle(t *testing.T) {
	_, err := NewParser().ParseString("just a paragraph\n\n---\n\n- salt\n")
	if !errors.Is(err, ErrInvalidStructure) {
		t.Fatalf("expected ErrInvalidStructure, got %v", err)
	}
}

func TestParseMissingDivider(t *testing.T) {
	_, err := NewParser().ParseString("# Toast\n\n- *2* slices of bread\n")
	if !errors.Is(err, ErrInvalidStructure) {
		t.Fatalf("expected ErrInvalidStructure, got %v", err)
	}
	var structural *StructuralError
	if !errors.As(err, &structural) {
		t.Fatalf("expected StructuralError, got %T", err)
	}
}

func TestParseDuplicateTags(t *testing.T) {
	src := "# Toast\n\n*breakfast*\n\n*quick*\n\n---\n\n- bread\n"
	_, err := NewParser().ParseString(src)
	if !errors.Is(err, ErrInvalidStructure) {
		t.Fatalf("expected ErrInvalidStructure for duplicate tags, got %v", err)
	}
}

func TestParseDuplicateYields(t *testing.T) {
	src := "# Toast\n\n**2 slices**\n\n**1 serving**\n\n---\n\n- bread\n"
	_, err := NewParser().ParseString(src)
	if !errors.Is(err, ErrInvalidStructure) {
		t.Fatalf("expected ErrInvalidStructure for duplicate yields, got %v", err)
	}
}

func TestParseMalformedYield(t *testing.T) {
	src := "# Toast\n\n**fifty servings**\n\n---\n\n- bread\n"
	_, err := NewParser().ParseString(src)
	if !errors.Is(err, ErrMalformedAmount) {
		t.Fatalf("expected ErrMalformedAmount, got %v", err)
	}
}

func TestParseMalformedIngredientAmount(t *testing.T) {
	src := "# Salad\n\n---\n\n- *drizzle* olive oil\n"
	_, err := NewParser().ParseString(src)
	if !errors.Is(err, ErrMalformedAmount) {
		t.Fatalf("expected ErrMalformedAmount, got %v", err)
	}
}

func TestParseNoIngredients(t *testing.T) {
	_, err := NewParser().ParseString("# Water\n\n---\n")
	if !errors.Is(err, ErrInvalidStructure) {
		t.Fatalf("expected ErrInvalidStructure, got %v", err)
	}
}

func TestParseTagsAndYieldsInAnyOrder(t *testing.T) {
	src := "# Toast\n\n**2 slices**\n\n*breakfast*\n\n---\n\n- bread\n"
	recipe, err := NewParser().ParseString(src)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if len(recipe.Tags) != 1 || recipe.Tags[0] != "breakfast" {
		t.Fatalf("tags mismatch: %#v", recipe.Tags)
	}
	if len(recipe.Yields) != 1 || !recipe.Yields[0].Equal(NewAmount(2, "slices")) {
		t.Fatalf("yields mismatch: %#v", recipe.Yields)
	}
}

func TestParseNegativeFractionAmount(t *testing.T) {
	src := "# Adjustment\n\n---\n\n- *-1 1/2 tsp* salt\n"
	recipe, err := NewParser().ParseString(src)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	want := big.NewRat(-3, 2)
	if recipe.Ingredients[0].Amount.Factor.Cmp(want) != 0 {
		t.Fatalf("factor mismatch, got %s", recipe.Ingredients[0].Amount.Factor.RatString())
	}
}

func TestRoundTrip(t *testing.T) {
	recipe := parseFixture(t, "testdata/guacamole.md")

	serializer := NewSerializer(SerializerConfig{})
	first := serializer.Serialize(recipe)

	again, err := NewParser().ParseString(first)
	if err != nil {
		t.Fatalf("reparsing serialized recipe: %v", err)
	}
	second := serializer.Serialize(again)

	if first != second {
		t.Fatalf("round trip not stable:\nfirst:\n%s\nsecond:\n%s", first, second)
	}
}
