package recipemd

import (
	"math/big"
	"testing"
)

func TestSerialize(t *testing.T) {
	recipe := &Recipe{
		Title:       "Pancakes",
		Description: "Fluffy.",
		Tags:        []string{"breakfast", "sweet"},
		Yields:      []Amount{NewAmount(4, "Servings")},
		Ingredients: []Ingredient{
			{Name: "flour", Amount: &Amount{Factor: big.NewRat(250, 1), Unit: "g"}},
			{Name: "salt"},
		},
		Groups: []IngredientGroup{
			{
				Title: "Topping",
				Ingredients: []Ingredient{
					{Name: "lemon", Amount: &Amount{Factor: big.NewRat(1, 3)}},
				},
			},
		},
		Instructions: "Mix.\n\nFry.",
	}

	want := "# Pancakes\n\n" +
		"Fluffy.\n\n" +
		"*breakfast, sweet*\n\n" +
		"**4 Servings**\n\n" +
		"---\n\n" +
		"- *250 g* flour\n" +
		"- salt\n" +
		"\n## Topping\n\n" +
		"- *1/3* lemon\n\n" +
		"---\n\n" +
		"Mix.\n\nFry."

	got := NewSerializer(SerializerConfig{}).Serialize(recipe)
	if got != want {
		t.Fatalf("serialized form mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSerializeLinkedIngredient(t *testing.T) {
	recipe := &Recipe{
		Title: "Pizza",
		Ingredients: []Ingredient{
			{Name: "Pizza Dough", Link: "dough.md", Amount: &Amount{Factor: big.NewRat(1, 1)}},
		},
	}

	want := "# Pizza\n\n---\n\n- *1* [Pizza Dough](dough.md)"
	got := NewSerializer(SerializerConfig{}).Serialize(recipe)
	if got != want {
		t.Fatalf("serialized form mismatch:\ngot:\n%q\nwant:\n%q", got, want)
	}
}

func TestSerializeRounding(t *testing.T) {
	rounding := 1
	serializer := NewSerializer(SerializerConfig{Rounding: &rounding})

	amount := Amount{Factor: big.NewRat(2, 3), Unit: "l"}
	if got := serializer.SerializeAmount(&amount); got != "0.7 l" {
		t.Fatalf("expected rounded amount, got %q", got)
	}
}

func TestAmountString(t *testing.T) {
	cases := []struct {
		amount Amount
		want   string
	}{
		{NewAmount(2, "cups"), "2 cups"},
		{NewRatAmount(1, 2, ""), "0.5"},
		{Amount{Unit: "pinch"}, "pinch"},
	}
	for _, tc := range cases {
		if got := tc.amount.String(); got != tc.want {
			t.Fatalf("Amount.String() = %q, want %q", got, tc.want)
		}
	}
}
