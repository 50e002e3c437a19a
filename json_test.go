package recipemd

import (
	"encoding/json"
	"math/big"
	"strings"
	"testing"
)

func TestMarshalRecipe(t *testing.T) {
	recipe := &Recipe{
		Title:  "Toast",
		Yields: []Amount{NewAmount(2, "slices")},
		Ingredients: []Ingredient{
			{Name: "bread", Amount: &Amount{Factor: big.NewRat(2, 1)}},
			{Name: "butter"},
		},
	}

	data, err := json.Marshal(recipe)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got := string(data)

	for _, want := range []string{
		`"title":"Toast"`,
		`"description":null`,
		`"instructions":null`,
		`"tags":[]`,
		`"ingredient_groups":[]`,
		`"factor":"2","unit":"slices"`,
		`"name":"butter","amount":null,"link":null`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("marshaled recipe missing %s:\n%s", want, got)
		}
	}
}

func TestMarshalFractionFactor(t *testing.T) {
	amount := Amount{Factor: big.NewRat(1, 3), Unit: "l"}
	data, err := json.Marshal(&amount)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"factor":"1/3","unit":"l"}` {
		t.Fatalf("unexpected amount JSON: %s", data)
	}
}

func TestUnmarshalAmount(t *testing.T) {
	cases := []struct {
		in     string
		factor *big.Rat
		unit   string
	}{
		{`{"factor":"1.5","unit":"l"}`, big.NewRat(3, 2), "l"},
		{`{"factor":"1/3","unit":null}`, big.NewRat(1, 3), ""},
		{`{"factor":2,"unit":"cups"}`, big.NewRat(2, 1), "cups"},
		{`{"factor":null,"unit":"pinch"}`, nil, "pinch"},
	}

	for _, tc := range cases {
		var amount Amount
		if err := json.Unmarshal([]byte(tc.in), &amount); err != nil {
			t.Fatalf("Unmarshal(%s): %v", tc.in, err)
		}
		if (amount.Factor == nil) != (tc.factor == nil) {
			t.Fatalf("Unmarshal(%s) factor presence mismatch: %+v", tc.in, amount)
		}
		if amount.Factor != nil && amount.Factor.Cmp(tc.factor) != 0 {
			t.Fatalf("Unmarshal(%s) factor mismatch: %s", tc.in, amount.Factor.RatString())
		}
		if amount.Unit != tc.unit {
			t.Fatalf("Unmarshal(%s) unit mismatch: %q", tc.in, amount.Unit)
		}
	}
}

func TestUnmarshalAmountInvalidFactor(t *testing.T) {
	var amount Amount
	if err := json.Unmarshal([]byte(`{"factor":"three","unit":null}`), &amount); err == nil {
		t.Fatalf("expected error for invalid factor")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	recipe := parseFixture(t, "testdata/guacamole.md")

	data, err := json.Marshal(recipe)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded Recipe
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	serializer := NewSerializer(SerializerConfig{})
	if serializer.Serialize(recipe) != serializer.Serialize(&decoded) {
		t.Fatalf("JSON round trip changed the recipe:\n%s\nvs\n%s",
			serializer.Serialize(recipe), serializer.Serialize(&decoded))
	}
}
