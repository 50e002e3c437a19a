// Package recipemd implements the RecipeMD markdown format for recipes.
//
// A recipe document is plain markdown with a fixed shape: a title heading,
// an optional description, an italic tag line, a bold yield line, a
// horizontal rule, the ingredient list (optionally grouped under headings),
// and the instructions. Parse turns such a document into a Recipe value;
// Serialize renders one back to markdown that parses to the same recipe.
//
// Recipes are treated as immutable values. Multiply and ScaleToYield return
// scaled copies, Flatten resolves linked sub-recipes into a single document,
// and the filter subpackage evaluates boolean queries against a recipe's
// tags, ingredient names and units. Amount factors are exact rationals, so
// "1/3" survives any number of scaling steps without drift.
package recipemd
