package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	recipemd "github.com/goliatone/go-recipemd"
	"github.com/goliatone/go-recipemd/filter"
	"github.com/goliatone/go-recipemd/internal/markdown"
)

type findOptions struct {
	expression string
	count      bool
}

func findCmd(application *app) *cobra.Command {
	var opts findOptions

	cmd := &cobra.Command{
		Use:   "find",
		Short: "Search folders of recipes",
		Long: `Find lists recipes, tags, ingredients or units found in a folder of
RecipeMD documents. With --expression only recipes matching the boolean
filter are considered, e.g. 'tag:vegan and not ingr:salt'.`,
	}

	cmd.PersistentFlags().StringVarP(&opts.expression, "expression", "e", "", "Filter recipes by a boolean expression")
	cmd.PersistentFlags().BoolVarP(&opts.count, "count", "c", false, "Show how often each element occurs")

	cmd.AddCommand(
		findSubCmd(application, &opts, "recipes", "List matching recipe files", listRecipes),
		findSubCmd(application, &opts, "tags", "List tags of matching recipes", listTags),
		findSubCmd(application, &opts, "ingredients", "List ingredient names of matching recipes", listIngredients),
		findSubCmd(application, &opts, "units", "List units used by matching recipes", listUnits),
	)

	return cmd
}

type listFunc func(w io.Writer, recipes []foundRecipe, count bool)

func findSubCmd(application *app, opts *findOptions, name, short string, list listFunc) *cobra.Command {
	return &cobra.Command{
		Use:   name + " [FOLDER]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			folder := "."
			if len(args) == 1 {
				folder = args[0]
			}
			recipes, err := application.loadRecipes(cmd.Context(), folder, opts.expression)
			if err != nil {
				return err
			}
			list(cmd.OutOrStdout(), recipes, opts.count)
			return nil
		},
	}
}

type foundRecipe struct {
	path   string
	recipe *recipemd.Recipe
}

func (a *app) loadRecipes(ctx context.Context, folder, expression string) ([]foundRecipe, error) {
	log := a.logger.GetLogger("find")

	var expr filter.Expr
	if strings.TrimSpace(expression) != "" {
		parsed, err := filter.Parse(expression)
		if err != nil {
			return nil, wrapFilterError(err)
		}
		expr = parsed
	}

	loader := markdown.NewLoader(os.DirFS(folder), markdown.LoaderConfig{})
	docs, err := loader.LoadDirectory(ctx, ".")
	if err != nil {
		return nil, wrapLoadError(err)
	}

	parser := recipemd.NewParser()
	var out []foundRecipe
	for _, doc := range docs {
		recipe, err := parser.Parse(doc.Body)
		if err != nil {
			log.Warn("skipping document", "path", doc.Path, "error", err)
			continue
		}
		if expr != nil && !expr.Evaluate(recipe) {
			continue
		}
		out = append(out, foundRecipe{path: doc.Path, recipe: recipe})
	}
	return out, nil
}

func listRecipes(w io.Writer, recipes []foundRecipe, count bool) {
	for _, found := range recipes {
		fmt.Fprintln(w, found.path)
	}
	if count {
		fmt.Fprintf(w, "%d recipes\n", len(recipes))
	}
}

func listTags(w io.Writer, recipes []foundRecipe, count bool) {
	printElements(w, collect(recipes, func(r *recipemd.Recipe) []string {
		return r.Tags
	}), count)
}

func listIngredients(w io.Writer, recipes []foundRecipe, count bool) {
	printElements(w, collect(recipes, func(r *recipemd.Recipe) []string {
		var names []string
		for _, ingredient := range r.LeafIngredients() {
			if ingredient.Name != "" {
				names = append(names, ingredient.Name)
			}
		}
		return names
	}), count)
}

func listUnits(w io.Writer, recipes []foundRecipe, count bool) {
	printElements(w, collect(recipes, func(r *recipemd.Recipe) []string {
		return r.Units()
	}), count)
}

func collect(recipes []foundRecipe, extract func(*recipemd.Recipe) []string) []string {
	var values []string
	for _, found := range recipes {
		values = append(values, extract(found.recipe)...)
	}
	return values
}

// printElements lists unique values sorted case-insensitively, or ordered by
// occurrence count when counting is requested.
func printElements(w io.Writer, values []string, count bool) {
	occurrences := map[string]int{}
	var order []string
	for _, value := range values {
		if occurrences[value] == 0 {
			order = append(order, value)
		}
		occurrences[value]++
	}

	if count {
		sort.SliceStable(order, func(i, j int) bool {
			return occurrences[order[i]] > occurrences[order[j]]
		})
		width := 0
		for _, value := range order {
			if digits := len(strconv.Itoa(occurrences[value])); digits > width {
				width = digits
			}
		}
		for _, value := range order {
			fmt.Fprintf(w, "%*d %s\n", width, occurrences[value], value)
		}
		return
	}

	sort.Slice(order, func(i, j int) bool {
		return strings.ToLower(order[i]) < strings.ToLower(order[j])
	})
	for _, value := range order {
		fmt.Fprintln(w, value)
	}
}
