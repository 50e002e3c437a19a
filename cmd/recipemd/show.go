package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	recipemd "github.com/goliatone/go-recipemd"
	"github.com/goliatone/go-recipemd/internal/markdown"
)

type showOptions struct {
	titleOnly       bool
	ingredientsOnly bool
	asJSON          bool
	multiply        string
	requiredYield   string
	flatten         bool
	round           string
}

func showCmd(application *app) *cobra.Command {
	var opts showOptions

	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Display a recipe, optionally scaled or flattened",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, application, args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.titleOnly, "title", "t", false, "Display the recipe title only")
	cmd.Flags().BoolVarP(&opts.ingredientsOnly, "ingredients", "i", false, "Display the recipe ingredients only")
	cmd.Flags().BoolVarP(&opts.asJSON, "json", "j", false, "Display the recipe as JSON")
	cmd.Flags().StringVarP(&opts.multiply, "multiply", "m", "", "Multiply the recipe by N")
	cmd.Flags().StringVarP(&opts.requiredYield, "yield", "y", "", `Scale the recipe for yield Y, e.g. "5 servings"`)
	cmd.Flags().BoolVarP(&opts.flatten, "flatten", "f", false, "Flatten linked recipes into the ingredient list")
	cmd.Flags().StringVarP(&opts.round, "round", "r", "2", `Round amounts to n digits after the decimal point, "no" to disable`)
	cmd.MarkFlagsMutuallyExclusive("multiply", "yield")
	cmd.MarkFlagsMutuallyExclusive("title", "ingredients", "json")

	return cmd
}

func runShow(cmd *cobra.Command, application *app, file string, opts showOptions) error {
	ctx := cmd.Context()
	log := application.logger.GetLogger("show")

	rounding, err := parseRounding(opts.round)
	if err != nil {
		return err
	}

	absolute, err := filepath.Abs(file)
	if err != nil {
		return wrapLoadError(err)
	}
	dir, base := filepath.Split(absolute)

	loader := markdown.NewLoader(os.DirFS(dir), markdown.LoaderConfig{})
	doc, err := loader.LoadFile(ctx, base)
	if err != nil {
		return wrapLoadError(err)
	}

	parser := recipemd.NewParser()
	recipe, err := parser.Parse(doc.Body)
	if err != nil {
		return wrapParseError(err)
	}

	recipe, err = scaleRecipe(recipe, opts)
	if err != nil {
		return err
	}

	if opts.flatten {
		resolver := &fileResolver{dir: dir, parser: parser}
		flattened, warnings, err := recipemd.Flatten(ctx, recipe, resolver)
		if err != nil {
			return wrapFlattenError(err)
		}
		for _, warning := range warnings {
			log.Warn("could not flatten ingredient",
				"ingredient", warning.Name,
				"link", warning.Link,
				"error", warning.Err,
			)
		}
		recipe = flattened
	}

	out := cmd.OutOrStdout()
	switch {
	case opts.titleOnly:
		fmt.Fprintln(out, recipe.Title)
	case opts.ingredientsOnly:
		serializer := recipemd.NewSerializer(recipemd.SerializerConfig{Rounding: rounding})
		for _, ingredient := range recipe.LeafIngredients() {
			fmt.Fprintln(out, ingredientLine(serializer, ingredient))
		}
	case opts.asJSON:
		data, err := json.MarshalIndent(recipe, "", "  ")
		if err != nil {
			return wrapLoadError(err)
		}
		fmt.Fprintln(out, string(data))
	default:
		serializer := recipemd.NewSerializer(recipemd.SerializerConfig{Rounding: rounding})
		fmt.Fprintln(out, serializer.Serialize(recipe))
	}
	return nil
}

func scaleRecipe(recipe *recipemd.Recipe, opts showOptions) (*recipemd.Recipe, error) {
	switch {
	case opts.requiredYield != "":
		required, err := recipemd.ParseAmount(opts.requiredYield)
		if err != nil || required == nil || required.Factor == nil {
			return nil, invalidArgument(fmt.Sprintf("given yield %q is not valid", opts.requiredYield))
		}
		scaled, err := recipemd.ScaleToYield(recipe, *required)
		if err != nil {
			return nil, wrapScaleError(err)
		}
		return scaled, nil
	case opts.multiply != "":
		multiplier, err := recipemd.ParseAmount(opts.multiply)
		if err != nil || multiplier == nil || multiplier.Factor == nil {
			return nil, invalidArgument(fmt.Sprintf("given multiplier %q is not valid", opts.multiply))
		}
		if multiplier.Unit != "" {
			return nil, invalidArgument("a recipe can only be multiplied by a unitless amount")
		}
		return recipemd.Multiply(recipe, multiplier.Factor), nil
	default:
		return recipe, nil
	}
}

func ingredientLine(serializer *recipemd.Serializer, ingredient recipemd.Ingredient) string {
	if ingredient.Amount != nil {
		return serializer.SerializeAmount(ingredient.Amount) + " " + ingredient.Name
	}
	return ingredient.Name
}

func parseRounding(value string) (*int, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "no" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return nil, invalidArgument(fmt.Sprintf("rounding must be a digit count or \"no\", got %q", value))
	}
	return &n, nil
}
