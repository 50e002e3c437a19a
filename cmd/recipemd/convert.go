package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	recipemd "github.com/goliatone/go-recipemd"
	"github.com/goliatone/go-recipemd/units"
)

func convertCmd(application *app) *cobra.Command {
	var (
		definitions string
		round       string
	)

	cmd := &cobra.Command{
		Use:   "convert AMOUNT [UNIT]",
		Short: "Convert an amount to another unit",
		Long: `Convert rewrites an amount like "300 ml" into a target unit, or into the
unit its quantity prefers for display when no target is given. A built-in
metric system is used unless --units points to a YAML unit definition.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, definitions, round)
		},
	}

	cmd.Flags().StringVarP(&definitions, "units", "u", "", "YAML unit system definition file")
	cmd.Flags().StringVarP(&round, "round", "r", "2", `Round the result to n digits after the decimal point, "no" to disable`)

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, definitions, round string) error {
	rounding, err := parseRounding(round)
	if err != nil {
		return err
	}

	system := units.Metric()
	if definitions != "" {
		file, err := os.Open(definitions)
		if err != nil {
			return wrapLoadError(err)
		}
		defer file.Close()
		system, err = units.Load(file)
		if err != nil {
			return wrapLoadError(err)
		}
	}

	amount, err := recipemd.ParseAmount(args[0])
	if err != nil || amount == nil {
		return invalidArgument(fmt.Sprintf("given amount %q is not valid", args[0]))
	}

	var converted recipemd.Amount
	if len(args) == 2 {
		converted, err = system.ConvertTo(*amount, args[1])
	} else {
		converted, err = system.Normalize(*amount)
	}
	if err != nil {
		return wrapScaleError(err)
	}

	serializer := recipemd.NewSerializer(recipemd.SerializerConfig{Rounding: rounding})
	fmt.Fprintln(cmd.OutOrStdout(), serializer.SerializeAmount(&converted))
	return nil
}
