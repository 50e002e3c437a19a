package main

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

const (
	recipeLoadFailedCode    = "RECIPE_LOAD_FAILED"
	recipeParseFailedCode   = "RECIPE_PARSE_FAILED"
	recipeScaleFailedCode   = "RECIPE_SCALE_FAILED"
	recipeFlattenFailedCode = "RECIPE_FLATTEN_FAILED"
	filterInvalidCode       = "FILTER_EXPRESSION_INVALID"
	argumentInvalidCode     = "ARGUMENT_INVALID"
)

func wrapLoadError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "loading recipe failed").
		WithTextCode(recipeLoadFailedCode)
}

func wrapParseError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "recipe does not match the RecipeMD format").
		WithTextCode(recipeParseFailedCode)
}

func wrapScaleError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "scaling recipe failed").
		WithTextCode(recipeScaleFailedCode)
}

func wrapFlattenError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, "flattening recipe failed").
		WithTextCode(recipeFlattenFailedCode)
}

func wrapFilterError(err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid filter expression").
		WithTextCode(filterInvalidCode)
}

func invalidArgument(message string) error {
	return goerrors.Wrap(errors.New(message), goerrors.CategoryValidation, "invalid argument").
		WithTextCode(argumentInvalidCode)
}
