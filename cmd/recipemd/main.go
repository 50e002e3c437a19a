// Package main provides the recipemd binary entry point. It reads, scales,
// flattens and searches RecipeMD recipe documents.
package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "recipemd"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type app struct {
	logger *glog.BaseLogger
}

func rootCmd() *cobra.Command {
	var (
		logLevel  string
		logFormat string
	)
	application := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "Work with RecipeMD recipe documents",
		Long: `Recipemd reads recipes written in the RecipeMD markdown format.

It can display a recipe as markdown or JSON, scale it to a multiplier or a
required yield, flatten linked sub-recipes into one document, and search
folders of recipes with a boolean filter expression.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := buildLogger(logLevel, logFormat)
			if err != nil {
				return err
			}
			application.logger = logger
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console, json, pretty)")

	cmd.AddCommand(showCmd(application))
	cmd.AddCommand(findCmd(application))
	cmd.AddCommand(convertCmd(application))
	cmd.AddCommand(versionCmd())

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	}
}

func buildLogger(level, format string) (*glog.BaseLogger, error) {
	options := []glog.Option{}

	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		options = append(options, glog.WithLevel(glog.Trace))
	case "debug":
		options = append(options, glog.WithLevel(glog.Debug))
	case "", "info":
		options = append(options, glog.WithLevel(glog.Info))
	case "warn", "warning":
		options = append(options, glog.WithLevel(glog.Warn))
	case "error":
		options = append(options, glog.WithLevel(glog.Error))
	default:
		return nil, fmt.Errorf("unsupported log level %q", level)
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}

	return glog.NewLogger(options...), nil
}
