// Package cmd contains all CLI commands for the csvbook binary.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/csvbook/cmd/completion"
	"github.com/klytics/csvbook/cmd/version"
	cmdwatch "github.com/klytics/csvbook/cmd/watch"
	"github.com/klytics/csvbook/internal/build"
	"github.com/klytics/csvbook/internal/config"
	"github.com/klytics/csvbook/internal/manifest"
	"github.com/klytics/csvbook/internal/output"
	"github.com/klytics/csvbook/internal/workbook"
)

var (
	jsonOutput   bool
	noColor      bool
	manifestPath string
	delimiter    string
)

// NewRootCommand creates and returns the root cobra command with all
// subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "csvbook <output.xlsx> [<source.csv> ...]",
		Short: "Consolidate CSV files into a single formatted Excel workbook",
		Long: `csvbook — one workbook from many CSV extracts.

Reads one or more CSV files and writes them to a single .xlsx workbook with
a sheet per file, an Index sheet with row counts, header formatting,
autofilter, freeze panes, and adjusted column widths.

If no CSV paths are given, the configured default pair is used
(Speed_Limits.csv and Traffic_Volumes.csv unless overridden).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if manifestPath != "" {
				if len(args) > 0 {
					return fmt.Errorf("--manifest and positional arguments are mutually exclusive")
				}
				return nil
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := BuildOptions(args, manifestPath, delimiter)
			if err != nil {
				return err
			}

			console := output.Default()
			if jsonOutput {
				// Keep stdout clean for the JSON summary.
				console.Out = os.Stderr
			}
			opts.Console = console

			result, err := build.Run(*opts)
			if err != nil {
				return err
			}

			if jsonOutput {
				return output.Default().WriteJSON(result)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output a machine-readable run summary as JSON")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable ANSI color output")
	rootCmd.Flags().StringVarP(&manifestPath, "manifest", "m", "", "Build from a YAML manifest instead of positional arguments")
	rootCmd.Flags().StringVar(&delimiter, "delimiter", "", "Field delimiter (default from config, usually ',')")

	rootCmd.AddCommand(cmdwatch.NewCommand())
	rootCmd.AddCommand(version.NewCommand())
	rootCmd.AddCommand(completion.NewCommand(rootCmd))

	return rootCmd
}

// BuildOptions resolves CLI arguments, manifest, and configuration into
// pipeline options.
func BuildOptions(args []string, manifestPath, delimiterFlag string) (*build.Options, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("could not load configuration: %w", err)
	}

	var outputPath string
	var sources []build.Source
	if manifestPath != "" {
		m, err := manifest.Load(manifestPath)
		if err != nil {
			return nil, err
		}
		outputPath, sources = build.FromManifest(m)
	} else {
		outputPath = args[0]
		sources = build.Resolve(args[1:], cfg.DefaultSources)
	}

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}

	delim := delimiterFlag
	if delim == "" {
		delim = cfg.Delimiter
	}
	runes := []rune(delim)
	if len(runes) != 1 {
		return nil, fmt.Errorf("delimiter must be a single character, got %q", delim)
	}

	layout := workbook.DefaultLayout()
	layout.MinWidth = cfg.Widths.Min
	layout.MaxWidth = cfg.Widths.Max
	layout.WidthPadding = cfg.Widths.Padding
	layout.DateFormat = cfg.DateFormat
	if !cfg.Output.Color {
		color.NoColor = true
	}

	return &build.Options{
		OutputPath: outputPath,
		Sources:    sources,
		Delimiter:  runes[0],
		Layout:     layout,
	}, nil
}

// Execute runs the root command and handles any returned errors.
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
