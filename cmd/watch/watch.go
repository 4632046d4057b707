// Package watch provides the "csvbook watch" CLI command: rebuild the
// workbook whenever a source file changes.
package watch

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/klytics/csvbook/internal/build"
	"github.com/klytics/csvbook/internal/config"
	"github.com/klytics/csvbook/internal/output"
	w "github.com/klytics/csvbook/internal/watch"
	"github.com/klytics/csvbook/internal/workbook"
)

// NewCommand creates the "watch" command.
func NewCommand() *cobra.Command {
	var debounce int

	cmd := &cobra.Command{
		Use:   "watch <output.xlsx> [<source.csv> ...]",
		Short: "Rebuild the workbook whenever a source file changes",
		Long: `Watch the source CSV files and regenerate the output workbook on every
change, debounced. Runs one build immediately, then blocks until
interrupted.

Example:
  csvbook watch traffic.xlsx Speed_Limits.csv Traffic_Volumes.csv`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("could not load configuration: %w", err)
			}

			outputPath := args[0]
			if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
				outputPath += ".xlsx"
			}
			sources := build.Resolve(args[1:], cfg.DefaultSources)

			layout := workbook.DefaultLayout()
			layout.MinWidth = cfg.Widths.Min
			layout.MaxWidth = cfg.Widths.Max
			layout.WidthPadding = cfg.Widths.Padding
			layout.DateFormat = cfg.DateFormat

			delim := ','
			if r := []rune(cfg.Delimiter); len(r) > 0 {
				delim = r[0]
			}

			opts := build.Options{
				OutputPath: outputPath,
				Sources:    sources,
				Delimiter:  delim,
				Layout:     layout,
				Console:    output.Default(),
			}

			// Initial build before watching.
			if _, err := build.Run(opts); err != nil {
				return err
			}

			paths := make([]string, 0, len(sources))
			for _, s := range sources {
				paths = append(paths, s.Path)
			}

			watcher, err := w.New(w.Config{
				Paths:    paths,
				Debounce: time.Duration(debounce) * time.Millisecond,
			})
			if err != nil {
				return err
			}
			watcher.Handler = func(path string) error {
				_, err := build.Run(opts)
				return err
			}

			fmt.Printf("Watching %d source file(s) → %s\n", len(paths), outputPath)
			fmt.Println("Press Ctrl+C to stop")

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
			go func() {
				<-sigCh
				fmt.Println("\nStopping watcher...")
				cancel()
			}()

			return watcher.Start(ctx)
		},
	}

	cmd.Flags().IntVar(&debounce, "debounce", 500, "Debounce interval in milliseconds")

	return cmd
}
