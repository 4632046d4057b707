// Package build runs the CSV-to-workbook conversion pipeline: load each
// source, write it as a sheet, append the Index summary, save the file.
package build

import (
	"errors"
	"fmt"

	"github.com/klytics/csvbook/internal/output"
	"github.com/klytics/csvbook/internal/table"
	"github.com/klytics/csvbook/internal/workbook"
)

// Source is one input file and an optional explicit sheet name. An empty
// Sheet means the file stem is used.
type Source struct {
	Path  string `json:"path"`
	Sheet string `json:"sheet,omitempty"`
}

// Options configures a single pipeline run.
type Options struct {
	OutputPath string
	Sources    []Source
	Delimiter  rune
	Layout     workbook.Layout
	Console    *output.Console
}

// Skip records a source that failed to load and was left out of the
// workbook.
type Skip struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Result summarizes a completed run.
type Result struct {
	OutputPath   string             `json:"outputPath"`
	Sheets       []workbook.Summary `json:"sheets"`
	Skipped      []Skip             `json:"skipped,omitempty"`
	IndexWritten bool               `json:"indexWritten"`
}

// Run executes the pipeline. Per-source failures are logged and skipped;
// only saving the workbook can fail the run.
func Run(opts Options) (*Result, error) {
	console := opts.Console
	if console == nil {
		console = output.Default()
	}

	b := workbook.NewBuilder(opts.Layout)
	defer b.Close()

	result := &Result{OutputPath: opts.OutputPath}

	for _, src := range opts.Sources {
		t, err := table.Load(src.Path, table.LoadOptions{Delimiter: opts.Delimiter})
		if err != nil {
			if errors.Is(err, table.ErrNotFound) {
				console.Warnf("%s not found, skipping", src.Path)
			} else {
				console.Errorf("%v — skipping", err)
			}
			result.Skipped = append(result.Skipped, Skip{Path: src.Path, Reason: err.Error()})
			continue
		}

		name := src.Sheet
		if name == "" {
			name = t.Stem()
		}

		summary, err := b.AddSheet(name, t)
		if err != nil {
			console.Errorf("could not write sheet for %s: %v — skipping", src.Path, err)
			result.Skipped = append(result.Skipped, Skip{Path: src.Path, Reason: err.Error()})
			continue
		}

		result.Sheets = append(result.Sheets, summary)
		console.Printf("Wrote sheet: %s (%d rows x %d cols)", summary.Sheet, summary.Rows, summary.Columns)
	}

	written, err := b.WriteIndex()
	if err != nil {
		return nil, fmt.Errorf("could not write Index sheet: %w", err)
	}
	result.IndexWritten = written
	if !written {
		console.Printf("No sources were written; workbook will not contain an Index sheet.")
	}

	if err := b.Save(opts.OutputPath); err != nil {
		return nil, err
	}
	console.Printf("Saved workbook: %s", opts.OutputPath)

	return result, nil
}
