package build

import (
	"github.com/klytics/csvbook/internal/manifest"
)

// Resolve turns the positional arguments after the output path into the
// source list, substituting the configured defaults when none were given.
// Paths are not checked for existence here; the loader reports missing
// files per-source.
func Resolve(args []string, defaults []string) []Source {
	paths := args
	if len(paths) == 0 {
		paths = defaults
	}
	sources := make([]Source, 0, len(paths))
	for _, p := range paths {
		sources = append(sources, Source{Path: p})
	}
	return sources
}

// FromManifest converts a loaded manifest into pipeline inputs.
func FromManifest(m *manifest.Manifest) (string, []Source) {
	sources := make([]Source, 0, len(m.Sources))
	for _, s := range m.Sources {
		sources = append(sources, Source{Path: s.Path, Sheet: s.Sheet})
	}
	return m.Output, sources
}
