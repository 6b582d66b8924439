package doctest

import (
	"strings"

	"github.com/numdoc/numdoc/internal/config"
)

// ParseFiltered parses the text and applies the configured filters:
// block skipping, pseudocode skipping, and the ignore marker for
// sources that legitimately produce unstable output.
func ParseFiltered(text string, cfg *config.Config) []*Example {
	examples, sectionBreaks := parse(text)
	filter(examples, sectionBreaks, cfg)
	return examples
}

// filter mutates the examples in place.
//
// A SKIPBLOCK directive skips its own example and every following one
// until narrative text intervenes. Pseudocode fragments skip single
// examples. Random markers and stopwords do not skip; they blank out
// the comparison by appending the ignore marker to the expected
// output, so the example still executes.
func filter(examples []*Example, sectionBreaks []bool, cfg *config.Config) {
	skipping := false
	for i, ex := range examples {
		if sectionBreaks[i] {
			skipping = false
		}
		if ex.Options.SkipBlock {
			skipping = true
		}
		if skipping {
			ex.Options.Skip = true
		}

		if config.ContainsAny(ex.Source, cfg.Pseudocode) {
			ex.Options.Skip = true
		}

		if config.ContainsAny(ex.Source, cfg.RandomMarkers) ||
			config.ContainsAny(ex.Source, cfg.Stopwords) {
			if !strings.Contains(ex.Want, config.IgnoreMarker) {
				ex.Want += "  " + config.IgnoreMarker + "\n"
			}
		}
	}
}
