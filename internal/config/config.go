// Package config provides the settings bag shared by every numdoc
// component. A Config is immutable after construction: it is handed by
// reference to the parser, checker, discovery engine, and runner, and
// none of them mutates it during a run.
package config

import (
	"strings"

	"github.com/numdoc/numdoc/internal/eval"
)

// IgnoreMarker is the internal sentinel appended to an example's expected
// output by the source filter. Its presence tells the checker to accept
// any output. It is private vocabulary: users write the public markers
// (e.g. "# may vary") instead.
const IgnoreMarker = "# _ignore"

// Config collects every configuration bit for a doctest run. All fields
// hold concrete values after Default(); overriding a field never requires
// nil checks in consumers.
type Config struct {
	// Atol and Rtol are the tolerances for numeric output comparison.
	// The check is |want - got| <= Atol + Rtol*|got| per element. The
	// defaults are intentionally loose: the checker favors ignoring
	// harmless float-printing differences over catching every last
	// discrepancy.
	Atol float64
	Rtol float64

	// StrictCheck requires the inferred element types of reconstructed
	// values to match exactly (3 and float64(3) compare equal without it).
	StrictCheck bool

	// ParseNamedTuples enables folding "TypeName(field=value, ...)" reprs
	// into plain positional tuples before comparison.
	ParseNamedTuples bool

	// NameErrorAfterException reports cascading undefined-name errors in
	// examples that follow a failed one in the same group. Off by default:
	// they are typically just a consequence of the first failure.
	NameErrorAfterException bool

	// RandomMarkers are substrings of expected output that declare it
	// non-reproducible; matching examples pass unconditionally (the source
	// must still be valid and execute cleanly).
	RandomMarkers []string

	// Stopwords are substrings of example source with the same effect as
	// RandomMarkers, keyed on the source side.
	Stopwords []string

	// Pseudocode substrings exclude the whole example from execution.
	Pseudocode []string

	// SkipList holds fully-qualified test-group names dropped from
	// discovery results.
	SkipList []string

	// LocalResources maps a test-group name to files it needs staged in
	// its sandbox directory. Paths are relative to the group's source file.
	LocalResources map[string][]string

	// PublicNames maps a namespace name to its declared public-name list,
	// used by the "api" discovery strategy. A declared name that does not
	// resolve is a hard error.
	PublicNames map[string][]string

	// CheckNamespace is the curated namespace the checker reconstructs
	// values in. Smaller than ExecNamespace on purpose.
	CheckNamespace eval.Namespace

	// ExecNamespace is the namespace example source runs in. Each group
	// gets its own copy.
	ExecNamespace eval.Namespace

	// UserContext wraps each test-group's execution. The returned restore
	// function runs after the group finishes, on all exit paths.
	UserContext func(test string) (restore func(), err error)
}

// Default returns a Config with every field populated.
func Default() *Config {
	return &Config{
		Atol:             DefaultAtol,
		Rtol:             DefaultRtol,
		StrictCheck:      false,
		ParseNamedTuples: true,

		NameErrorAfterException: false,

		RandomMarkers:  defaultRandomMarkers(),
		Stopwords:      defaultStopwords(),
		Pseudocode:     nil,
		SkipList:       nil,
		LocalResources: map[string][]string{},
		PublicNames:    map[string][]string{},

		CheckNamespace: eval.CheckNamespace(),
		ExecNamespace:  eval.ExecNamespace(),

		UserContext: func(string) (func(), error) { return func() {}, nil },
	}
}

// ContainsAny reports whether s contains any of the given substrings.
func ContainsAny(s string, words []string) bool {
	for _, w := range words {
		if w != "" && strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// InSkipList reports whether name is skip-listed.
func (c *Config) InSkipList(name string) bool {
	for _, s := range c.SkipList {
		if s == name {
			return true
		}
	}
	return false
}
