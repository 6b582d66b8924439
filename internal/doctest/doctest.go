// Package doctest parses prompt-style examples out of documentation
// text and filters them before execution.
//
// An example is a block of one or more source lines introduced by the
// ">>> " prompt, optionally continued with "... " lines, followed by
// the expected output up to the next blank line or prompt.
package doctest

// Options hold the per-example directives parsed from source comments.
type Options struct {
	// Skip disables execution of this example entirely.
	Skip bool
	// SkipBlock disables this example and every following example in
	// the same group until a non-empty text section intervenes.
	SkipBlock bool
}

// Example is a single prompt block with its expected output.
type Example struct {
	// Source is the executable source with prompts stripped. It always
	// ends with a newline.
	Source string
	// Want is the expected output, empty when none. When non-empty it
	// always ends with a newline.
	Want string
	// Line is the zero-based line of the first prompt within the
	// parsed text.
	Line int
	// Options are the directives attached to this example.
	Options Options
}

// Group is a named collection of examples that execute in a shared
// namespace.
type Group struct {
	// Name identifies the group in reports, e.g. "numtol.Close" or a
	// file path.
	Name string
	// Filename is the file the text came from, when known.
	Filename string
	// Line is the zero-based line of the text within the file.
	Line int
	// Examples are the parsed examples in document order.
	Examples []*Example
}

// HasExamples reports whether any example in the group survived
// filtering with execution enabled.
func (g *Group) HasExamples() bool {
	for _, ex := range g.Examples {
		if !ex.Options.Skip {
			return true
		}
	}
	return false
}
