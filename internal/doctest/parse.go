package doctest

import (
	"regexp"
	"strings"
)

var directiveRe = regexp.MustCompile(`#\s*doctest:\s*([+\w,\s]+)$`)

// Parse extracts the examples from a block of documentation text.
// Non-example text between prompt blocks is preserved as section
// boundaries for filtering, so the result also records, per example,
// whether narrative text preceded it.
func Parse(text string) []*Example {
	examples, _ := parse(text)
	return examples
}

// parse returns the examples plus, aligned by index, whether a
// non-blank narrative section separates each example from the one
// before it.
func parse(text string) ([]*Example, []bool) {
	lines := strings.Split(text, "\n")
	var examples []*Example
	var sectionBreaks []bool

	sawText := false
	i := 0
	for i < len(lines) {
		line := lines[i]
		indent, ok := promptIndent(line)
		if !ok {
			if strings.TrimSpace(line) != "" {
				sawText = true
			}
			i++
			continue
		}

		startLine := i
		var source []string
		source = append(source, promptPayload(line, indent))
		i++
		for i < len(lines) && isContinuation(lines[i], indent) {
			source = append(source, continuationPayload(lines[i], indent))
			i++
		}

		var want []string
		for i < len(lines) {
			next := lines[i]
			if strings.TrimSpace(next) == "" {
				break
			}
			if _, isPrompt := promptIndent(next); isPrompt {
				break
			}
			want = append(want, dedent(next, indent))
			i++
		}

		ex := &Example{
			Source: strings.Join(source, "\n") + "\n",
			Line:   startLine,
		}
		if len(want) > 0 {
			ex.Want = strings.Join(want, "\n") + "\n"
		}
		ex.Options = parseDirectives(ex.Source)

		examples = append(examples, ex)
		sectionBreaks = append(sectionBreaks, sawText)
		sawText = false
	}
	return examples, sectionBreaks
}

// promptIndent reports whether the line is a primary prompt and at
// which indentation.
func promptIndent(line string) (int, bool) {
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == ">>>" || strings.HasPrefix(trimmed, ">>> ") {
		return len(line) - len(trimmed), true
	}
	return 0, false
}

func promptPayload(line string, indent int) string {
	rest := line[indent:]
	rest = strings.TrimPrefix(rest, ">>>")
	rest = strings.TrimPrefix(rest, " ")
	return rest
}

func isContinuation(line string, indent int) bool {
	if len(line) < indent {
		return false
	}
	rest := line[indent:]
	return rest == "..." || strings.HasPrefix(rest, "... ")
}

func continuationPayload(line string, indent int) string {
	rest := line[indent:]
	rest = strings.TrimPrefix(rest, "...")
	rest = strings.TrimPrefix(rest, " ")
	return rest
}

// dedent strips up to indent leading spaces so that want lines align
// with the prompt column.
func dedent(line string, indent int) string {
	for i := 0; i < indent && len(line) > 0 && (line[0] == ' ' || line[0] == '\t'); i++ {
		line = line[1:]
	}
	return line
}

// parseDirectives scans the source for "# doctest:" comments.
func parseDirectives(source string) Options {
	var opts Options
	for _, line := range strings.Split(source, "\n") {
		m := directiveRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		for _, tok := range strings.FieldsFunc(m[1], func(r rune) bool {
			return r == ',' || r == ' ' || r == '\t'
		}) {
			switch tok {
			case "+SKIP":
				opts.Skip = true
			case "+SKIPBLOCK":
				opts.Skip = true
				opts.SkipBlock = true
			}
		}
	}
	return opts
}
