package checker

import (
	"regexp"
	"strings"
)

// convertPrintedArray reinserts the commas that print() drops from
// array values: "[0 1 2]" becomes "[0, 1, 2]". Two-dimensional values
// are split into rows first so the row brackets survive.
func convertPrintedArray(s string) string {
	if !strings.HasPrefix(s, "[") {
		return s
	}

	inner := strings.TrimPrefix(s, "[")
	inner = strings.TrimSuffix(inner, "]")

	var rows []string
	for _, row := range strings.Split(inner, "[") {
		if row == "" {
			continue
		}
		fields := strings.Fields(row)
		for i, f := range fields {
			// already-separated text keeps its separators, so the
			// repair is idempotent
			fields[i] = strings.TrimRight(f, ",")
		}
		rows = append(rows, strings.Join(fields, ", "))
	}

	if strings.HasPrefix(s, "[[") {
		for i, row := range rows {
			rows[i] = "[" + row
		}
	}
	return "[" + strings.Join(rows, ", ") + "]"
}

// hasMasked reports whether s looks like a masked array repr with
// masked placeholders in it.
func hasMasked(s string) bool {
	return strings.Contains(s, "masked_array") && strings.Contains(s, "--")
}

var shapeRe = regexp.MustCompile(`(?s)(.+),\s+shape=\(([\d\s,]+)\)(.+)`)

// splitShapeFromAbbrev strips the "..." abbreviation from an array
// repr and splits off a trailing shape annotation when present,
// returning the cleaned repr and the shape as "(dims)" or "".
func splitShapeFromAbbrev(s string) (string, string) {
	shape := ""
	if strings.Contains(s, "shape=") {
		if m := shapeRe.FindStringSubmatch(s); m != nil {
			s = m[1] + m[3]
			s = strings.ReplaceAll(s, ",,", ",")
			shape = "(" + m[2] + ")"
		}
	}
	return strings.Join(strings.Split(s, "...,"), ""), shape
}

// convertNamedTuple folds a named result repr down to a plain tuple:
// "MoodResult(statistic=10, pvalue=0.1)" becomes "(10, 0.1)". A text
// with no "=" signs is returned unchanged; a text that has them but
// does not match the shape reports failure.
func convertNamedTuple(s string) (string, bool) {
	num := strings.Count(s, "=")
	if num == 0 {
		return s, true
	}

	fields := make([]string, num)
	for i := range fields {
		fields[i] = `[\w\d_]+=(.+)`
	}
	re, err := regexp.Compile(`[\w\d_]+\(` + strings.Join(fields, ", ") + `\)`)
	if err != nil {
		return "", false
	}

	flat := strings.Join(strings.Fields(s), " ")
	m := re.FindStringSubmatch(flat)
	if m == nil {
		return "", false
	}
	return "(" + strings.Join(m[1:], ", ") + ")", true
}
