// Package run executes example groups and accumulates their results.
package run

import (
	"strings"

	"github.com/numdoc/numdoc/internal/eval"
)

// Executor runs the source of one example against a namespace and
// returns the output transcript. Reset restores any per-group state
// before a new group starts.
type Executor interface {
	Execute(source string, ns eval.Namespace) (string, error)
	Reset()
}

// ScriptExecutor is the built-in interpreter for example sources: it
// splits the source into statements, binds assignments into the
// namespace, and echoes the value of bare expressions the way an
// interactive session would.
type ScriptExecutor struct {
	randState uint64
}

const randSeed = 0x9e3779b97f4a7c15

// NewScriptExecutor returns an executor with a fixed random seed, so
// repeated runs of a group produce the same rand() stream.
func NewScriptExecutor() *ScriptExecutor {
	return &ScriptExecutor{randState: randSeed}
}

// Reset reseeds the rand() stream, so a group's stream does not depend
// on the groups that ran before it.
func (e *ScriptExecutor) Reset() {
	e.randState = randSeed
}

// Execute runs source in ns. Execution stops at the first statement
// error; the transcript produced so far is still returned so the
// caller can report it.
func (e *ScriptExecutor) Execute(source string, ns eval.Namespace) (string, error) {
	var out strings.Builder
	ns["print"] = eval.PrintBuiltin(func(s string) { out.WriteString(s) })
	ns["rand"] = eval.RandBuiltin(e.nextRand)

	for _, stmt := range splitStatements(source) {
		st, err := eval.Parse(stmt)
		if err != nil {
			return out.String(), err
		}
		v, err := st.Eval(ns)
		if err != nil {
			return out.String(), err
		}
		if v != nil && v.Kind() != eval.KindNone {
			out.WriteString(v.Repr() + "\n")
		}
	}
	return out.String(), nil
}

func (e *ScriptExecutor) nextRand() float64 {
	e.randState ^= e.randState << 13
	e.randState ^= e.randState >> 7
	e.randState ^= e.randState << 17
	return float64(e.randState>>11) / float64(uint64(1)<<53)
}

// splitStatements cuts the source into statements. A statement spans
// multiple lines while brackets stay open. Blank and comment-only
// statements are dropped.
func splitStatements(source string) []string {
	var stmts []string
	var current []string
	depth := 0

	flush := func() {
		stmt := strings.Join(current, "\n")
		if !blankStatement(stmt) {
			stmts = append(stmts, stmt)
		}
		current = nil
		depth = 0
	}

	for _, line := range strings.Split(strings.TrimRight(source, "\n"), "\n") {
		current = append(current, line)
		depth += bracketDelta(line)
		if depth <= 0 {
			flush()
		}
	}
	if len(current) > 0 {
		flush()
	}
	return stmts
}

// bracketDelta counts the net open brackets on a line, skipping
// string literals and comments.
func bracketDelta(line string) int {
	depth := 0
	quote := byte(0)
	for i := 0; i < len(line); i++ {
		c := line[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"':
			quote = c
		case '#':
			return depth
		case '(', '[':
			depth++
		case ')', ']':
			depth--
		}
	}
	return depth
}

func blankStatement(stmt string) bool {
	quote := byte(0)
	for i := 0; i < len(stmt); i++ {
		c := stmt[i]
		if quote != 0 {
			return false
		}
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
		case c == '#':
			for i < len(stmt) && stmt[i] != '\n' {
				i++
			}
		case c == '\'' || c == '"':
			quote = c
		default:
			return false
		}
	}
	return quote == 0
}
