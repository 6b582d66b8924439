// Package numdoc is the programmatic entry point for checking the
// examples embedded in documentation: it discovers documented objects,
// parses their prompt-style examples, executes them, and compares the
// output under numeric tolerances.
package numdoc

import (
	"io"
	"os"
	"strings"

	"github.com/numdoc/numdoc/internal/config"
	"github.com/numdoc/numdoc/internal/discover"
	"github.com/numdoc/numdoc/internal/doctest"
	"github.com/numdoc/numdoc/internal/errors"
	"github.com/numdoc/numdoc/internal/output"
	"github.com/numdoc/numdoc/internal/run"
)

// Result is the outcome of a run.
type Result struct {
	Failed    int
	Attempted int
}

// Options control discovery and execution. The zero value runs the
// default strategy with the default configuration.
type Options struct {
	// ConfigFile is an explicit configuration file. Empty probes the
	// working directory for numdoc.json / numdoc.yaml.
	ConfigFile string
	// Strategy is "default" or "api".
	Strategy string
	// Names restricts the run to the listed objects, e.g.
	// "numtol" or "numtol.Close". Collection is then non-recursive.
	Names []string
	// FailFast aborts on the first failing example.
	FailFast bool
	// Verbosity is 0, 1, or 2.
	Verbosity int
	// Quiet suppresses everything but failure reports.
	Quiet bool
	// Stdout and Stderr override the report destinations. Nil means
	// the process streams.
	Stdout, Stderr io.Writer
}

// TestPackage runs the examples of every documented object discovered
// in the Go package at dir. It returns the totals and the per-object
// history.
func TestPackage(dir string, opts Options) (Result, map[string]Result, error) {
	cfg, out, err := setup(opts)
	if err != nil {
		return Result{}, nil, err
	}

	groups, err := packageGroups(dir, cfg, opts)
	if err != nil {
		return Result{}, nil, err
	}
	return runGroups(groups, cfg, out, opts)
}

// TestObjects runs the examples of the named objects in the Go package
// at dir. Collection is non-recursive, as with Options.Names.
func TestObjects(dir string, names []string, opts Options) (Result, map[string]Result, error) {
	opts.Names = names
	return TestPackage(dir, opts)
}

// TestFile runs the examples found in a text file. The whole file is
// one group sharing one namespace.
func TestFile(path string, opts Options) (Result, map[string]Result, error) {
	cfg, out, err := setup(opts)
	if err != nil {
		return Result{}, nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, nil, errors.Environmentf("failed to read %s: %v", path, err)
	}
	group := &doctest.Group{
		Name:     path,
		Filename: path,
		Examples: doctest.ParseFiltered(string(data), cfg),
	}
	return runGroups([]*doctest.Group{group}, cfg, out, opts)
}

// Find lists the discovered objects whose documentation carries at
// least one runnable example, without executing anything.
func Find(dir string, opts Options) ([]string, error) {
	cfg, _, err := setup(opts)
	if err != nil {
		return nil, err
	}
	groups, err := packageGroups(dir, cfg, opts)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		names = append(names, g.Name)
	}
	return names, nil
}

func setup(opts Options) (*config.Config, *output.Writer, error) {
	var cfg *config.Config
	var err error

	path := opts.ConfigFile
	if path == "" {
		path = config.Discover(".")
	}
	if path != "" {
		cfg, err = config.Load(path)
		if err != nil {
			return nil, nil, err
		}
	} else {
		cfg = config.Default()
	}

	var out *output.Writer
	if opts.Stdout != nil || opts.Stderr != nil {
		stdout, stderr := opts.Stdout, opts.Stderr
		if stdout == nil {
			stdout = os.Stdout
		}
		if stderr == nil {
			stderr = os.Stderr
		}
		out = output.NewWithWriters(stdout, stderr, false)
	} else {
		out = output.New()
	}
	out.SetQuiet(opts.Quiet)
	out.SetVerbose(opts.Verbosity >= 2)
	return cfg, out, nil
}

func packageGroups(dir string, cfg *config.Config, opts Options) ([]*doctest.Group, error) {
	root, err := discover.LoadPackage(dir)
	if err != nil {
		return nil, err
	}

	finder := discover.NewFinder(cfg, discover.Strategy(opts.Strategy))
	var objects []*discover.Object
	if len(opts.Names) > 0 {
		targets, err := resolveNames(root, opts.Names)
		if err != nil {
			return nil, err
		}
		objects, err = finder.FindObjects(targets)
		if err != nil {
			return nil, err
		}
	} else {
		objects, err = finder.Find(root)
		if err != nil {
			return nil, err
		}
	}

	var groups []*doctest.Group
	for _, obj := range objects {
		if strings.TrimSpace(obj.Doc) == "" {
			continue
		}
		g := &doctest.Group{
			Name:     obj.Name,
			Filename: obj.Filename,
			Line:     obj.Line,
			Examples: doctest.ParseFiltered(obj.Doc, cfg),
		}
		if len(g.Examples) > 0 {
			groups = append(groups, g)
		}
	}
	return groups, nil
}

// resolveNames maps dotted report names onto the documentation tree.
// "pkg" is the package itself, "pkg.X" a declaration, "pkg.T.M" a
// method.
func resolveNames(root *discover.Object, names []string) ([]*discover.Object, error) {
	var out []*discover.Object
	for _, name := range names {
		obj := root
		rest := strings.TrimPrefix(name, root.Name)
		rest = strings.TrimPrefix(rest, ".")
		for rest != "" {
			part := rest
			if i := strings.Index(rest, "."); i >= 0 {
				part, rest = rest[:i], rest[i+1:]
			} else {
				rest = ""
			}
			obj = obj.Lookup(part)
			if obj == nil {
				return nil, errors.NotFound("object", name)
			}
		}
		out = append(out, obj)
	}
	return out, nil
}

func runGroups(groups []*doctest.Group, cfg *config.Config, out *output.Writer, opts Options) (Result, map[string]Result, error) {
	runner := run.New(cfg, out)
	runner.Verbosity = opts.Verbosity
	runner.FailFast = opts.FailFast

	total, err := runner.RunGroups(groups)
	history := make(map[string]Result, len(runner.History()))
	for name, res := range runner.History() {
		history[name] = Result{Failed: res.Failed, Attempted: res.Attempted}
	}
	result := Result{Failed: total.Failed, Attempted: total.Attempted}
	if err != nil {
		return result, history, err
	}
	out.Summary(result.Failed, result.Attempted)
	return result, history, nil
}
