// Package cli provides the command-line interface for numdoc.
package cli

import (
	"fmt"
	"strings"

	"github.com/numdoc/numdoc/internal/errors"
	"github.com/numdoc/numdoc/internal/output"
)

// Version is set at build time.
var Version = "dev"

var out = output.New()

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "--version", "version":
		fmt.Printf("numdoc %s\n", Version)
		return 0
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	if len(remaining) == 0 {
		printUsage()
		return 0
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	switch cmd {
	case "run":
		return cmdRun(cmdArgs, opts)
	case "find":
		return cmdFind(cmdArgs, opts)
	case "config":
		return cmdConfig(cmdArgs, opts)
	default:
		out.ErrorPrefix("unknown command %q", cmd)
		out.Errorln("  run 'numdoc help' for usage")
		return errors.ExitConfigError
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	Quiet      bool
	Verbose    bool
	VerboseAll bool
	FailFast   bool
	Strategy   string
	ConfigFile string
}

// Verbosity maps the flag pair onto the runner's levels.
func (o *GlobalOptions) Verbosity() int {
	switch {
	case o.VerboseAll:
		return 2
	case o.Verbose:
		return 1
	}
	return 0
}

// parseGlobalFlags manually parses global flags from arguments.
//
// Manual parsing is used instead of the stdlib flag package because
// flags can appear anywhere in the argument list and custom error
// messages with usage hints are needed.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-v" || arg == "--verbose":
			opts.Verbose = true
			i++
		case arg == "-vv":
			opts.VerboseAll = true
			i++
		case arg == "-x" || arg == "--fail-fast":
			opts.FailFast = true
			i++
		case arg == "--strategy":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("--strategy requires a value")
			}
			opts.Strategy = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--strategy="):
			opts.Strategy = strings.TrimPrefix(arg, "--strategy=")
			i++
		case arg == "--config":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("--config requires a value")
			}
			opts.ConfigFile = args[i+1]
			i += 2
		case strings.HasPrefix(arg, "--config="):
			opts.ConfigFile = strings.TrimPrefix(arg, "--config=")
			i++
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	if err := validateGlobalOptions(opts); err != nil {
		return nil, nil, err
	}

	out.SetQuiet(opts.Quiet)
	out.SetVerbose(opts.Verbose || opts.VerboseAll)

	return opts, remaining, nil
}

// validateGlobalOptions checks that global options are valid.
func validateGlobalOptions(opts *GlobalOptions) error {
	if opts.Quiet && (opts.Verbose || opts.VerboseAll) {
		return fmt.Errorf("--quiet and --verbose are mutually exclusive")
	}
	if opts.Strategy != "" && opts.Strategy != "default" && opts.Strategy != "api" {
		return fmt.Errorf("invalid --strategy value %q\n  valid values: default, api", opts.Strategy)
	}
	return nil
}

func printUsage() {
	w := output.New()

	w.HelpTitle("numdoc - documentation example checker with numeric tolerances")

	w.HelpSection("Usage:")
	w.HelpEntry("numdoc run <path> [names...]", "Run the examples of a package or text file", 30)
	w.HelpEntry("numdoc find <path>", "List objects whose docs carry examples", 30)
	w.HelpEntry("numdoc config show", "Print the effective configuration", 30)
	w.HelpEntry("numdoc config validate <file>", "Validate a configuration file", 30)
	w.HelpEntry("numdoc version", "Show version information", 30)

	w.HelpSection("Global Flags:")
	w.HelpEntry("-q, --quiet", "Minimal output (errors only)", 22)
	w.HelpEntry("-v, --verbose", "Report every object", 22)
	w.HelpEntry("-vv", "Report every example", 22)
	w.HelpEntry("-x, --fail-fast", "Stop on the first failing example", 22)
	w.HelpEntry("--strategy=<name>", "Discovery strategy: default, api", 22)
	w.HelpEntry("--config=<file>", "Configuration file", 22)
	w.HelpEntry("-h, --help", "Show this help", 22)
	w.HelpEntry("--version", "Show version", 22)

	w.HelpSection("Examples:")
	w.HelpEntry("numdoc run ./pkg/numtol", "Run all examples in a package", 34)
	w.HelpEntry("numdoc run docs/tutorial.txt", "Run the examples in a text file", 34)
	w.HelpEntry("numdoc run . numtol.Close", "Run one object's examples", 34)
	w.HelpEntry("numdoc find . --strategy=api", "List the documented public surface", 34)
	w.Println("")
}
