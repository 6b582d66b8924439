package cli

import (
	"os"

	"github.com/numdoc/numdoc/internal/config"
	"github.com/numdoc/numdoc/internal/errors"
	"github.com/numdoc/numdoc/pkg/numdoc"
)

// cmdRun executes the examples of a package directory or a text file.
// Extra arguments restrict the run to the named objects.
func cmdRun(args []string, opts *GlobalOptions) int {
	if len(args) == 0 {
		out.ErrorPrefix("run requires a package directory or file")
		out.Errorln("  example: numdoc run ./pkg/numtol")
		return errors.ExitConfigError
	}
	path := args[0]
	names := args[1:]

	runOpts := numdoc.Options{
		ConfigFile: opts.ConfigFile,
		Strategy:   opts.Strategy,
		Names:      names,
		FailFast:   opts.FailFast,
		Verbosity:  opts.Verbosity(),
		Quiet:      opts.Quiet,
	}

	var result numdoc.Result
	var err error
	if isFile(path) {
		result, _, err = numdoc.TestFile(path, runOpts)
	} else {
		result, _, err = numdoc.TestPackage(path, runOpts)
	}
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}
	if result.Failed > 0 {
		return errors.ExitFailure
	}
	return errors.ExitSuccess
}

// cmdFind lists the objects with runnable examples.
func cmdFind(args []string, opts *GlobalOptions) int {
	if len(args) == 0 {
		out.ErrorPrefix("find requires a package directory")
		return errors.ExitConfigError
	}

	names, err := numdoc.Find(args[0], numdoc.Options{
		ConfigFile: opts.ConfigFile,
		Strategy:   opts.Strategy,
	})
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.GetExitCode(err)
	}

	for _, name := range names {
		out.Println("%s", name)
	}
	if len(names) == 0 {
		out.Info("no examples found")
	}
	return errors.ExitSuccess
}

// cmdConfig handles config subcommands.
func cmdConfig(args []string, opts *GlobalOptions) int {
	if len(args) == 0 {
		out.ErrorPrefix("usage: numdoc config <show|validate> [file]")
		return errors.ExitConfigError
	}
	switch args[0] {
	case "validate":
		return cmdConfigValidate(args[1:])
	case "show":
		return cmdConfigShow(args[1:], opts)
	default:
		out.ErrorPrefix("unknown config subcommand %q", args[0])
		return errors.ExitConfigError
	}
}

func cmdConfigValidate(args []string) int {
	if len(args) == 0 {
		out.ErrorPrefix("config validate requires a file")
		return errors.ExitConfigError
	}
	path := args[0]

	_, warnings, err := config.LoadAndValidate(path)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	for _, warning := range warnings {
		out.Warning("%s", warning)
	}
	out.Success("%s is valid", path)
	return errors.ExitSuccess
}

// cmdConfigShow prints the effective configuration after file overlays.
func cmdConfigShow(args []string, opts *GlobalOptions) int {
	path := opts.ConfigFile
	if path == "" && len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		path = config.Discover(".")
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			out.ErrorPrefix("%v", err)
			return errors.ExitConfigError
		}
		cfg = loaded
		out.Info("config file: %s", path)
	} else {
		out.Info("config file: (built-in defaults)")
	}

	out.Section("comparison")
	out.Println("atol: %g", cfg.Atol)
	out.Println("rtol: %g", cfg.Rtol)
	out.Println("strict_check: %v", cfg.StrictCheck)
	out.Println("parse_namedtuples: %v", cfg.ParseNamedTuples)
	out.Println("nameerror_after_exception: %v", cfg.NameErrorAfterException)

	out.Section("filtering")
	out.Println("random_markers:")
	out.List(cfg.RandomMarkers)
	out.Println("stopwords:")
	out.List(cfg.Stopwords)
	if len(cfg.Pseudocode) > 0 {
		out.Println("pseudocode:")
		out.List(cfg.Pseudocode)
	}
	if len(cfg.SkipList) > 0 {
		out.Println("skiplist:")
		out.List(cfg.SkipList)
	}
	return errors.ExitSuccess
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
