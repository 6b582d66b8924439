package run

import (
	stderrors "errors"
	"strings"

	"github.com/numdoc/numdoc/internal/checker"
	"github.com/numdoc/numdoc/internal/config"
	"github.com/numdoc/numdoc/internal/doctest"
	"github.com/numdoc/numdoc/internal/errors"
	"github.com/numdoc/numdoc/internal/eval"
	"github.com/numdoc/numdoc/internal/output"
)

// Result is the outcome of running a group or a whole session.
type Result struct {
	Failed    int
	Attempted int
}

func (r *Result) add(other Result) {
	r.Failed += other.Failed
	r.Attempted += other.Attempted
}

// Runner executes example groups, keeps a per-group history, and
// reports through the output writer.
//
// Verbosity 0 prints failures and the summary, 1 adds a header per
// group, 2 adds every passing example.
type Runner struct {
	cfg     *config.Config
	out     *output.Writer
	check   *checker.Checker
	exec    Executor
	history map[string]Result
	totals  Result

	Verbosity int
	// FailFast aborts the session on the first failing example,
	// returning it as an error.
	FailFast bool
}

// New builds a runner with the built-in script executor.
func New(cfg *config.Config, out *output.Writer) *Runner {
	return &Runner{
		cfg:     cfg,
		out:     out,
		check:   checker.New(cfg),
		exec:    NewScriptExecutor(),
		history: map[string]Result{},
	}
}

// SetExecutor replaces the script executor, for callers that run
// examples through their own engine.
func (r *Runner) SetExecutor(exec Executor) {
	r.exec = exec
}

// History returns the per-group results recorded so far.
func (r *Runner) History() map[string]Result {
	return r.history
}

// Totals returns the accumulated result over every group run so far.
func (r *Runner) Totals() Result {
	return r.totals
}

// RunGroups runs the groups in order. With FailFast set, the first
// failure aborts and is returned as the error.
func (r *Runner) RunGroups(groups []*doctest.Group) (Result, error) {
	var total Result
	for _, g := range groups {
		res, err := r.RunGroup(g)
		total.add(res)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// RunGroup executes one group inside its sandbox. Every example of
// the group shares one namespace, so earlier assignments are visible
// to later examples.
func (r *Runner) RunGroup(g *doctest.Group) (Result, error) {
	if r.Verbosity >= 1 {
		r.out.TestName(g.Name)
	}

	sandbox, err := EnterSandbox(r.cfg, g)
	if err != nil {
		return Result{}, err
	}
	defer sandbox.Leave()

	r.exec.Reset()

	if r.cfg.UserContext != nil {
		restore, err := r.cfg.UserContext(g.Name)
		if err != nil {
			return Result{}, errors.Wrap(err, "user context setup failed for "+g.Name)
		}
		defer restore()
	}

	res, err := r.runExamples(g)
	r.history[g.Name] = res
	r.totals.add(res)
	return res, err
}

func (r *Runner) runExamples(g *doctest.Group) (Result, error) {
	var res Result
	ns := r.cfg.ExecNamespace.Clone()
	hadException := false

	for _, ex := range g.Examples {
		if ex.Options.Skip {
			continue
		}
		res.Attempted++

		got, execErr := r.exec.Execute(ex.Source, ns)
		if execErr != nil {
			if r.suppressCascade(execErr, hadException) {
				continue
			}
			got += "error: " + execErr.Error() + "\n"
			if wantsError(ex.Want) && r.check.Check(ex.Want, got) {
				r.reportSuccess(ex, got)
				continue
			}
			hadException = true
			res.Failed++
			r.out.ExampleError(g.Name, g.Line+ex.Line, ex.Source, execErr)
			if r.FailFast {
				return res, errors.Exception(g.Name, "example raised an unexpected error", execErr)
			}
			continue
		}

		if r.check.Check(ex.Want, got) {
			r.reportSuccess(ex, got)
			continue
		}
		res.Failed++
		r.out.ExampleFailure(g.Name, g.Line+ex.Line, ex.Source, ex.Want, got)
		if r.FailFast {
			return res, errors.Failure(g.Name, "example output does not match")
		}
	}
	return res, nil
}

// suppressCascade hides name errors that follow an earlier unexpected
// error in the same group: once a statement failed, names it would
// have bound are missing and every later example fails noisily for
// the same root cause.
func (r *Runner) suppressCascade(err error, hadException bool) bool {
	if !hadException || r.cfg.NameErrorAfterException {
		return false
	}
	var nameErr *eval.NameError
	return stderrors.As(err, &nameErr)
}

func (r *Runner) reportSuccess(ex *doctest.Example, got string) {
	if r.Verbosity >= 2 {
		r.out.ExampleSuccess(ex.Source, got)
	}
}

func wantsError(want string) bool {
	return strings.HasPrefix(strings.TrimSpace(want), "error:")
}
