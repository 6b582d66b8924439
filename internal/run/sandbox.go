package run

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/numdoc/numdoc/internal/config"
	"github.com/numdoc/numdoc/internal/doctest"
	"github.com/numdoc/numdoc/internal/errors"
	"github.com/numdoc/numdoc/internal/eval"
)

// Sandbox is the per-group execution environment: a fresh temporary
// working directory with the group's local resources staged into it,
// plus a guard over the process-wide formatting options.
type Sandbox struct {
	dir        string
	prevWD     string
	prevFormat eval.FormatOptions
}

// EnterSandbox creates the sandbox directory, stages the resources
// configured for the group, and switches the working directory there.
func EnterSandbox(cfg *config.Config, group *doctest.Group) (*Sandbox, error) {
	dir := filepath.Join(os.TempDir(), "numdoc-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Environmentf("failed to create sandbox directory: %v", err)
	}

	if err := stageResources(cfg, group, dir); err != nil {
		os.RemoveAll(dir)
		return nil, err
	}

	prevWD, err := os.Getwd()
	if err != nil {
		os.RemoveAll(dir)
		return nil, errors.Environmentf("failed to read working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		os.RemoveAll(dir)
		return nil, errors.Environmentf("failed to enter sandbox directory: %v", err)
	}

	return &Sandbox{
		dir:        dir,
		prevWD:     prevWD,
		prevFormat: eval.GetFormatOptions(),
	}, nil
}

// Leave restores the working directory and formatting options and
// removes the sandbox directory.
func (s *Sandbox) Leave() {
	eval.SetFormatOptions(s.prevFormat)
	os.Chdir(s.prevWD)
	os.RemoveAll(s.dir)
}

// stageResources copies the files the group's examples read into the
// sandbox. Relative paths resolve against the group's source file.
func stageResources(cfg *config.Config, group *doctest.Group, dir string) error {
	for _, res := range cfg.LocalResources[group.Name] {
		src := res
		if !filepath.IsAbs(src) && group.Filename != "" {
			src = filepath.Join(filepath.Dir(group.Filename), res)
		}
		data, err := os.ReadFile(src)
		if err != nil {
			return errors.Environmentf("failed to read local resource %s: %v", res, err)
		}
		dst := filepath.Join(dir, filepath.Base(res))
		if err := os.WriteFile(dst, data, 0o644); err != nil {
			return errors.Environmentf("failed to stage local resource %s: %v", res, err)
		}
	}
	return nil
}
