package integration

import (
	"path/filepath"
	"testing"

	"github.com/numdoc/numdoc/internal/config"
)

func TestConfigValidateFixture(t *testing.T) {
	t.Parallel()

	path := filepath.Join(fixturesDir(), "demo", "numdoc.json")
	cfg, warnings, err := config.LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate returned error: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}
	if cfg.Rtol != 0.05 {
		t.Errorf("rtol = %g, want 0.05", cfg.Rtol)
	}
	if !cfg.InSkipList("demo.Old") {
		t.Error("skiplist not applied")
	}
}

func TestConfigValidateInvalidFixture(t *testing.T) {
	t.Parallel()

	path := filepath.Join(fixturesDir(), "invalid", "numdoc.json")
	if _, _, err := config.LoadAndValidate(path); err == nil {
		t.Error("expected a validation error for non-numeric atol")
	}
}
