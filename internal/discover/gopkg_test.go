package discover

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const statsSource = `// Package stats provides summary statistics.
package stats

// Scale adjusts every mean by a constant factor.
const Scale = 2.0

// Mean returns the arithmetic mean of xs.
//
//	>>> mean([1, 2, 3])
//	2.0
func Mean(xs []float64) float64 { return 0 }

// Old is the previous mean routine.
//
// Deprecated: use Mean instead.
func Old(xs []float64) float64 { return 0 }

// helper is unexported and invisible to documentation.
func helper() {}

// Result holds a computed statistic.
type Result struct{ v float64 }

// Value returns the computed statistic.
func (r Result) Value() float64 { return r.v }

// Weighted is a Result carrying observation weights.
type Weighted struct {
	Result
	weights []float64
}

// NewWeighted builds a Weighted from observations and weights.
func NewWeighted(xs, ws []float64) Weighted { return Weighted{} }
`

func loadSample(t *testing.T) *Object {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stats.go"), []byte(statsSource), 0o644); err != nil {
		t.Fatal(err)
	}
	root, err := LoadPackage(dir)
	if err != nil {
		t.Fatalf("LoadPackage returned error: %v", err)
	}
	return root
}

func TestLoadPackage_Root(t *testing.T) {
	t.Parallel()

	root := loadSample(t)
	if root.Name != "stats" || root.Kind != KindPackage {
		t.Errorf("root = %s (%s)", root.Name, root.Kind)
	}
	if !strings.Contains(root.Doc, "summary statistics") {
		t.Errorf("root doc = %q", root.Doc)
	}
}

func TestLoadPackage_Members(t *testing.T) {
	t.Parallel()

	root := loadSample(t)

	tests := []struct {
		name string
		kind Kind
	}{
		{"Scale", KindValue},
		{"Mean", KindFunc},
		{"Old", KindFunc},
		{"Result", KindType},
		{"Weighted", KindType},
	}
	for _, tt := range tests {
		obj := root.Lookup(tt.name)
		if obj == nil {
			t.Errorf("Lookup(%q) = nil", tt.name)
			continue
		}
		if obj.Kind != tt.kind {
			t.Errorf("%s kind = %s, want %s", tt.name, obj.Kind, tt.kind)
		}
		if obj.Name != "stats."+tt.name {
			t.Errorf("%s full name = %q", tt.name, obj.Name)
		}
	}

	if root.Lookup("helper") != nil {
		t.Error("unexported helper should not be documented")
	}
}

func TestLoadPackage_DocsAndPositions(t *testing.T) {
	t.Parallel()

	root := loadSample(t)

	mean := root.Lookup("Mean")
	if mean == nil {
		t.Fatal("Lookup(Mean) = nil")
	}
	if !strings.Contains(mean.Doc, ">>> mean([1, 2, 3])") {
		t.Errorf("Mean doc = %q, want the embedded example", mean.Doc)
	}
	if mean.Line <= 0 || !strings.HasSuffix(mean.Filename, "stats.go") {
		t.Errorf("Mean position = %s:%d", mean.Filename, mean.Line)
	}
}

func TestLoadPackage_Deprecated(t *testing.T) {
	t.Parallel()

	root := loadSample(t)

	if old := root.Lookup("Old"); old == nil || !old.Deprecated {
		t.Error("Old should be marked deprecated")
	}
	if mean := root.Lookup("Mean"); mean == nil || mean.Deprecated {
		t.Error("Mean should not be marked deprecated")
	}
}

func TestLoadPackage_TypeSurface(t *testing.T) {
	t.Parallel()

	root := loadSample(t)

	result := root.Lookup("Result")
	if result == nil {
		t.Fatal("Lookup(Result) = nil")
	}
	var value *Object
	for _, m := range result.Members {
		if m.Name == "stats.Result.Value" {
			value = m
		}
	}
	if value == nil || value.Kind != KindMethod {
		t.Fatalf("Result members = %v", names(result.Members))
	}

	weighted := root.Lookup("Weighted")
	if weighted == nil {
		t.Fatal("Lookup(Weighted) = nil")
	}
	if !hasName(weighted.Members, "stats.NewWeighted") {
		t.Errorf("Weighted members = %v, want the constructor", names(weighted.Members))
	}
	if len(weighted.Bases) != 1 || weighted.Bases[0].Name != "stats.Result" {
		t.Errorf("Weighted bases = %v", names(weighted.Bases))
	}
}

func TestLoadPackage_Errors(t *testing.T) {
	t.Parallel()

	if _, err := LoadPackage(t.TempDir()); err == nil {
		t.Error("expected an error for an empty directory")
	}

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "broken.go"), []byte("package {"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPackage(dir); err == nil {
		t.Error("expected an error for unparseable source")
	}
}
