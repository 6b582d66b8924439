package run

import (
	"testing"

	"github.com/numdoc/numdoc/internal/eval"
)

func TestScriptExecutor_EchoAndBind(t *testing.T) {
	t.Parallel()

	exec := NewScriptExecutor()
	ns := eval.ExecNamespace()

	got, err := exec.Execute("x = 2 + 3\nx\n", ns)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if got != "5\n" {
		t.Errorf("transcript = %q, want %q", got, "5\n")
	}

	// bindings persist across calls on the same namespace
	got, err = exec.Execute("x * 2\n", ns)
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if got != "10\n" {
		t.Errorf("transcript = %q, want %q", got, "10\n")
	}
}

func TestScriptExecutor_Print(t *testing.T) {
	t.Parallel()

	exec := NewScriptExecutor()
	got, err := exec.Execute("print('a', 'b')\nprint(1 + 1)\n", eval.ExecNamespace())
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if got != "a b\n2\n" {
		t.Errorf("transcript = %q, want %q", got, "a b\n2\n")
	}
}

func TestScriptExecutor_MultilineStatement(t *testing.T) {
	t.Parallel()

	exec := NewScriptExecutor()
	source := "data = [1, 2,\n        3, 4]\ndata\n"
	got, err := exec.Execute(source, eval.ExecNamespace())
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if got != "[1, 2, 3, 4]\n" {
		t.Errorf("transcript = %q, want %q", got, "[1, 2, 3, 4]\n")
	}
}

func TestScriptExecutor_CommentsAndBlanks(t *testing.T) {
	t.Parallel()

	exec := NewScriptExecutor()
	got, err := exec.Execute("# setup\n\nx = 1\nx\n", eval.ExecNamespace())
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if got != "1\n" {
		t.Errorf("transcript = %q, want %q", got, "1\n")
	}
}

func TestScriptExecutor_NameError(t *testing.T) {
	t.Parallel()

	exec := NewScriptExecutor()
	_, err := exec.Execute("undefined_thing\n", eval.ExecNamespace())
	if err == nil {
		t.Fatal("Execute succeeded on an undefined name")
	}
	if _, ok := err.(*eval.NameError); !ok {
		t.Errorf("error = %T, want *eval.NameError", err)
	}
}

func TestScriptExecutor_DeterministicRand(t *testing.T) {
	t.Parallel()

	exec := NewScriptExecutor()
	warmup, err := exec.Execute("rand()\n", eval.ExecNamespace())
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	advanced, err := exec.Execute("rand()\n", eval.ExecNamespace())
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if warmup == advanced {
		t.Fatal("consecutive rand() calls repeated a value")
	}
	exec.Reset()
	reseeded, err := exec.Execute("rand()\n", eval.ExecNamespace())
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if reseeded != warmup {
		t.Errorf("Reset did not reseed: %q vs %q", reseeded, warmup)
	}

	first, err := NewScriptExecutor().Execute("rand()\n", eval.ExecNamespace())
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	second, err := NewScriptExecutor().Execute("rand()\n", eval.ExecNamespace())
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if first != second {
		t.Errorf("rand() streams diverged: %q vs %q", first, second)
	}
}

func TestSplitStatements(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		count  int
	}{
		{"two statements", "x = 1\ny = 2\n", 2},
		{"open bracket spans lines", "x = [1,\n2]\ny = 3\n", 2},
		{"bracket in string", "s = '([['\nt = 2\n", 2},
		{"comment only", "# nothing\n", 0},
		{"hash in string", "s = '#'\n", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := splitStatements(tt.source); len(got) != tt.count {
				t.Errorf("splitStatements(%q) = %d statements %v, want %d",
					tt.source, len(got), got, tt.count)
			}
		})
	}
}
