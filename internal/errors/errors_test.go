package errors

import (
	stderrors "errors"
	"testing"
)

func TestExitCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{"nil", nil, ExitSuccess},
		{"runtime", New("boom"), ExitFailure},
		{"config", Config("bad setting"), ExitConfigError},
		{"environment", Environment("no such file"), ExitEnvError},
		{"discovery", Discovery("dangling name"), ExitFailure},
		{"failure", Failure("pkg.Fn", "mismatch"), ExitFailure},
		{"plain error", stderrors.New("opaque"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := GetExitCode(tt.err); got != tt.code {
				t.Errorf("GetExitCode = %d, want %d", got, tt.code)
			}
		})
	}
}

func TestError_TestPrefix(t *testing.T) {
	t.Parallel()

	err := Failure("stats.Mean", "output mismatch")
	if got := err.Error(); got != "[stats.Mean] output mismatch" {
		t.Errorf("Error() = %q", got)
	}
	if got := New("plain").Error(); got != "plain" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsKind(t *testing.T) {
	t.Parallel()

	if !IsKind(Discovery("x"), KindDiscovery) {
		t.Error("IsKind missed a discovery error")
	}
	if IsKind(Discovery("x"), KindConfig) {
		t.Error("IsKind matched the wrong kind")
	}
	if IsKind(stderrors.New("x"), KindRuntime) {
		t.Error("IsKind matched a foreign error")
	}
}

func TestUnwrap(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("root cause")
	err := Exception("pkg.Fn", "raised", cause)
	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable through errors.Is")
	}
}
