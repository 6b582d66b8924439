package eval

import "sync"

// FormatOptions control how floating-point values are rendered by Repr.
// A Precision of 0 means "shortest round-trip representation".
//
// The options are process-wide, mirroring the print state of the sessions
// whose output is being reconstructed. The runner saves and restores them
// around each test-group.
type FormatOptions struct {
	Precision int
}

var (
	formatMu   sync.Mutex
	formatOpts FormatOptions
)

// GetFormatOptions returns the current process-wide format options.
func GetFormatOptions() FormatOptions {
	formatMu.Lock()
	defer formatMu.Unlock()
	return formatOpts
}

// SetFormatOptions replaces the process-wide format options and returns
// the previous value, so callers can restore it with defer.
func SetFormatOptions(o FormatOptions) FormatOptions {
	formatMu.Lock()
	defer formatMu.Unlock()
	prev := formatOpts
	formatOpts = o
	return prev
}

func currentPrecision() int {
	formatMu.Lock()
	defer formatMu.Unlock()
	return formatOpts.Precision
}
