// Package demo exists to exercise example discovery end to end.
//
//	>>> 1 + 1
//	2
package demo

// Twice returns x doubled.
//
//	>>> 2 * 21
//	42
func Twice(x int) int { return 2 * x }

// Half returns x halved.
//
//	>>> 7 / 2
//	3.5
func Half(x float64) float64 { return x / 2 }

// Old is kept for compatibility.
//
// Deprecated: use Twice instead.
//
//	>>> 2 * 2
//	4
func Old(x int) int { return 2 * x }
