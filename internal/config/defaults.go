package config

// Default tolerance values. Loose on purpose: printed output typically
// carries only a few significant digits.
const (
	DefaultAtol = 1e-8
	DefaultRtol = 1e-2
)

// defaultRandomMarkers returns the out-of-the-box random-output markers.
func defaultRandomMarkers() []string {
	return []string{
		"# random", "# Random",
		"#random", "#Random",
		"# may vary",
	}
}

// defaultStopwords returns the out-of-the-box source stopwords. These
// cover common plotting idioms whose output (figure handles, axis
// objects) is never worth checking, while the calls themselves must
// still be valid.
func defaultStopwords() []string {
	return []string{
		"plt.", ".plot(", ".show(", ".hist(",
		".set_title(", ".set_xlabel(", ".set_ylabel(",
		".imshow(", ".legend(",
		"# reformatted",
	}
}
