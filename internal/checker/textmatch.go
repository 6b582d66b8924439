package checker

import "strings"

// textMatch is the plain-text comparison stage: whitespace is
// normalized, "..." in the expected text matches any run of output,
// and error transcripts compare by the "error:" prefix alone since
// their detail wording is unstable.
func textMatch(want, got string) bool {
	nWant := normalize(want)
	nGot := normalize(got)
	if nWant == nGot {
		return true
	}
	if strings.Contains(nWant, "...") && ellipsisMatch(nWant, nGot) {
		return true
	}
	return isErrorTranscript(nWant) && isErrorTranscript(nGot)
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func isErrorTranscript(s string) bool {
	return strings.HasPrefix(s, "error:")
}

// ellipsisMatch matches want against got treating "..." as a wildcard
// for any substring. The leading and trailing pieces stay anchored.
func ellipsisMatch(want, got string) bool {
	pieces := strings.Split(want, "...")
	if len(pieces) == 1 {
		return want == got
	}

	startpos, endpos := 0, len(got)
	if first := pieces[0]; first != "" {
		if !strings.HasPrefix(got, first) {
			return false
		}
		startpos = len(first)
	}
	pieces = pieces[1:]

	if last := pieces[len(pieces)-1]; last != "" {
		if !strings.HasSuffix(got, last) {
			return false
		}
		endpos -= len(last)
		if startpos > endpos {
			return false
		}
	}
	pieces = pieces[:len(pieces)-1]

	for _, piece := range pieces {
		if piece == "" {
			continue
		}
		idx := strings.Index(got[startpos:endpos], piece)
		if idx < 0 {
			return false
		}
		startpos += idx + len(piece)
	}
	return true
}
