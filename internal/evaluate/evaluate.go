// Package evaluate scores the two answers against each other: a cheap
// lexical ratio over their opening sentences plus a qualitative critique
// from a lightweight comparison model.
package evaluate

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Score is the normalized similarity ratio in [0, 1] plus the verdict
// derived from the threshold. The verdict is strict: ratio must exceed the
// threshold, equality is disagreement.
type Score struct {
	Ratio float64
	Agree bool
}

// Lexical compares the first sentence of each answer. It is a deliberately
// cheap signal for flagging gross divergence, not ground truth.
func Lexical(a, b string, threshold float64) Score {
	r := Ratio(firstSentence(a), firstSentence(b))
	return Score{Ratio: r, Agree: r > threshold}
}

// firstSentence cuts at the first period, lower-cases, and trims.
func firstSentence(s string) string {
	if i := strings.Index(s, "."); i >= 0 {
		s = s[:i]
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// Ratio is a normalized Levenshtein similarity. It takes the better of a
// whole-string alignment and the best same-length window of the shorter
// string inside the longer one, so a terse answer embedded in a fuller
// sentence still registers as agreement. Identical strings score 1.0,
// strings with no characters in common score 0.0.
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}

	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(ra) == 0 {
		return 0.0
	}

	short, long := string(ra), string(rb)
	best := 1.0 - float64(levenshtein.ComputeDistance(short, long))/float64(len(rb))

	n := len(ra)
	for i := 0; i+n <= len(rb); i++ {
		dist := levenshtein.ComputeDistance(short, string(rb[i:i+n]))
		if r := 1.0 - float64(dist)/float64(n); r > best {
			best = r
		}
	}
	return best
}
