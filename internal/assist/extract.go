package assist

import (
	"regexp"
	"strings"
)

var (
	backtickSpan = regexp.MustCompile("`(.*?)`")
	metaChar     = regexp.MustCompile(`[\^\$\[\]\(\)\{\}\.\*\+\?\\]`)
)

// ExtractPattern pulls a pattern out of free model output.
//
// The first single-backtick span wins. Failing that, when the output holds
// a regex metacharacter, the first whitespace-separated token containing
// one is returned. Otherwise the output is returned unchanged.
func ExtractPattern(output string) string {
	if m := backtickSpan.FindStringSubmatch(output); m != nil {
		return m[1]
	}
	if !metaChar.MatchString(output) {
		return output
	}
	for _, word := range strings.Fields(output) {
		if metaChar.MatchString(word) {
			return word
		}
	}
	return output
}
