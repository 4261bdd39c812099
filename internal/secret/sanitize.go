package secret

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	tagRe      = regexp.MustCompile(`<[^>]*>`)
	octetRe    = regexp.MustCompile(`%[a-fA-F0-9]{2}`)
	spaceRunRe = regexp.MustCompile(`[\r\n\t ]+`)
)

// sanitizeText normalises an untrusted single-line header value the way the
// plugin always has: invalid UTF-8 becomes "", markup and percent-encoded
// octets are stripped, whitespace runs collapse to one space, and the
// result is trimmed.
func sanitizeText(s string) string {
	if !utf8.ValidString(s) {
		return ""
	}
	s = tagRe.ReplaceAllString(s, "")
	s = spaceRunRe.ReplaceAllString(s, " ")
	for octetRe.MatchString(s) {
		s = octetRe.ReplaceAllString(s, "")
	}
	// Dropping octets can leave two spaces side by side.
	s = spaceRunRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
