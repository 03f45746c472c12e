package regexscan

import "regexp"

var (
	// \Q...\E, shortest span; an opener without \E is left alone.
	quoteRe = regexp.MustCompile(`\\Q.*?\\E`)
	octalRe = regexp.MustCompile(`\\[0-9]{3}`)
)

// Sanitize strips quoted-literal spans and then octal escapes from pattern.
//
// Removing one span can splice its neighbours into a new one (for example
// `\12\3456` becomes `\126`), so the result is checked again and a survivor is
// reported as a *SanitizeError instead of being handed to the scanner.
func Sanitize(pattern string) (string, error) {
	out := quoteRe.ReplaceAllLiteralString(pattern, "")
	out = octalRe.ReplaceAllLiteralString(out, "")
	if quoteRe.MatchString(out) {
		return out, &SanitizeError{Construct: "quoted literal", Result: out}
	}
	if octalRe.MatchString(out) {
		return out, &SanitizeError{Construct: "octal escape", Result: out}
	}
	return out, nil
}
