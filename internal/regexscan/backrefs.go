package regexscan

import (
	"regexp"

	"github.com/phyten/backrefx/internal/model"
)

var backrefRe = regexp.MustCompile(`\\[1-9]`)

// FindBackreferences returns every "\N" token (N in 1..9) in left-to-right
// order. The scan is purely textual: in `\\1` the second backslash still
// starts a token.
func FindBackreferences(sanitized string) []model.Backref {
	locs := backrefRe.FindAllStringIndex(sanitized, -1)
	if len(locs) == 0 {
		return nil
	}
	out := make([]model.Backref, 0, len(locs))
	for _, loc := range locs {
		tok := sanitized[loc[0]:loc[1]]
		out = append(out, model.Backref{
			Token:  tok,
			Index:  int(tok[1] - '0'),
			Offset: loc[0],
		})
	}
	return out
}

// Validate fails on the first backreference whose index exceeds the number
// of capturing groups. pattern is only used in the error message.
func Validate(backrefs []model.Backref, groups []model.Group, pattern string) error {
	for _, br := range backrefs {
		if br.Index > len(groups) {
			return &ValidationError{Backref: br, Groups: len(groups), Pattern: pattern}
		}
	}
	return nil
}
