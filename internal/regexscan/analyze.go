// Package regexscan classifies the parenthesized groups of a regular
// expression and checks that its numeric backreferences point at capturing
// groups that exist. Patterns are never compiled or executed.
package regexscan

import "github.com/phyten/backrefx/internal/model"

// Analysis is the accepted outcome for one pattern.
type Analysis struct {
	Pattern   string          `json:"pattern"`
	Sanitized string          `json:"sanitized"`
	Backrefs  []model.Backref `json:"backrefs"`
	Groups    []model.Group   `json:"groups"`
}

// Analyze runs sanitize, extraction, the no-backreference gate, group
// scanning and validation for a single pattern. Any returned error rejects
// only this pattern; Classify tells the kinds apart.
func Analyze(pattern string) (Analysis, error) {
	res := Analysis{Pattern: pattern}
	sanitized, err := Sanitize(pattern)
	if err != nil {
		return res, err
	}
	res.Sanitized = sanitized
	res.Backrefs = FindBackreferences(sanitized)
	if len(res.Backrefs) == 0 {
		return res, ErrNoBackreferences
	}
	groups, err := ScanGroups(sanitized)
	if err != nil {
		return res, err
	}
	res.Groups = groups
	if err := Validate(res.Backrefs, res.Groups, pattern); err != nil {
		return res, err
	}
	return res, nil
}
