package regexscan

import (
	"regexp"

	"github.com/phyten/backrefx/internal/model"
)

// (?P<name>, (?'name' and (?<name>; anything else after "(?" does not capture.
var namedGroupStart = regexp.MustCompile(`^(?:\(\?P<[\p{L}\p{N}_]+>|\(\?'[\p{L}\p{N}_]+'|\(\?<[\p{L}\p{N}_]+>)`)

type openGroup struct {
	start     int
	capturing bool
}

// ScanGroups walks a sanitized pattern and returns its capturing groups in
// the order their closing parentheses appear.
//
// An escaped character never opens or closes anything, and bracket
// expressions are skipped up to the first unescaped ']'.
func ScanGroups(sanitized string) ([]model.Group, error) {
	var (
		groups []model.Group
		stack  []openGroup
	)
	n := len(sanitized)
	for j := 0; j < n; j++ {
		switch sanitized[j] {
		case '\\':
			j++
		case '[':
			j++
			for j < n && sanitized[j] != ']' {
				if sanitized[j] == '\\' {
					j++
				}
				j++
			}
		case '(':
			if j+1 >= n {
				return nil, newStructuralError(UnmatchedOpen, sanitized, j, true)
			}
			stack = append(stack, openGroup{
				start:     j,
				capturing: sanitized[j+1] != '?' || namedGroupStart.MatchString(sanitized[j:]),
			})
		case ')':
			if len(stack) == 0 {
				return nil, newStructuralError(UnmatchedClose, sanitized, j, true)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.capturing {
				groups = append(groups, model.Group{Start: top.start, End: j + 1, Text: sanitized[top.start : j+1]})
			}
		}
	}
	if len(stack) > 0 {
		return nil, newStructuralError(UnmatchedOpen, sanitized, stack[0].start, false)
	}
	return groups, nil
}
