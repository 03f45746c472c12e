package regexscan

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/phyten/backrefx/internal/model"
)

var (
	// ErrNoBackreferences rejects patterns that carry no "\N" token at all.
	ErrNoBackreferences = errors.New("No backreferences found")
	// ErrSanitizeInvariant is wrapped by SanitizeError.
	ErrSanitizeInvariant = errors.New("sanitize invariant violated")
)

// StructuralKind names the way parentheses failed to balance.
type StructuralKind int

const (
	UnmatchedOpen StructuralKind = iota
	UnmatchedClose
)

func (k StructuralKind) String() string {
	if k == UnmatchedClose {
		return "closing"
	}
	return "opening"
}

// StructuralError reports an unbalanced parenthesis.
//
// Offset is the byte offset of the offending parenthesis inside Pattern;
// Pos is the same location counted in characters, which is what the message
// shows. Prefix is set when the failure was detected at the parenthesis itself
// and the message quotes the pattern up to and including it.
type StructuralError struct {
	Kind    StructuralKind
	Pos     int
	Offset  int
	Pattern string
	Prefix  bool
}

func newStructuralError(kind StructuralKind, pattern string, offset int, prefix bool) *StructuralError {
	return &StructuralError{
		Kind:    kind,
		Pos:     utf8.RuneCountInString(pattern[:offset]),
		Offset:  offset,
		Pattern: pattern,
		Prefix:  prefix,
	}
}

func (e *StructuralError) Error() string {
	if e.Prefix {
		return fmt.Sprintf("Unmatched %s parenthesis @ %d in regex[:%d]=%s", e.Kind, e.Pos, e.Pos+1, e.Pattern[:e.Offset+1])
	}
	return fmt.Sprintf("Unmatched %s parenthesis @ %d in regex=%s", e.Kind, e.Pos, e.Pattern)
}

// ValidationError reports a backreference whose group does not exist.
type ValidationError struct {
	Backref model.Backref
	Groups  int
	Pattern string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("Backreference %s in regex %s refers to non-existent group %d", e.Backref.Token, e.Pattern, e.Backref.Index)
}

// SanitizeError reports a quote or octal span that survived Sanitize.
type SanitizeError struct {
	Construct string
	Result    string
}

func (e *SanitizeError) Error() string {
	return fmt.Sprintf("%s span survived sanitizing: %s", e.Construct, e.Result)
}

func (e *SanitizeError) Unwrap() error { return ErrSanitizeInvariant }

// Classify maps an Analyze error onto the reject taxonomy.
func Classify(err error) model.RejectKind {
	if err == nil {
		return model.RejectNone
	}
	var se *StructuralError
	var ve *ValidationError
	switch {
	case errors.Is(err, ErrNoBackreferences):
		return model.RejectNoBackrefs
	case errors.As(err, &se):
		return model.RejectStructural
	case errors.As(err, &ve):
		return model.RejectValidation
	case errors.Is(err, ErrSanitizeInvariant):
		return model.RejectSanitize
	default:
		return model.RejectUnknown
	}
}
