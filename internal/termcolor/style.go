package termcolor

import (
	"strconv"
	"strings"
)

// Style is one SGR combination. Only the richest foreground that is set is
// emitted: FGTrue, then FG256, then FGBasic.
type Style struct {
	Bold      bool
	Underline bool
	FGBasic   *int
	FG256     *int
	FGTrue    *[3]uint8
}

func Basic(color int) Style { return Style{FGBasic: &color} }

func ANSI256(idx int) Style { return Style{FG256: &idx} }

func TrueColor(r, g, b uint8) Style {
	rgb := [3]uint8{r, g, b}
	return Style{FGTrue: &rgb}
}

func (s Style) Empty() bool {
	return !s.Bold && !s.Underline && s.FGBasic == nil && s.FG256 == nil && s.FGTrue == nil
}

func Apply(s Style, text string, enabled bool) string {
	if !enabled || text == "" || s.Empty() {
		return text
	}
	return "\x1b[" + strings.Join(sgrCodes(s), ";") + "m" + text + "\x1b[0m"
}

func sgrCodes(s Style) []string {
	var codes []string
	if s.Bold {
		codes = append(codes, "1")
	}
	if s.Underline {
		codes = append(codes, "4")
	}
	switch {
	case s.FGTrue != nil:
		codes = append(codes, "38;2;"+strconv.Itoa(int(s.FGTrue[0]))+";"+strconv.Itoa(int(s.FGTrue[1]))+";"+strconv.Itoa(int(s.FGTrue[2])))
	case s.FG256 != nil:
		codes = append(codes, "38;5;"+strconv.Itoa(*s.FG256))
	case s.FGBasic != nil:
		codes = append(codes, "3"+strconv.Itoa(*s.FGBasic))
	}
	return codes
}
