package termcolor

import (
	"strconv"
	"strings"
)

// Scheme is the terminal background the status colors are tuned for.
type Scheme int

const (
	SchemeUnknown Scheme = iota
	SchemeDark
	SchemeLight
)

// DetectScheme reads BACKREFX_THEME (light|dark) first, then the background
// index of COLORFGBG, then a "light" TERM name. Dark is the fallback.
func DetectScheme(env map[string]string) Scheme {
	switch strings.ToLower(strings.TrimSpace(env["BACKREFX_THEME"])) {
	case "light":
		return SchemeLight
	case "dark":
		return SchemeDark
	}
	if bg, ok := colorfgbgBackground(env["COLORFGBG"]); ok {
		if bg >= 7 {
			return SchemeLight
		}
		return SchemeDark
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "light") {
		return SchemeLight
	}
	return SchemeDark
}

// colorfgbgBackground takes the last field of "fg;bg" (or "fg;default;bg"),
// stepping back once if it is empty.
func colorfgbgBackground(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	parts := strings.Split(raw, ";")
	field := strings.TrimSpace(parts[len(parts)-1])
	if field == "" && len(parts) >= 2 {
		field = strings.TrimSpace(parts[len(parts)-2])
	}
	bg, err := strconv.Atoi(field)
	if err != nil || bg < 0 {
		return 0, false
	}
	return bg, true
}
