package termcolor

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

type ColorMode int

const (
	ModeAuto ColorMode = iota
	ModeAlways
	ModeNever
)

func (m ColorMode) String() string {
	switch m {
	case ModeAlways:
		return "always"
	case ModeNever:
		return "never"
	default:
		return "auto"
	}
}

var modeNames = map[string]ColorMode{
	"":       ModeAuto,
	"auto":   ModeAuto,
	"always": ModeAlways,
	"never":  ModeNever,
}

// ParseMode accepts auto, always and never in any case.
func ParseMode(v string) (ColorMode, error) {
	if m, ok := modeNames[strings.ToLower(strings.TrimSpace(v))]; ok {
		return m, nil
	}
	return ModeAuto, fmt.Errorf("unknown color mode: %s", v)
}

type Profile int

const (
	ProfileBasic8 Profile = iota
	ProfileANSI256
	ProfileTrueColor
)

func EnvMap(values []string) map[string]string {
	env := make(map[string]string, len(values))
	for _, entry := range values {
		if entry == "" {
			continue
		}
		if idx := strings.Index(entry, "="); idx >= 0 {
			env[entry[:idx]] = entry[idx+1:]
		} else {
			env[entry] = ""
		}
	}
	return env
}

// DetectMode determines the effective color mode for auto-detection.
//
// Priority order (first match wins):
//  1. TERM=dumb, a non-empty NO_COLOR or CLICOLOR=0 suppress colors.
//  2. CLICOLOR_FORCE / FORCE_COLOR with any non-zero value force-enable colors.
//  3. Otherwise colors are emitted only when stdout is a TTY.
func DetectMode(stdout *os.File, env map[string]string) ColorMode {
	if stdout == nil {
		return ModeNever
	}
	get := func(key string) string { return strings.TrimSpace(env[key]) }
	switch {
	case strings.EqualFold(get("TERM"), "dumb"), get("NO_COLOR") != "", get("CLICOLOR") == "0":
		return ModeNever
	case forceColor(get("CLICOLOR_FORCE")), forceColor(get("FORCE_COLOR")):
		return ModeAlways
	case isTerminal(stdout):
		return ModeAlways
	default:
		return ModeNever
	}
}

// Palette bundles what the renderers need to decide how to paint a cell.
type Palette struct {
	Enabled bool
	Scheme  Scheme
	Profile Profile
}

// NewPalette resolves mode against stdout and the environment. ModeAuto
// follows DetectMode; the scheme and profile are only detected when
// colors end up enabled.
func NewPalette(mode ColorMode, stdout *os.File, env map[string]string) Palette {
	var enabled bool
	switch mode {
	case ModeAlways:
		enabled = true
	case ModeAuto:
		enabled = DetectMode(stdout, env) == ModeAlways
	}
	if !enabled {
		return Palette{}
	}
	return Palette{Enabled: true, Scheme: DetectScheme(env), Profile: DetectProfile(env)}
}

// Paint applies s to text when the palette is enabled.
func (p Palette) Paint(s Style, text string) string {
	return Apply(s, text, p.Enabled)
}

// DetectProfile picks the richest palette the terminal advertises:
// COLORTERM truecolor/24bit, then a *256color TERM, else 8 basic colors.
func DetectProfile(env map[string]string) Profile {
	colorterm := strings.ToLower(env["COLORTERM"])
	for _, marker := range []string{"truecolor", "24bit", "24-bit"} {
		if strings.Contains(colorterm, marker) {
			return ProfileTrueColor
		}
	}
	if strings.Contains(strings.ToLower(env["TERM"]), "256color") {
		return ProfileANSI256
	}
	return ProfileBasic8
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

func forceColor(v string) bool {
	return v != "" && v != "0"
}
