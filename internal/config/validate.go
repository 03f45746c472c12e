package config

import (
	"fmt"
	"strings"

	engineopts "github.com/phyten/backrefx/internal/engine/opts"
	"github.com/phyten/backrefx/internal/termcolor"
)

func CanonicalizeColor(raw string) (string, error) {
	mode, err := termcolor.ParseMode(raw)
	if err != nil {
		return "", fmt.Errorf("invalid color: %s", raw)
	}
	return mode.String(), nil
}

// NormalizeUI canonicalizes the output format and color mode and checks
// the truncate width.
func NormalizeUI(values UISettings) (UISettings, error) {
	var err error
	values.Fields = strings.TrimSpace(values.Fields)

	values.Output, err = engineopts.NormalizeOutput(values.Output)
	if err != nil {
		return values, err
	}
	values.Color, err = CanonicalizeColor(values.Color)
	if err != nil {
		return values, err
	}
	if err := engineopts.ValidateTruncate(values.Truncate); err != nil {
		return values, err
	}
	return values, nil
}

func NormalizeEngine(values EngineSettings) EngineSettings {
	values.RejectFile = engineopts.NormalizeRejectFile(values.RejectFile)
	return values
}
