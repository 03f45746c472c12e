package config

import (
	"errors"
	"math"
	"strings"

	engineopts "github.com/phyten/backrefx/internal/engine/opts"
)

// FromEnv reads BACKREFX_* variables. Empty values are treated as unset.
func FromEnv(getenv func(string) string) (Config, error) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	var cfg Config
	var errs []error

	setString := func(target **string, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		value := raw
		*target = &value
	}
	setBool := func(target **bool, key string) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseBool(raw, key)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}
	setInt := func(target **int, key string, min, max int) {
		raw := strings.TrimSpace(getenv(key))
		if raw == "" {
			return
		}
		v, err := engineopts.ParseIntInRange(raw, key, min, max)
		if err != nil {
			errs = append(errs, err)
			return
		}
		value := v
		*target = &value
	}

	// the upper bound for jobs is enforced by NormalizeAndValidate
	setInt(&cfg.Engine.Jobs, "BACKREFX_JOBS", 0, math.MaxInt)
	setString(&cfg.Engine.RejectFile, "BACKREFX_REJECT_FILE")
	setBool(&cfg.Engine.Progress, "BACKREFX_PROGRESS")

	setString(&cfg.UI.Output, "BACKREFX_OUTPUT")
	setString(&cfg.UI.Color, "BACKREFX_COLOR")
	setInt(&cfg.UI.Truncate, "BACKREFX_TRUNCATE", 0, math.MaxInt)
	setString(&cfg.UI.Fields, "BACKREFX_FIELDS")

	if len(errs) > 0 {
		return cfg, errors.Join(errs...)
	}
	return cfg, nil
}
