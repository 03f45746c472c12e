package opts

import (
	"fmt"
	"runtime"
	"strconv"
	"strings"

	"github.com/phyten/backrefx/internal/engine"
)

const (
	maxJobs = 64

	// DefaultRejectFile is where rejected patterns go unless configured otherwise.
	DefaultRejectFile = "rejected_regexps.txt"
)

var (
	trueLiterals  = map[string]struct{}{"1": {}, "true": {}, "yes": {}, "on": {}}
	falseLiterals = map[string]struct{}{"0": {}, "false": {}, "no": {}, "off": {}}

	outputFormats = []string{"tsv", "table", "json", "ndjson", "csv", "markdown"}
)

// Defaults returns the baseline engine options.
func Defaults() engine.Options {
	jobs := runtime.NumCPU()
	if jobs < 1 {
		jobs = 1
	}
	if jobs > maxJobs {
		jobs = maxJobs
	}
	return engine.Options{
		Jobs:     jobs,
		Progress: false,
	}
}

// NormalizeAndValidate ensures the options are within the allowed ranges.
func NormalizeAndValidate(o *engine.Options) error {
	if o.Jobs < 1 || o.Jobs > maxJobs {
		return fmt.Errorf("jobs must be between 1 and %d", maxJobs)
	}
	return nil
}

// ParseBool converts a string literal into a boolean, accepting multiple synonyms.
func ParseBool(raw, key string) (bool, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := trueLiterals[v]; ok {
		return true, nil
	}
	if _, ok := falseLiterals[v]; ok {
		return false, nil
	}
	return false, fmt.Errorf("invalid value for %s: %q", key, raw)
}

// ParseIntInRange parses a string into an int and ensures it falls within [min, max].
// If max < min, the upper bound is ignored.
func ParseIntInRange(raw, key string, min, max int) (int, error) {
	n, err := parseInt(raw, key)
	if err != nil {
		return 0, err
	}
	if n < min {
		if max >= min {
			return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
		}
		return 0, fmt.Errorf("%s must be >= %d", key, min)
	}
	if max >= min && n > max {
		return 0, fmt.Errorf("%s must be between %d and %d", key, min, max)
	}
	return n, nil
}

// NormalizeOutput validates and lower-cases the --output value. "md" is
// accepted for markdown.
func NormalizeOutput(value string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if v == "" {
		return "tsv", nil
	}
	if v == "md" {
		return "markdown", nil
	}
	for _, f := range outputFormats {
		if v == f {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid --output: %s (want one of %s)", value, strings.Join(outputFormats, "|"))
}

// NormalizeRejectFile trims the path and falls back to DefaultRejectFile.
func NormalizeRejectFile(value string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return DefaultRejectFile
}

// ValidateTruncate rejects negative widths; 0 means unlimited.
func ValidateTruncate(n int) error {
	if n < 0 {
		return fmt.Errorf("truncate must be >= 0")
	}
	return nil
}

// SplitMulti turns repeated values (and comma-separated values) into a flat slice.
func SplitMulti(vals []string) []string {
	var out []string
	for _, raw := range vals {
		for _, piece := range strings.Split(raw, ",") {
			part := strings.TrimSpace(piece)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
	}
	return out
}

func parseInt(raw, key string) (int, error) {
	v := strings.TrimSpace(raw)
	if v == "" {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %q", key, raw)
	}
	return n, nil
}
