package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/phyten/backrefx/internal/config"
)

type scanConfig struct {
	input         string
	configPath    string
	verbose       bool
	showHelp      bool
	forceProgress bool
	noProgress    bool
	// flagLayer holds only the flags given explicitly; it is merged on top
	// of the config file and environment layers.
	flagLayer config.Config
}

type scanFlags struct {
	output     string
	rejectFile string
	jobs       int
	color      string
	truncate   int
	fields     string
}

// usageError is reported together with the usage text and exit status 2.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func isUsageError(err error) bool {
	var ue *usageError
	return errors.As(err, &ue)
}

func newScanFlagSet(cfg *scanConfig, sf *scanFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("backrefx", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&sf.output, "output", "", "tsv|table|json|ndjson|csv|markdown (default tsv)")
	fs.StringVar(&sf.output, "o", "", "shorthand for --output")
	fs.StringVar(&sf.rejectFile, "reject-file", "", "file receiving rejected patterns (default rejected_regexps.txt)")
	fs.StringVar(&sf.rejectFile, "r", "", "shorthand for --reject-file")
	fs.IntVar(&sf.jobs, "jobs", 0, "parallel workers, 1-64 (default NumCPU)")
	fs.IntVar(&sf.jobs, "j", 0, "shorthand for --jobs")
	fs.StringVar(&sf.color, "color", "", "auto|always|never")
	fs.IntVar(&sf.truncate, "truncate", 0, "truncate table columns to N display columns (0=unlimited)")
	fs.StringVar(&sf.fields, "fields", "", "comma separated columns for table/csv/markdown")
	fs.StringVar(&cfg.configPath, "config", "", "config file (default: discovered .backrefx.*)")
	fs.StringVar(&cfg.configPath, "c", "", "shorthand for --config")
	fs.BoolVar(&cfg.forceProgress, "progress", false, "force progress even when piped")
	fs.BoolVar(&cfg.noProgress, "no-progress", false, "disable progress/ETA")
	fs.BoolVar(&cfg.verbose, "verbose", false, "print a summary to stderr")
	fs.BoolVar(&cfg.verbose, "v", false, "shorthand for --verbose")
	fs.BoolVar(&cfg.showHelp, "help", false, "show help")
	fs.BoolVar(&cfg.showHelp, "h", false, "shorthand for --help")
	return fs
}

func parseScanArgs(args []string) (scanConfig, error) {
	var (
		cfg scanConfig
		sf  scanFlags
	)
	fs := newScanFlagSet(&cfg, &sf)
	if err := fs.Parse(args); err != nil {
		return cfg, &usageError{msg: err.Error()}
	}
	if cfg.showHelp {
		return cfg, nil
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "output", "o":
			v := sf.output
			cfg.flagLayer.UI.Output = &v
		case "reject-file", "r":
			v := sf.rejectFile
			cfg.flagLayer.Engine.RejectFile = &v
		case "jobs", "j":
			v := sf.jobs
			cfg.flagLayer.Engine.Jobs = &v
		case "color":
			v := sf.color
			cfg.flagLayer.UI.Color = &v
		case "truncate":
			v := sf.truncate
			cfg.flagLayer.UI.Truncate = &v
		case "fields":
			v := sf.fields
			cfg.flagLayer.UI.Fields = &v
		}
	})
	if cfg.forceProgress && cfg.noProgress {
		return cfg, &usageError{msg: "--progress and --no-progress are mutually exclusive"}
	}

	rest := fs.Args()
	switch len(rest) {
	case 0:
		return cfg, &usageError{msg: "missing input file"}
	case 1:
		cfg.input = rest[0]
	default:
		return cfg, &usageError{msg: fmt.Sprintf("unexpected arguments: %s", strings.Join(rest[1:], " "))}
	}
	return cfg, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: backrefx [flags] <input.tsv>")
	fmt.Fprintln(w, "       backrefx totsv <file.jsonl>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Reads one pattern per line (pattern<TAB>rest) and prints the accepted")
	fmt.Fprintln(w, "patterns with their backreferences and capturing groups. Rejected")
	fmt.Fprintln(w, "patterns go to the reject file with a reason.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fs := newScanFlagSet(&scanConfig{}, &scanFlags{})
	fs.SetOutput(w)
	fs.PrintDefaults()
}
