package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/phyten/backrefx/internal/config"
	"github.com/phyten/backrefx/internal/engine"
	engineopts "github.com/phyten/backrefx/internal/engine/opts"
	"github.com/phyten/backrefx/internal/model"
	"github.com/phyten/backrefx/internal/output"
	"github.com/phyten/backrefx/internal/progress"
	"github.com/phyten/backrefx/internal/termcolor"
)

func main() {
	log.SetFlags(0)
	args := os.Args[1:]

	var err error
	if len(args) > 0 && args[0] == "totsv" {
		err = totsvCmd(args[1:], os.Stdout, os.Stderr)
	} else {
		err = scanCmd(args, os.Getenv, os.Stdout, os.Stderr)
	}
	if err == nil {
		return
	}
	if isUsageError(err) {
		fmt.Fprintf(os.Stderr, "backrefx: %v\n\n", err)
		printUsage(os.Stderr)
		os.Exit(2)
	}
	log.Fatal(err)
}

// runSettings is the merged outcome of defaults, config file, environment
// and flags.
type runSettings struct {
	engine     config.EngineSettings
	ui         config.UISettings
	configPath string
	configFrom string
}

func resolveSettings(cfg scanConfig, getenv func(string) string) (runSettings, error) {
	var rs runSettings
	explicit := cfg.configPath
	if strings.TrimSpace(explicit) == "" {
		explicit = getenv("BACKREFX_CONFIG")
	}
	path, where, err := config.Find(filepath.Dir(cfg.input), explicit, getenv("XDG_CONFIG_HOME"), getenv("HOME"))
	if err != nil {
		return rs, fmt.Errorf("config: %w", err)
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return rs, fmt.Errorf("config: %w", err)
	}
	envCfg, err := config.FromEnv(getenv)
	if err != nil {
		return rs, &usageError{msg: err.Error()}
	}

	rs.configPath, rs.configFrom = path, where
	rs.engine = config.NormalizeEngine(config.MergeEngine(
		config.EngineSettingsFromOptions(engineopts.Defaults()),
		fileCfg.Engine, envCfg.Engine, cfg.flagLayer.Engine,
	))
	rs.ui, err = config.NormalizeUI(config.MergeUI(
		config.DefaultUISettings(),
		fileCfg.UI, envCfg.UI, cfg.flagLayer.UI,
	))
	if err != nil {
		return rs, &usageError{msg: err.Error()}
	}
	return rs, nil
}

func scanCmd(args []string, getenv func(string) string, stdout, stderr io.Writer) error {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	cfg, err := parseScanArgs(args)
	if err != nil {
		return err
	}
	if cfg.showHelp {
		printUsage(stdout)
		return nil
	}

	rs, err := resolveSettings(cfg, getenv)
	if err != nil {
		return err
	}
	sel, err := output.ResolveFields(rs.ui.Fields)
	if err != nil {
		return &usageError{msg: err.Error()}
	}
	mode, err := termcolor.ParseMode(rs.ui.Color)
	if err != nil {
		return &usageError{msg: err.Error()}
	}

	opts := engineopts.Defaults()
	rs.engine.ApplyToOptions(&opts)
	if err := engineopts.NormalizeAndValidate(&opts); err != nil {
		return &usageError{msg: err.Error()}
	}
	opts.Progress = progress.ShouldShowProgress(cfg.forceProgress || rs.engine.Progress, cfg.noProgress)
	if opts.Progress {
		opts.ProgressObserver = progress.NewAutoObserver(stderr)
	}

	in, err := os.Open(cfg.input)
	if err != nil {
		return err
	}
	defer in.Close()

	rejects, err := os.Create(rs.engine.RejectFile)
	if err != nil {
		return err
	}
	defer rejects.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := engine.Run(ctx, opts, in)
	if err != nil {
		return err
	}

	if err := output.WriteRejects(rejects, res.Items); err != nil {
		return fmt.Errorf("write %s: %w", rs.engine.RejectFile, err)
	}
	if err := rejects.Close(); err != nil {
		return fmt.Errorf("close %s: %w", rs.engine.RejectFile, err)
	}

	env := termcolor.EnvMap(os.Environ())
	if err := render(stdout, res, rs.ui, sel, termcolor.NewPalette(mode, asFile(stdout), env)); err != nil {
		return err
	}
	if cfg.verbose {
		logSummary(stderr, res, rs, termcolor.NewPalette(mode, asFile(stderr), env))
	}
	return nil
}

func render(w io.Writer, res *engine.Result, ui config.UISettings, sel output.FieldSelection, palette termcolor.Palette) error {
	switch ui.Output {
	case "json":
		return output.WriteJSON(w, res)
	case "ndjson":
		return output.WriteNDJSON(w, res.Items)
	case "csv":
		return output.WriteCSV(w, res.Items, sel)
	case "markdown":
		return output.WriteMarkdownTable(w, res.Items, sel)
	case "table":
		return output.WriteTable(w, res.Items, sel, output.TableOptions{
			Palette:  palette,
			Truncate: ui.Truncate,
			MaxCount: res.MaxBackrefs(),
		})
	default:
		return output.WriteAccepted(w, res.Items)
	}
}

func logSummary(w io.Writer, res *engine.Result, rs runSettings, palette termcolor.Palette) {
	l := log.New(w, "", 0)
	if rs.configPath != "" {
		l.Printf("config: %s (%s)", rs.configPath, rs.configFrom)
	}
	accepted := palette.Paint(termcolor.StatusStyle(model.StatusAccepted, palette.Scheme, palette.Profile), fmt.Sprintf("accepted=%d", res.Accepted))
	rejected := palette.Paint(termcolor.StatusStyle(model.StatusRejected, palette.Scheme, palette.Profile), fmt.Sprintf("rejected=%d", res.Rejected))
	l.Printf("total=%d %s %s skipped=%d elapsed=%dms rejects=%s",
		res.Total, accepted, rejected, res.Skipped, res.ElapsedMS, rs.engine.RejectFile)
}

func asFile(w io.Writer) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return nil
}
