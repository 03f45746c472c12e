package config

import (
	"github.com/phyten/backrefx/internal/engine"
	engineopts "github.com/phyten/backrefx/internal/engine/opts"
)

type EngineConfig struct {
	Jobs       *int    `yaml:"jobs" toml:"jobs" json:"jobs"`
	RejectFile *string `yaml:"reject_file" toml:"reject_file" json:"reject_file"`
	Progress   *bool   `yaml:"progress" toml:"progress" json:"progress"`
}

type UIConfig struct {
	Output   *string `yaml:"output" toml:"output" json:"output"`
	Color    *string `yaml:"color" toml:"color" json:"color"`
	Truncate *int    `yaml:"truncate" toml:"truncate" json:"truncate"`
	Fields   *string `yaml:"fields" toml:"fields" json:"fields"`
}

type Config struct {
	Engine EngineConfig `yaml:"engine" toml:"engine" json:"engine"`
	UI     UIConfig     `yaml:"ui" toml:"ui" json:"ui"`
}

type EngineSettings struct {
	Jobs       int
	RejectFile string
	Progress   bool
}

type UISettings struct {
	Output   string
	Color    string
	Truncate int
	Fields   string
}

func EngineSettingsFromOptions(opts engine.Options) EngineSettings {
	return EngineSettings{
		Jobs:       opts.Jobs,
		RejectFile: engineopts.DefaultRejectFile,
		Progress:   opts.Progress,
	}
}

func (s EngineSettings) ApplyToOptions(opts *engine.Options) {
	if opts == nil {
		return
	}
	opts.Jobs = s.Jobs
	opts.Progress = s.Progress
}

func DefaultUISettings() UISettings {
	return UISettings{
		Output:   "tsv",
		Color:    "auto",
		Truncate: 0,
		Fields:   "",
	}
}
