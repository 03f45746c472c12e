package config

import "strings"

// MergeEngine applies layers in order; later layers win.
func MergeEngine(base EngineSettings, layers ...EngineConfig) EngineSettings {
	out := base
	for _, layer := range layers {
		out.Jobs = ResolveInt(out.Jobs, layer.Jobs)
		out.RejectFile = ResolveAndTrim(out.RejectFile, layer.RejectFile)
		out.Progress = ResolveBool(out.Progress, layer.Progress)
	}
	return out
}

func MergeUI(base UISettings, layers ...UIConfig) UISettings {
	out := base
	for _, layer := range layers {
		out.Output = ResolveAndTrim(out.Output, layer.Output)
		out.Color = ResolveAndTrim(out.Color, layer.Color)
		out.Truncate = ResolveInt(out.Truncate, layer.Truncate)
		out.Fields = ResolveAndTrim(out.Fields, layer.Fields)
	}
	if strings.TrimSpace(out.Color) == "" {
		out.Color = "auto"
	}
	return out
}
