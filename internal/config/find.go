package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Where a config file was found, as reported by Find.
const (
	SourceExplicit = "explicit"
	SourceWalkUp   = "cwd-up"
	SourceXDG      = "xdg"
	SourceHome     = "home"
)

var configExts = []string{".yaml", ".yml", ".toml", ".json"}

// Find locates a config file: the explicit path first, then .backrefx.* in
// startDir and its parents, then $XDG_CONFIG_HOME/backrefx, then $HOME. The
// second return value names where the file was found. Nothing found is not
// an error.
func Find(startDir, explicitPath, xdgHome, home string) (string, string, error) {
	if explicit := strings.TrimSpace(explicitPath); explicit != "" {
		path, err := checkExplicit(explicit)
		if err != nil {
			return "", "", err
		}
		return path, SourceExplicit, nil
	}

	dir, err := filepath.Abs(orDefault(strings.TrimSpace(startDir), "."))
	if err != nil {
		return "", "", err
	}
	for {
		if path, ok := firstExisting(dir, ".backrefx"); ok {
			return path, SourceWalkUp, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	homeDir := resolveHome(home)
	xdgRoot := strings.TrimSpace(xdgHome)
	if xdgRoot == "" && homeDir != "" {
		xdgRoot = filepath.Join(homeDir, ".config")
	}
	if xdgRoot != "" {
		if path, ok := firstExisting(filepath.Join(xdgRoot, "backrefx"), "config"); ok {
			return path, SourceXDG, nil
		}
	}
	if homeDir != "" {
		if path, ok := firstExisting(homeDir, ".backrefx"); ok {
			return path, SourceHome, nil
		}
	}
	return "", "", nil
}

func checkExplicit(path string) (string, error) {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", err
		}
		path = abs
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("BACKREFX_CONFIG %q points to a directory", path)
	}
	return path, nil
}

// firstExisting tries base+ext in dir for each supported extension.
func firstExisting(dir, base string) (string, bool) {
	for _, ext := range configExts {
		candidate := filepath.Join(dir, base+ext)
		if info, err := os.Stat(candidate); err == nil && info.Mode().IsRegular() {
			return candidate, true
		}
	}
	return "", false
}

func resolveHome(home string) string {
	if h := strings.TrimSpace(home); h != "" {
		return h
	}
	h, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return h
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
