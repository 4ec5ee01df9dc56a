// Package config loads ltfix.toml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"ltfix/internal/format"
)

// FileName is the configuration file looked up from the working directory upwards.
const FileName = "ltfix.toml"

// ErrNotFound is returned by Find when no configuration file exists.
var ErrNotFound = errors.New("no " + FileName + " found")

// Config is the decoded configuration with defaults applied.
type Config struct {
	Path string `toml:"-"` // file the configuration was read from, "" for defaults

	Repair   RepairConfig  `toml:"repair"`
	Compiler CommandConfig `toml:"compiler"`
	Build    CommandConfig `toml:"build"`
	Format   FormatConfig  `toml:"format"`
	Log      LogConfig     `toml:"log"`
}

type RepairConfig struct {
	MaxIterations int    `toml:"max_iterations"`
	Marker        string `toml:"marker"`
}

// CommandConfig is an argv template. {file}, {out_dir} and {manifest} are
// substituted before the command runs.
type CommandConfig struct {
	Command []string `toml:"command"`
}

type FormatConfig struct {
	Command []string `toml:"command"`
	Enabled bool     `toml:"enabled"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
	JSON  bool   `toml:"json"`
}

// Default returns the built-in configuration.
func Default() Config {
	fmtCmd := format.DefaultCommand()
	return Config{
		Repair: RepairConfig{
			MaxIterations: 25,
			Marker:        "____EXTRACT_THIS",
		},
		Compiler: CommandConfig{Command: []string{
			"rustc", "--error-format=json", "--emit=metadata", "--crate-type=lib",
			"--out-dir", "{out_dir}", "{file}",
		}},
		Build: CommandConfig{Command: []string{
			"cargo", "check", "--message-format=json", "--manifest-path", "{manifest}",
		}},
		Format: FormatConfig{
			Command: fmtCmd.Argv(),
			Enabled: true,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Find looks for FileName in startDir and its parents.
func Find(startDir string) (string, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Load reads path over the defaults. Keys that are absent keep their default.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("repair", "max_iterations") && cfg.Repair.MaxIterations <= 0 {
		return Config{}, fmt.Errorf("%s: [repair].max_iterations must be positive", path)
	}
	for _, c := range []struct {
		key string
		cmd []string
	}{
		{"compiler", cfg.Compiler.Command},
		{"build", cfg.Build.Command},
		{"format", cfg.Format.Command},
	} {
		if meta.IsDefined(c.key, "command") && (len(c.cmd) == 0 || strings.TrimSpace(c.cmd[0]) == "") {
			return Config{}, fmt.Errorf("%s: [%s].command must not be empty", path, c.key)
		}
	}
	cfg.Path = path
	return cfg, nil
}

// Discover finds and loads the configuration for startDir, or returns the
// defaults when there is none. An explicit path skips the lookup.
func Discover(startDir, explicit string) (Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	path, err := Find(startDir)
	if errors.Is(err, ErrNotFound) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}
