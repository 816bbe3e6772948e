package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const configFileName = "testgen.toml"

// fileConfig mirrors testgen.toml. Zero values mean "not set".
type fileConfig struct {
	Pipeline  pipelineSection  `toml:"pipeline"`
	Generator generatorSection `toml:"generator"`
}

type pipelineSection struct {
	Output    string `toml:"output"`
	Read      int    `toml:"read"`
	Generate  int    `toml:"generate"`
	Write     int    `toml:"write"`
	Extension string `toml:"extension"`
}

type generatorSection struct {
	Body   string   `toml:"body"`
	Usings []string `toml:"usings"`
	Indent int      `toml:"indent"`
}

// loadedConfig is a parsed config file together with where it came from.
type loadedConfig struct {
	Path    string
	Root    string
	Config  fileConfig
	Unknown []string
}

func findConfigFile(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// loadConfig reads explicit when set, otherwise the nearest testgen.toml
// above startDir. No file found is not an error.
func loadConfig(explicit, startDir string) (*loadedConfig, error) {
	path := explicit
	if path == "" {
		found, ok, err := findConfigFile(startDir)
		if err != nil || !ok {
			return nil, err
		}
		path = found
	}
	cfg, unknown, err := decodeConfig(path)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return &loadedConfig{
		Path:    abs,
		Root:    filepath.Dir(abs),
		Config:  cfg,
		Unknown: unknown,
	}, nil
}

func decodeConfig(path string) (fileConfig, []string, error) {
	var cfg fileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return fileConfig{}, nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	var unknown []string
	for _, key := range meta.Undecoded() {
		unknown = append(unknown, key.String())
	}
	cfg.Pipeline.Output = strings.TrimSpace(cfg.Pipeline.Output)
	cfg.Generator.Body = strings.TrimSpace(cfg.Generator.Body)
	return cfg, unknown, nil
}

// outputDir resolves the configured output relative to the config file.
func (c *loadedConfig) outputDir() string {
	if c == nil || c.Config.Pipeline.Output == "" {
		return ""
	}
	out := filepath.FromSlash(c.Config.Pipeline.Output)
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(c.Root, out)
}

func defaultConfigText() string {
	return `# testgen configuration
# Command-line flags override these values.

[pipeline]
output = "."
read = 5
generate = 5
write = 5
extension = ".cs"

[generator]
# "empty" emits a failing assertion, "template" an Arrange/Act/Assert skeleton.
body = "empty"
usings = ["System", "System.Collections.Generic", "System.Linq", "Xunit"]
indent = 4
`
}
