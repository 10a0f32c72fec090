package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Config holds all configurable paths and solver/render settings.
type Config struct {
	// Paths
	BaseDir  string `json:"base_dir"`
	Input    string `json:"input"`
	Output   string `json:"output"`
	DebugDir string `json:"debug_dir"`
	Report   string `json:"report"`

	// Solver settings
	RootNode       string `json:"root_node"`
	Mesh           string `json:"mesh"`
	Classification string `json:"classification"`
	Strategy       string `json:"strategy"`
	SolverWorkers  int    `json:"solver_workers"`

	// Debug render settings
	Debug       bool   `json:"debug"`
	DebugFormat string `json:"debug_format"`
	RenderSize  int    `json:"render_size"`
	Supersample int    `json:"supersample"`
	Workers     int    `json:"workers"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Input != "" {
		c.Input = flags.Input
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.DebugDir != "" {
		c.DebugDir = flags.DebugDir
	}
	if flags.Classification != "" {
		c.Classification = flags.Classification
	}
	if flags.Strategy != "" {
		c.Strategy = flags.Strategy
	}
	if flags.Debug {
		c.Debug = true
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Resolve relative paths against base dir
	if c.BaseDir != "" {
		c.Input = c.abs(c.Input)
		c.Output = c.abs(c.Output)
		c.DebugDir = c.abs(c.DebugDir)
		c.Report = c.abs(c.Report)
	}

	if c.Output == "" && c.Input != "" {
		c.Output = derivedPath(c.Input, ".skinned")
	}
	if c.DebugDir == "" && c.Output != "" {
		c.DebugDir = filepath.Join(filepath.Dir(c.Output), "debug")
	}
	if c.Report == "" && c.Output != "" {
		c.Report = strings.TrimSuffix(c.Output, filepath.Ext(c.Output)) + ".report.json"
	}

	// Defaults for solver and render settings
	if c.Classification == "" {
		c.Classification = "other"
	}
	if c.Strategy == "" {
		c.Strategy = "auto"
	}
	if c.DebugFormat == "" {
		c.DebugFormat = "webp"
	}
	c.DebugFormat = strings.TrimPrefix(strings.ToLower(c.DebugFormat), ".")
	if c.RenderSize <= 0 {
		c.RenderSize = 512
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.SolverWorkers <= 0 {
		c.SolverWorkers = 1
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Input          string
	Output         string
	DebugDir       string
	Classification string
	Strategy       string
	Debug          bool
	Workers        int
}

func (c *Config) abs(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

// derivedPath inserts suffix before the extension: body.glb -> body.skinned.glb.
func derivedPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}
