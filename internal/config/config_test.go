package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autoskin.json")
	data := `{"input": "dragon.glb", "classification": "dragon", "strategy": "segment-blend", "render_size": 256}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Input != "dragon.glb" || cfg.Classification != "dragon" || cfg.Strategy != "segment-blend" || cfg.RenderSize != 256 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Workers != 0 {
		t.Fatal("unset fields must keep zero values")
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("missing file accepted")
	}
	bad := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(bad, []byte("{"), 0644)
	if _, err := Load(bad); err == nil {
		t.Fatal("malformed file accepted")
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		flags Flags
		check func(t *testing.T, c Config)
	}{
		{
			name:  "defaults derived from input",
			flags: Flags{Input: filepath.Join("models", "body.glb")},
			check: func(t *testing.T, c Config) {
				if c.Output != filepath.Join("models", "body.skinned.glb") {
					t.Errorf("Output = %q", c.Output)
				}
				if c.DebugDir != filepath.Join("models", "debug") {
					t.Errorf("DebugDir = %q", c.DebugDir)
				}
				if c.Report != filepath.Join("models", "body.skinned.report.json") {
					t.Errorf("Report = %q", c.Report)
				}
				if c.Classification != "other" || c.Strategy != "auto" || c.DebugFormat != "webp" {
					t.Errorf("solver defaults = %q %q %q", c.Classification, c.Strategy, c.DebugFormat)
				}
				if c.RenderSize != 512 || c.Supersample != 2 || c.Workers <= 0 || c.SolverWorkers != 1 {
					t.Errorf("render defaults = %+v", c)
				}
			},
		},
		{
			name:  "flags override file",
			cfg:   Config{Input: "a.glb", Strategy: "nearest-anchor", Workers: 2},
			flags: Flags{Input: "b.glb", Strategy: "inverse-distance", Debug: true, Workers: 8},
			check: func(t *testing.T, c Config) {
				if c.Input != "b.glb" || c.Strategy != "inverse-distance" || !c.Debug || c.Workers != 8 {
					t.Errorf("cfg = %+v", c)
				}
			},
		},
		{
			name:  "relative paths against base dir",
			cfg:   Config{BaseDir: "/data", Input: "in.gltf", Output: "/abs/out.gltf", DebugFormat: ".PNG"},
			check: func(t *testing.T, c Config) {
				if c.Input != filepath.Join("/data", "in.gltf") || c.Output != "/abs/out.gltf" {
					t.Errorf("paths = %q %q", c.Input, c.Output)
				}
				if c.DebugFormat != "png" {
					t.Errorf("DebugFormat = %q", c.DebugFormat)
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.cfg
			c.Resolve(tt.flags)
			tt.check(t, c)
		})
	}
}
