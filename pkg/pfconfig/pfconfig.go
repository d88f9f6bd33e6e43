// Package pfconfig implements the renderer's typed YAML defaults file
// (spec.md §9's "explicit typed configuration structure" note made
// concrete): one RenderConfig struct, loaded with gopkg.in/yaml.v3, the
// way avatar29A-midgard-ro's internal/config package loads its engine
// settings. CLI flags override a loaded file's values; the file overrides
// these built-in defaults.
package pfconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RenderConfig holds every renderer setting that the CLI flags can also
// set, at the priority built-in defaults < file < flags.
type RenderConfig struct {
	Threads         int    `yaml:"threads"`
	TileSize        int    `yaml:"tile_size"`
	SamplesPerPixel int    `yaml:"samples_per_pixel"`
	Sampler         string `yaml:"sampler"` // "independent" or "halton"
	PreviewHost     string `yaml:"preview_host"`
	NoPreview       bool   `yaml:"no_preview"`
	OutputPath      string `yaml:"output_path"`
	LogLevel        string `yaml:"log_level"`
	LogFile         string `yaml:"log_file"`
}

// Default returns the built-in defaults, the lowest-priority layer.
func Default() RenderConfig {
	return RenderConfig{
		Threads:         0, // 0 means runtime.NumCPU()
		TileSize:        64,
		SamplesPerPixel: 16,
		Sampler:         "independent",
		PreviewHost:     "localhost:14158",
		OutputPath:      "render.exr",
		LogLevel:        "info",
	}
}

// Load reads a YAML defaults file and merges it over Default(). A missing
// path is not an error: it just means "use the built-in defaults."
func Load(path string) (RenderConfig, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("pfconfig: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("pfconfig: parsing %s: %w", path, err)
	}
	return cfg, nil
}
