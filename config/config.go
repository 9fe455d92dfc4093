// Package config loads the polygonize CLI's optional YAML configuration
// file, in the same shape and loading idiom as the teacher's own
// osmtopo.ExtractConfig/LoadConfig.
package config

import (
	"io/ioutil"

	yaml "gopkg.in/yaml.v1"
)

// Config holds the settings the polygonize CLI accepts from a config file,
// as an alternative (or supplement) to command-line flags.
type Config struct {
	NodeInput         bool    `yaml:"node_input"`
	SnapGridSize      float64 `yaml:"snap_grid_size"`
	MaxIterations     int     `yaml:"max_iterations"`
	MinShellsForIndex int     `yaml:"min_shells_for_index"`

	Tiling *TilingConfig `yaml:"tiling"`
}

// TilingConfig configures the tiled polygonizer when present.
type TilingConfig struct {
	TileSize float64 `yaml:"tile_size"`
	Buffer   float64 `yaml:"buffer"`
}

// LoadConfig reads and parses a YAML config file at configPath.
func LoadConfig(configPath string) (*Config, error) {
	data, err := ioutil.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	config := &Config{}
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	return config, nil
}
