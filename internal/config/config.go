// Package config handles meshcut configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/philipparndt/meshcut/pkg/slicer"
)

// Config holds all meshcut settings.
type Config struct {
	Cut     CutConfig     `yaml:"cut"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Watch   WatchConfig   `yaml:"watch"`
}

// CutConfig holds slicer settings.
type CutConfig struct {
	Epsilon       float64 `yaml:"epsilon"`
	WeldTolerance float64 `yaml:"weld_tolerance"` // 0 keeps exact vertex dedup
	CapMode       string  `yaml:"cap_mode"`       // fan or contour
	Cap           bool    `yaml:"cap"`
}

// OutputConfig controls where and how cut halves are written.
type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // stl or obj
	Binary bool   `yaml:"binary"` // binary STL
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Cut: CutConfig{
			Epsilon: slicer.DefaultEpsilon,
			CapMode: slicer.CapFan.String(),
			Cap:     true,
		},
		Output: OutputConfig{
			Dir:    ".",
			Format: "stl",
			Binary: true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if c.Cut.Epsilon <= 0 {
		return fmt.Errorf("cut.epsilon must be positive, got %g", c.Cut.Epsilon)
	}
	if c.Cut.WeldTolerance < 0 {
		return fmt.Errorf("cut.weld_tolerance must not be negative, got %g", c.Cut.WeldTolerance)
	}
	if _, err := slicer.ParseCapMode(c.Cut.CapMode); err != nil {
		return fmt.Errorf("cut.cap_mode: %w", err)
	}
	switch c.Output.Format {
	case "stl", "obj":
	default:
		return fmt.Errorf("output.format must be stl or obj, got %q", c.Output.Format)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %v", c.Watch.Debounce)
	}
	return nil
}

// SlicerOptions converts the cut section into slicer options. The config
// must have passed Validate.
func (c *CutConfig) SlicerOptions() slicer.Options {
	mode, _ := slicer.ParseCapMode(c.CapMode)
	return slicer.Options{
		Epsilon:       c.Epsilon,
		WeldTolerance: c.WeldTolerance,
		CapMode:       mode,
		Cap:           c.Cap,
	}
}
