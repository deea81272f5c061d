package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aerosuite/inspect-tui/ui/loader"
	"github.com/aerosuite/inspect-tui/ui/viewport"
	"github.com/aerosuite/inspect-tui/ui/window"
)

// ErrInvalid wraps errors from a config file that exists but cannot be parsed.
var ErrInvalid = errors.New("config: invalid file")

// Config holds persistent settings stored at <profileDir>/aeroinspect.yaml.
type Config struct {
	Theme string `yaml:"theme,omitempty"`

	// Window renderer tuning.
	ItemHeight        int           `yaml:"item_height"`
	Buffer            int           `yaml:"buffer"`
	LoadMoreThreshold int           `yaml:"load_more_threshold"`
	BatchSize         int           `yaml:"batch_size"`
	FrameInterval     time.Duration `yaml:"frame_interval"`

	DBPath   string `yaml:"db_path,omitempty"`
	LogFile  string `yaml:"log_file,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`

	// Latency is added to every page fetch. Useful for demos.
	Latency time.Duration `yaml:"latency,omitempty"`
}

const filename = "aeroinspect.yaml"

// Path returns the config file location inside profileDir.
func Path(profileDir string) string {
	return filepath.Join(profileDir, filename)
}

// Load reads <profileDir>/aeroinspect.yaml and returns the normalized Config.
// A missing file yields Defaults with a nil error. A file that cannot be
// parsed yields Defaults and an error wrapping ErrInvalid.
func Load(profileDir string) (Config, error) {
	return LoadFile(Path(profileDir))
}

// LoadFile is Load for an explicit file path.
func LoadFile(path string) (Config, error) {
	cfg := Defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Defaults(), fmt.Errorf("%w: %s: %v", ErrInvalid, path, err)
	}
	cfg.Normalize()
	return cfg, nil
}

// Save writes cfg to <profileDir>/aeroinspect.yaml, creating the directory if needed.
func Save(profileDir string, cfg Config) error {
	if err := os.MkdirAll(profileDir, 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(Path(profileDir), data, 0o644)
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Theme:             "auto",
		ItemHeight:        1,
		Buffer:            window.DefaultBuffer,
		LoadMoreThreshold: loader.DefaultThreshold,
		BatchSize:         loader.DefaultBatchSize,
		FrameInterval:     viewport.DefaultFrameInterval,
		LogLevel:          "info",
	}
}

// Normalize replaces out-of-range values with defaults.
func (c *Config) Normalize() {
	d := Defaults()
	if c.Theme == "" {
		c.Theme = d.Theme
	}
	if c.ItemHeight <= 0 {
		c.ItemHeight = d.ItemHeight
	}
	if c.Buffer < 0 {
		c.Buffer = 0
	}
	if c.LoadMoreThreshold < 1 || c.LoadMoreThreshold > 100 {
		c.LoadMoreThreshold = d.LoadMoreThreshold
	}
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.FrameInterval <= 0 {
		c.FrameInterval = d.FrameInterval
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
	if c.Latency < 0 {
		c.Latency = 0
	}
}
