// Package config loads host configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config controls the host loop, the native library lookup, and the debug
// surfaces. All values come from KESTREL_* environment variables so deploys
// can be tuned without code changes.
type Config struct {
	// LibPath overrides the native core library search. Empty means the
	// standard lookup order.
	LibPath string `env:"KESTREL_LIB_PATH"`

	// MemCore runs against the in-process core instead of the native one.
	MemCore bool `env:"KESTREL_MEM_CORE" envDefault:"false"`

	// FrameInterval is the target time between ticks.
	FrameInterval time.Duration `env:"KESTREL_FRAME_INTERVAL" envDefault:"16ms"`

	// InspectAddr is the listen address of the debug HTTP surface. Empty
	// disables it.
	InspectAddr string `env:"KESTREL_INSPECT_ADDR" envDefault:"localhost:6060"`

	// TapHistory bounds the retained traffic records on the inspector.
	TapHistory int `env:"KESTREL_TAP_HISTORY" envDefault:"256"`

	// ProfilingDir archives profiling snapshots to disk when set.
	ProfilingDir string `env:"KESTREL_PROFILING_DIR"`

	// ProfilingBucket archives profiling snapshots to S3 when set.
	ProfilingBucket string `env:"KESTREL_PROFILING_S3_BUCKET"`
	ProfilingPrefix string `env:"KESTREL_PROFILING_S3_PREFIX" envDefault:"profiling/"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"KESTREL_LOG_LEVEL" envDefault:"info"`

	// Window is the initial window the host opens.
	WindowTitle  string `env:"KESTREL_WINDOW_TITLE" envDefault:"kestrel"`
	WindowWidth  uint32 `env:"KESTREL_WINDOW_WIDTH" envDefault:"1280"`
	WindowHeight uint32 `env:"KESTREL_WINDOW_HEIGHT" envDefault:"720"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	if c.FrameInterval <= 0 {
		return fmt.Errorf("config: frame interval must be positive, got %s", c.FrameInterval)
	}
	if c.WindowWidth == 0 || c.WindowHeight == 0 {
		return fmt.Errorf("config: window size must be nonzero, got %dx%d", c.WindowWidth, c.WindowHeight)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LogLevel onto slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
}
