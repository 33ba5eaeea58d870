package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.FrameInterval != 16*time.Millisecond {
		t.Errorf("FrameInterval = %s; want 16ms", cfg.FrameInterval)
	}
	if cfg.InspectAddr != "localhost:6060" {
		t.Errorf("InspectAddr = %q", cfg.InspectAddr)
	}
	if cfg.WindowWidth != 1280 || cfg.WindowHeight != 720 {
		t.Errorf("window = %dx%d; want 1280x720", cfg.WindowWidth, cfg.WindowHeight)
	}
	if cfg.MemCore {
		t.Errorf("MemCore defaults on")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("KESTREL_MEM_CORE", "true")
	t.Setenv("KESTREL_FRAME_INTERVAL", "8ms")
	t.Setenv("KESTREL_WINDOW_TITLE", "bench")
	t.Setenv("KESTREL_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if !cfg.MemCore || cfg.FrameInterval != 8*time.Millisecond || cfg.WindowTitle != "bench" {
		t.Errorf("cfg = %+v", cfg)
	}
	level, err := cfg.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, %v; want debug", level, err)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
		want string
	}{
		{"zero interval", func(c *Config) { c.FrameInterval = 0 }, "frame interval"},
		{"zero width", func(c *Config) { c.WindowWidth = 0 }, "window size"},
		{"bad level", func(c *Config) { c.LogLevel = "verbose" }, "log level"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() = %v", err)
			}
			tc.mut(cfg)
			err = cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Validate() = %v; want error containing %q", err, tc.want)
			}
		})
	}
}
