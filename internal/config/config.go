package config

import (
	"log/slog"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/inamate/canvas/internal/engine"
)

type Config struct {
	Port             int           `envconfig:"PORT" default:"8080"`
	DatabaseURL      string        `envconfig:"DATABASE_URL" default:"sqlite://./data/canvas.db"`
	JWTSecret        string        `envconfig:"JWT_SECRET" default:"dev-secret-change-in-production"`
	AllowedOrigins   string        `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:5173,http://localhost:3000"`
	AssetDir         string        `envconfig:"ASSET_DIR" default:"./data/assets"`
	AutosaveInterval time.Duration `envconfig:"AUTOSAVE_INTERVAL" default:"30s"`
	LogLevel         string        `envconfig:"LOG_LEVEL" default:"info"`

	Engine Engine
}

// Engine holds the editor thresholds, read from CANVAS_* variables.
type Engine struct {
	MinZoom        float64 `envconfig:"CANVAS_MIN_ZOOM" default:"0.1"`
	MaxZoom        float64 `envconfig:"CANVAS_MAX_ZOOM" default:"10"`
	TextZIndex     int     `envconfig:"CANVAS_TEXT_Z_INDEX" default:"1000"`
	ClickThreshold float64 `envconfig:"CANVAS_CLICK_THRESHOLD" default:"5"`
	MarqueeMinSize float64 `envconfig:"CANVAS_MARQUEE_MIN_SIZE" default:"5"`
	MinFontSize    float64 `envconfig:"CANVAS_MIN_FONT_SIZE" default:"8"`
	SnapEnabled    bool    `envconfig:"CANVAS_SNAP_ENABLED" default:"true"`
	SnapThreshold  float64 `envconfig:"CANVAS_SNAP_THRESHOLD" default:"6"`
}

// Origins splits AllowedOrigins into trimmed, non-empty entries.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// EngineConfig converts the environment settings into an engine config.
func (c *Config) EngineConfig() engine.Config {
	ec := engine.DefaultConfig()
	ec.MinZoom = c.Engine.MinZoom
	ec.MaxZoom = c.Engine.MaxZoom
	ec.TextZIndex = c.Engine.TextZIndex
	ec.ClickThreshold = c.Engine.ClickThreshold
	ec.MarqueeMinSize = c.Engine.MarqueeMinSize
	ec.MinFontSize = c.Engine.MinFontSize
	ec.SnapEnabled = c.Engine.SnapEnabled
	ec.Snap.Threshold = c.Engine.SnapThreshold
	return ec
}

func (c *Config) EngineOptions() []engine.Option {
	return []engine.Option{engine.WithConfig(c.EngineConfig())}
}
