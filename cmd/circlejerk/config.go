package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/CTAG07/circlejerk/pkg/fixture"
	"github.com/CTAG07/circlejerk/pkg/render"
	"github.com/natefinch/atomic"
)

// ServerConfig holds the configuration for the HTTP server.
type ServerConfig struct {
	Addr        string `json:"addr"`
	LogLevel    string `json:"log_level"`
	TemplateDir string `json:"template_dir"`
	StaticDir   string `json:"static_dir"`
	Watch       bool   `json:"watch"`
}

// BuildConfig holds the settings of the static site build.
type BuildConfig struct {
	OutDir      string `json:"out_dir"`
	Concurrency int    `json:"concurrency"`
	ProfilePage string `json:"profile_page"`
	ArticlePage string `json:"article_page"`
	CopyStatic  bool   `json:"copy_static"`
}

// Config is the top-level configuration struct that aggregates all other configs.
type Config struct {
	Server  *ServerConfig   `json:"server_config"`
	Fixture *fixture.Config `json:"fixture_config"`
	Render  *render.Config  `json:"render_config"`
	Build   *BuildConfig    `json:"build_config"`
}

// DefaultServerConfig creates a server configuration with default values.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:        ":8080",
		LogLevel:    "info",
		TemplateDir: "./data/templates",
		StaticDir:   "./data/static",
		Watch:       false,
	}
}

// DefaultBuildConfig creates a build configuration with default values.
func DefaultBuildConfig() *BuildConfig {
	return &BuildConfig{
		OutDir:      "./public",
		Concurrency: 4,
		ProfilePage: "profile.tmpl.html",
		ArticlePage: "article.tmpl.html",
		CopyStatic:  true,
	}
}

// DefaultConfig returns a Config with every section at its defaults.
func DefaultConfig() *Config {
	return &Config{
		Server:  DefaultServerConfig(),
		Fixture: fixture.DefaultConfig(),
		Render:  render.DefaultConfig(),
		Build:   DefaultBuildConfig(),
	}
}

// LoadConfig reads the configuration from a JSON file at the given path.
// If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The defaults are still usable without the file.
				fmt.Fprintf(os.Stderr, "warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Sections missing from an older file fall back to their defaults.
	if config.Server == nil {
		config.Server = DefaultServerConfig()
	}
	if config.Fixture == nil {
		config.Fixture = fixture.DefaultConfig()
	}
	if config.Render == nil {
		config.Render = render.DefaultConfig()
	}
	if config.Build == nil {
		config.Build = DefaultBuildConfig()
	}
	return config, nil
}

// parseLogLevel maps a config string to a slog level, defaulting to info.
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: parseLogLevel(level)}))
}
