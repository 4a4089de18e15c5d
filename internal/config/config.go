// Package config loads the TOML configuration file and applies defaults.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"clipforge/internal/ports/adapters/openrouter"
)

//go:embed sample_config.toml
var sampleConfig string

// Config is the full application configuration.
type Config struct {
	Workspace  Workspace  `toml:"workspace"`
	Tools      Tools      `toml:"tools"`
	Whisper    Whisper    `toml:"whisper"`
	OpenRouter OpenRouter `toml:"openrouter"`
	Assembly   Assembly   `toml:"assembly"`
	Logging    Logging    `toml:"logging"`
}

// Workspace holds the pipeline's directory root. Every stage reads and
// writes flat files below it; there is no other persistence.
type Workspace struct {
	Root string `toml:"root"`
}

// Tools names the external binaries the pipeline shells out to.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Whisper configures the local speech-to-text binary.
type Whisper struct {
	Binary   string `toml:"binary"`
	Model    string `toml:"model"`
	Language string `toml:"language"`
}

// OpenRouter configures the text-generation service. The API key comes from
// the environment, never from the config file.
type OpenRouter struct {
	Model        string   `toml:"model"`
	BaseURL      string   `toml:"base_url"`
	AllowedHosts []string `toml:"allowed_hosts"`
}

// Assembly holds optional assembly inputs.
type Assembly struct {
	IntroPath string `toml:"intro_path"`
}

type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Workspace: Workspace{Root: "workspace"},
		Tools:     Tools{FFmpeg: "ffmpeg", FFprobe: "ffprobe"},
		Whisper: Whisper{
			Binary:   ".cache/bin/whisper.cpp",
			Model:    ".cache/models/ggml-base.bin",
			Language: "en",
		},
		OpenRouter: OpenRouter{
			Model:   "anthropic/claude-3.5-sonnet",
			BaseURL: "https://openrouter.ai",
		},
		Logging: Logging{Level: "info", Format: "console"},
	}
}

// Load reads the config file at path, falling back to defaults when the file
// does not exist. Unset fields are filled from defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	d := Default()
	if c.Workspace.Root == "" {
		c.Workspace.Root = d.Workspace.Root
	}
	if c.Tools.FFmpeg == "" {
		c.Tools.FFmpeg = d.Tools.FFmpeg
	}
	if c.Tools.FFprobe == "" {
		c.Tools.FFprobe = d.Tools.FFprobe
	}
	if c.Whisper.Binary == "" {
		c.Whisper.Binary = d.Whisper.Binary
	}
	if c.Whisper.Model == "" {
		c.Whisper.Model = d.Whisper.Model
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = d.Whisper.Language
	}
	if c.OpenRouter.Model == "" {
		c.OpenRouter.Model = d.OpenRouter.Model
	}
	if c.OpenRouter.BaseURL == "" {
		c.OpenRouter.BaseURL = d.OpenRouter.BaseURL
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = d.Logging.Format
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Workspace.Root == "" {
		return errors.New("workspace.root is required")
	}
	if c.Whisper.Binary == "" {
		return errors.New("whisper.binary is required")
	}
	if c.Whisper.Model == "" {
		return errors.New("whisper.model is required")
	}
	if c.Assembly.IntroPath != "" {
		if _, err := os.Stat(c.Assembly.IntroPath); err != nil {
			return fmt.Errorf("assembly.intro_path: %w", err)
		}
	}
	return openrouter.ValidateBaseURL(c.OpenRouter.BaseURL, c.OpenRouter.AllowedHosts)
}

// WriteSample writes the annotated sample config, refusing to clobber an
// existing file.
func WriteSample(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config already exists: %s", path)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}
