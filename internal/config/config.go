package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/pders01/sift/internal/validation"
)

const EnvPrefix = "SIFT"

type Config struct {
	API     APIConfig     `mapstructure:"api" toml:"api"`
	History HistoryConfig `mapstructure:"history" toml:"history"`
	UI      UIConfig      `mapstructure:"ui" toml:"ui"`
	Browser BrowserConfig `mapstructure:"browser" toml:"browser"`
	Log     LogConfig     `mapstructure:"log" toml:"log"`
}

type APIConfig struct {
	BaseURL        string        `mapstructure:"base_url" toml:"base_url"`
	Timeout        time.Duration `mapstructure:"timeout" toml:"timeout"`
	UserAgent      string        `mapstructure:"user_agent" toml:"user_agent"`
	SearchPageSize int           `mapstructure:"search_page_size" toml:"search_page_size"`
	ChunkPageSize  int           `mapstructure:"chunk_page_size" toml:"chunk_page_size"`
}

type HistoryConfig struct {
	Enabled    bool   `mapstructure:"enabled" toml:"enabled"`
	Path       string `mapstructure:"path" toml:"path"`
	MaxEntries int    `mapstructure:"max_entries" toml:"max_entries"`
}

type UIConfig struct {
	Colors      UIColors `mapstructure:"colors" toml:"colors"`
	NarrowWidth int      `mapstructure:"narrow_width" toml:"narrow_width"`
	DateFormat  string   `mapstructure:"date_format" toml:"date_format"`
}

type UIColors struct {
	Primary   string `mapstructure:"primary" toml:"primary"`
	Secondary string `mapstructure:"secondary" toml:"secondary"`
	Accent    string `mapstructure:"accent" toml:"accent"`
	Text      string `mapstructure:"text" toml:"text"`
	Muted     string `mapstructure:"muted" toml:"muted"`
	Error     string `mapstructure:"error" toml:"error"`
}

type BrowserConfig struct {
	Opener string `mapstructure:"opener" toml:"opener"`
}

type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"`
	Path  string `mapstructure:"path" toml:"path"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()

	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000",
			Timeout:        0,
			UserAgent:      "sift/1.0 (https://github.com/pders01/sift)",
			SearchPageSize: 10,
			ChunkPageSize:  100,
		},
		History: HistoryConfig{
			Enabled:    true,
			Path:       filepath.Join(homeDir, ".sift", "history.db"),
			MaxEntries: 200,
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:   "#FF6B6B",
				Secondary: "#4ECDC4",
				Accent:    "#95E1D3",
				Text:      "#EAEAEA",
				Muted:     "#94A3B8",
				Error:     "#F87171",
			},
			NarrowWidth: 100,
			DateFormat:  "Jan 2, 2006",
		},
		Browser: BrowserConfig{
			Opener: getDefaultOpener(),
		},
		Log: LogConfig{
			Level: "off",
			Path:  filepath.Join(homeDir, ".sift", "sift.log"),
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "start"
	default:
		return "open"
	}
}

// Default returns the built-in configuration without reading any file.
func Default() *Config {
	return defaultConfig()
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("api.user_agent", cfg.API.UserAgent)
	v.SetDefault("api.search_page_size", cfg.API.SearchPageSize)
	v.SetDefault("api.chunk_page_size", cfg.API.ChunkPageSize)

	v.SetDefault("history.enabled", cfg.History.Enabled)
	v.SetDefault("history.path", cfg.History.Path)
	v.SetDefault("history.max_entries", cfg.History.MaxEntries)

	v.SetDefault("ui.colors.primary", cfg.UI.Colors.Primary)
	v.SetDefault("ui.colors.secondary", cfg.UI.Colors.Secondary)
	v.SetDefault("ui.colors.accent", cfg.UI.Colors.Accent)
	v.SetDefault("ui.colors.text", cfg.UI.Colors.Text)
	v.SetDefault("ui.colors.muted", cfg.UI.Colors.Muted)
	v.SetDefault("ui.colors.error", cfg.UI.Colors.Error)
	v.SetDefault("ui.narrow_width", cfg.UI.NarrowWidth)
	v.SetDefault("ui.date_format", cfg.UI.DateFormat)

	v.SetDefault("browser.opener", cfg.Browser.Opener)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.path", cfg.Log.Path)
}

func Load(configPath string) (*Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "sift")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.API.BaseURL, _ = validation.NewAPIURLValidator().ValidateAndNormalize(config.API.BaseURL)
	return &config, nil
}

// Validate rejects settings the client and stores cannot run with.
func (c *Config) Validate() error {
	if _, err := validation.NewAPIURLValidator().ValidateAndNormalize(c.API.BaseURL); err != nil {
		return fmt.Errorf("api.base_url %q: %w", c.API.BaseURL, err)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	if c.API.SearchPageSize < 1 {
		return fmt.Errorf("api.search_page_size must be >= 1, got %d", c.API.SearchPageSize)
	}
	if c.API.ChunkPageSize < 1 {
		return fmt.Errorf("api.chunk_page_size must be >= 1, got %d", c.API.ChunkPageSize)
	}
	if c.History.MaxEntries < 0 {
		return fmt.Errorf("history.max_entries must not be negative")
	}
	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.History.Path = expandPath(cfg.History.Path)
	cfg.Log.Path = expandPath(cfg.Log.Path)
}

// fileView flattens durations to strings so the written TOML stays readable.
func fileView(config *Config) map[string]any {
	return map[string]any{
		"api": map[string]any{
			"base_url":         config.API.BaseURL,
			"timeout":          config.API.Timeout.String(),
			"user_agent":       config.API.UserAgent,
			"search_page_size": config.API.SearchPageSize,
			"chunk_page_size":  config.API.ChunkPageSize,
		},
		"history": config.History,
		"ui":      config.UI,
		"browser": config.Browser,
		"log":     config.Log,
	}
}

func Save(config *Config, path string) error {
	v := viper.New()
	for key, section := range fileView(config) {
		v.Set(key, section)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

// Render returns the effective configuration as TOML.
func Render(config *Config) ([]byte, error) {
	out, err := toml.Marshal(fileView(config))
	if err != nil {
		return nil, fmt.Errorf("rendering config: %w", err)
	}
	return out, nil
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}

// DefaultPath is where Load looks for a config file when none is given.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sift", "config.toml")
}
