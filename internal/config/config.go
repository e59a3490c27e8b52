package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
// Precedence is defaults, then the optional YAML file, then environment variables.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Display   DisplayConfig   `yaml:"display"`
	CORS      CORSConfig      `yaml:"cors"`
	SampleAPI SampleAPIConfig `yaml:"sample_api"`
	LogLevel  string          `yaml:"log_level"`
}

type ServerConfig struct {
	Port            string `yaml:"port"`
	Host            string `yaml:"host"`
	ReadTimeout     int    `yaml:"read_timeout"`
	WriteTimeout    int    `yaml:"write_timeout"`
	ShutdownTimeout int    `yaml:"shutdown_timeout"`
}

// UpstreamConfig points at the menu REST API the display reads from.
type UpstreamConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"` // seconds
}

type DisplayConfig struct {
	Locale           string       `yaml:"locale"`
	CurrencySymbol   string       `yaml:"currency_symbol"`
	PlaceholderImage string       `yaml:"placeholder_image"`
	Title            string       `yaml:"title"`
	Labels           LabelsConfig `yaml:"labels"`
}

// LabelsConfig overrides individual page labels; empty fields keep the
// locale's defaults. YAML only.
type LabelsConfig struct {
	All         string `yaml:"all"`
	Home        string `yaml:"home"`
	MenuHeading string `yaml:"menu_heading"`
	Empty       string `yaml:"empty"`
	SoldOut     string `yaml:"sold_out"`
	Loading     string `yaml:"loading"`
	Error       string `yaml:"error"`
	Retry       string `yaml:"retry"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type SampleAPIConfig struct {
	Port string `yaml:"port"`
}

// Sources names optional files to read before the environment.
type Sources struct {
	EnvFile    string // defaults to .env in the working directory; missing default is ignored
	ConfigFile string // YAML, optional
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			Host:            "0.0.0.0",
			ReadTimeout:     15,
			WriteTimeout:    15,
			ShutdownTimeout: 30,
		},
		Upstream: UpstreamConfig{
			BaseURL: "http://localhost:8000/api/v1",
			Timeout: 10,
		},
		Display: DisplayConfig{
			Locale:           "ko-KR",
			CurrencySymbol:   "₩",
			PlaceholderImage: "/static/img/default-menu.svg",
			Title:            "Menu",
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		SampleAPI: SampleAPIConfig{
			Port: "8000",
		},
		LogLevel: "info",
	}
}

// Load reads configuration from .env and environment variables
func Load() (*Config, error) {
	return LoadFrom(Sources{})
}

// LoadFrom reads configuration from the given sources and the environment
func LoadFrom(src Sources) (*Config, error) {
	if err := loadEnvFile(src.EnvFile); err != nil {
		return nil, err
	}

	cfg := Default()

	if src.ConfigFile != "" {
		if err := cfg.mergeYAML(src.ConfigFile); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func loadEnvFile(path string) error {
	if path == "" {
		// the default .env is optional
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.Host = getEnv("HOST", c.Server.Host)
	c.Server.ReadTimeout = getEnvAsInt("READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvAsInt("WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.ShutdownTimeout = getEnvAsInt("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Upstream.BaseURL = getEnv("MENU_API_URL", c.Upstream.BaseURL)
	c.Upstream.Timeout = getEnvAsInt("MENU_API_TIMEOUT", c.Upstream.Timeout)

	c.Display.Locale = getEnv("DISPLAY_LOCALE", c.Display.Locale)
	c.Display.CurrencySymbol = getEnv("CURRENCY_SYMBOL", c.Display.CurrencySymbol)
	c.Display.PlaceholderImage = getEnv("PLACEHOLDER_IMAGE", c.Display.PlaceholderImage)
	c.Display.Title = getEnv("DISPLAY_TITLE", c.Display.Title)

	c.CORS.AllowedOrigins = getEnvAsSlice("CORS_ALLOWED_ORIGINS", c.CORS.AllowedOrigins)
	c.SampleAPI.Port = getEnv("SAMPLE_API_PORT", c.SampleAPI.Port)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	u, err := url.Parse(c.Upstream.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("MENU_API_URL must be an absolute http(s) URL, got %q", c.Upstream.BaseURL)
	}

	if c.Upstream.Timeout <= 0 {
		return fmt.Errorf("MENU_API_TIMEOUT must be positive")
	}

	if _, err := language.Parse(c.Display.Locale); err != nil {
		return fmt.Errorf("invalid display locale %q: %w", c.Display.Locale, err)
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Addr returns the listen address of the display server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
