// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/aanand-mishra/alumni-api/internal/sorting"
	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
)

// Source drivers understood by main.
const (
	DriverCSV    = "csv"
	DriverSQLite = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" means the app refuses to start if that value is
// missing. validate:"..." rules are checked after loading.
type Config struct {
	// Env controls log format and verbosity.
	Env string `yaml:"env" env:"ENV" env-required:"true" validate:"oneof=dev staging prod"`

	// DefaultSort is the sort key of GET /alumni when the request has no
	// ?sort= parameter. Load checks it with sorting.ParseSelector.
	DefaultSort string `yaml:"default_sort" env:"DEFAULT_SORT" env-default:"field"`

	Source     Source `yaml:"source"`
	HTTPServer `yaml:"http_server"`
	CORS       CORS `yaml:"cors"`
}

// Source describes where alumni records are read from.
type Source struct {
	// Driver selects the backend: "csv" for the delimited text file,
	// "sqlite" for a database file with an alumni table.
	Driver string `yaml:"driver" env:"SOURCE_DRIVER" env-default:"csv" validate:"oneof=csv sqlite"`

	// Path is the filesystem path of the source. It is not checked at
	// startup: a missing file just means an empty list.
	Path string `yaml:"path" env:"SOURCE_PATH" env-required:"true"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	Addr         string        `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_SERVER_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_SERVER_IDLE_TIMEOUT" env-default:"60s"`
}

// CORS lists the browser origins allowed to call the API.
type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

// Load reads, validates, and returns the config stored at path.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config.Load: config file does not exist: %s", path)
	}

	// cleanenv.ReadConfig reads the YAML file and populates the struct.
	// It also reads any env:"..." tagged fields from the environment,
	// applies env-default values and enforces env-required.
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: read config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: validate config: %w", err)
	}

	if _, err := sorting.ParseSelector(cfg.DefaultSort); err != nil {
		return nil, fmt.Errorf("config.Load: default_sort: %w", err)
	}

	return &cfg, nil
}

// MustLoad finds the config path, loads it, and exits the process on any
// failure. If it returns, the config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err.Error())
	}

	return cfg
}
