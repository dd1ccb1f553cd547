package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultServerURL = "http://localhost:3000"

type Config struct {
	ServerURL string `yaml:"server_url" validate:"required,http_url"`
	ExportDir string `yaml:"export_dir"`
	LogFile   string `yaml:"log_file"`
	Debug     bool   `yaml:"debug"`
}

// Options says where Load looks. ConfigPath must exist when set; DefaultPath
// is skipped when missing. ServerURL, when set, overrides every other source.
type Options struct {
	ConfigPath  string
	DefaultPath string
	EnvFile     string
	ServerURL   string
}

// Load builds a Config from defaults, then a YAML file, then a .env file,
// then ABOOK_* environment variables, then opts.ServerURL, and validates it.
func Load(opts Options) (*Config, error) {
	config := GetDefaultConfig()

	path := opts.ConfigPath
	if path == "" {
		path = os.Getenv("ABOOK_CONFIG")
	}

	switch {
	case path != "":
		if err := config.loadFile(path); err != nil {
			return nil, err
		}
	case opts.DefaultPath != "":
		if err := config.loadFile(opts.DefaultPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	config.ServerURL = getEnvOrDefault("ABOOK_SERVER_URL", config.ServerURL)
	config.ExportDir = getEnvOrDefault("ABOOK_EXPORT_DIR", config.ExportDir)
	config.LogFile = getEnvOrDefault("ABOOK_LOG_FILE", config.LogFile)
	config.Debug = parseBoolOrDefault("ABOOK_DEBUG", config.Debug)

	if opts.ServerURL != "" {
		config.ServerURL = opts.ServerURL
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

func (c *Config) Validate() error {
	c.ServerURL = strings.TrimRight(strings.TrimSpace(c.ServerURL), "/")

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				if fe.Field() == "ServerURL" {
					return fmt.Errorf("invalid server URL %q (must be an http or https URL)", c.ServerURL)
				}
			}
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	return nil
}

func GetDefaultConfig() *Config {
	return &Config{
		ServerURL: DefaultServerURL,
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
