// Package config loads the application configuration from defaults,
// an optional JSON config file, environment variables and CLI flags.
// Priority from lowest to highest: defaults, JSON file, environment, flags.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	env "github.com/caarlos0/env/v6"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings of the service.
type Config struct {
	// RunAddr is the address and port the HTTP server listens on.
	RunAddr string `env:"SERVER_ADDRESS" json:"server_address" validate:"hostname_port"`

	// BaseURL is the externally visible base address of the service.
	BaseURL string `env:"BASE_URL" json:"base_url" validate:"url"`

	// LogLevel controls the global zap logger level.
	LogLevel string `env:"LOG_LEVEL" json:"log_level" validate:"loglevel"`

	// DBFileName, when non-empty, selects the file-backed JSON storage.
	DBFileName string `env:"FILE_STORAGE_PATH" json:"file_storage_path" validate:"filepath"`

	// DatabaseDSN, when non-empty, selects the PostgreSQL storage.
	DatabaseDSN string `env:"DATABASE_DSN" json:"database_dsn"`

	// DBConnectionTimeout bounds storage health checks.
	DBConnectionTimeout time.Duration `env:"DB_CONNECTION_TIMEOUT" json:"-"`

	// MigrationsDir is the goose migrations directory for PostgreSQL.
	MigrationsDir string `env:"MIGRATIONS_DIR" json:"migrations_dir"`

	// AuthCookieName is the name of the session cookie.
	AuthCookieName string `env:"AUTH_COOKIE_NAME" json:"auth_cookie_name"`

	// AuthCookieSigningSecretKey is the base64-encoded key used to sign
	// session tokens.
	AuthCookieSigningSecretKey string `env:"AUTH_COOKIE_SIGNING_SECRET_KEY" json:"auth_cookie_signing_secret_key"`

	// SessionTTL is the validity window of an issued session token.
	SessionTTL time.Duration `env:"SESSION_TTL" json:"-"`
}

var defaultConfig = Config{
	RunAddr:             ":8080",
	BaseURL:             "http://localhost:8080",
	LogLevel:            "info",
	DBFileName:          "",
	DatabaseDSN:         "",
	DBConnectionTimeout: 10 * time.Second,
	MigrationsDir:       "cmd/notekeeper/migrations",
	AuthCookieName:      "notekeeper_auth",
	// "please-rotate-me" — a development fallback, expected to be
	// overridden in any real deployment.
	AuthCookieSigningSecretKey: "cGxlYXNlLXJvdGF0ZS1tZQ==",
	SessionTTL:                 24 * time.Hour,
}

func validateFilePath(fieldLevel validator.FieldLevel) bool {
	path := fieldLevel.Field().String()
	if path == "" {
		return true
	}
	_, err := os.Stat(path)

	return err == nil || os.IsNotExist(err)
}

func validateLogLevel(fieldLevel validator.FieldLevel) bool {
	value := fieldLevel.Field().String()

	allowedLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
		"fatal": true,
	}

	return allowedLogLevels[value]
}

func (c *Config) validate() error {
	validate := validator.New()

	err := validate.RegisterValidation("loglevel", validateLogLevel)
	if err != nil {
		return err
	}

	err = validate.RegisterValidation("filepath", validateFilePath)
	if err != nil {
		return err
	}

	return validate.Struct(c)
}

func applyDefaults(values *Config, defaults Config) {
	*values = defaults
}

func (c *Config) overlay(other *Config) {
	if other.RunAddr != "" {
		c.RunAddr = other.RunAddr
	}
	if other.BaseURL != "" {
		c.BaseURL = other.BaseURL
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.DBFileName != "" {
		c.DBFileName = other.DBFileName
	}
	if other.DatabaseDSN != "" {
		c.DatabaseDSN = other.DatabaseDSN
	}
	if other.DBConnectionTimeout != 0 {
		c.DBConnectionTimeout = other.DBConnectionTimeout
	}
	if other.MigrationsDir != "" {
		c.MigrationsDir = other.MigrationsDir
	}
	if other.AuthCookieName != "" {
		c.AuthCookieName = other.AuthCookieName
	}
	if other.AuthCookieSigningSecretKey != "" {
		c.AuthCookieSigningSecretKey = other.AuthCookieSigningSecretKey
	}
	if other.SessionTTL != 0 {
		c.SessionTTL = other.SessionTTL
	}
}

func readJSONConfig(path string, values *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fromFile := Config{}
	if err := json.Unmarshal(data, &fromFile); err != nil {
		return err
	}

	values.overlay(&fromFile)

	return nil
}

// InitOption is a functional option for New.
type InitOption func(*initOptions)

type initOptions struct {
	disableFlagsParsing bool
}

// WithDisableFlagsParsing disables CLI flag parsing, which is useful in
// tests where os.Args is owned by the test binary.
func WithDisableFlagsParsing(disableFlagsParsing bool) InitOption {
	return func(options *initOptions) {
		options.disableFlagsParsing = disableFlagsParsing
	}
}

// New assembles the configuration from all sources and validates it.
func New(optionsProto ...InitOption) (*Config, error) {
	options := &initOptions{}
	for _, protoOption := range optionsProto {
		protoOption(options)
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("Unable to load .env file: %v", err)
	}

	values := &Config{}
	applyDefaults(values, defaultConfig)

	fromFlags := Config{}
	configPath := ""
	if !options.disableFlagsParsing {
		flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
		flags.StringVar(&fromFlags.RunAddr, "a", "", "address and port to run server")
		flags.StringVar(&fromFlags.BaseURL, "b", "", "base address of the service")
		flags.StringVar(&fromFlags.LogLevel, "l", "", "logger level")
		flags.StringVar(&fromFlags.DBFileName, "f", "", "JSON file name with database")
		flags.StringVar(&fromFlags.DatabaseDSN, "d", "", "a string with the database connection details")
		flags.StringVar(&fromFlags.MigrationsDir, "m", "", "goose migrations directory")
		flags.StringVar(&configPath, "c", "", "path to a JSON config file")
		if err := flags.Parse(os.Args[1:]); err != nil {
			return nil, err
		}
	}

	if configPath == "" {
		configPath = os.Getenv("CONFIG")
	}
	if configPath != "" {
		if err := readJSONConfig(configPath, values); err != nil {
			return nil, err
		}
	}

	fromEnv := Config{}
	if err := env.Parse(&fromEnv); err != nil {
		return nil, err
	}
	values.overlay(&fromEnv)

	values.overlay(&fromFlags)

	if err := values.validate(); err != nil {
		return nil, err
	}

	return values, nil
}
