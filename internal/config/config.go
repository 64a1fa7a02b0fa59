package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port             string   `yaml:"port" env:"SERVER_PORT"`
		Mode             string   `yaml:"mode" env:"SERVER_MODE"`
		StoragePath      string   `yaml:"storage_path" env:"SERVER_STORAGE_PATH"`
		PublicBaseURL    string   `yaml:"public_base_url" env:"SERVER_PUBLIC_BASE_URL"`
		CORSAllowOrigins []string `yaml:"cors_allow_origins" env:"SERVER_CORS_ALLOW_ORIGINS"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		QueryTimeout    string `yaml:"query_timeout" env:"DB_QUERY_TIMEOUT"`
	} `yaml:"database"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`

	Report struct {
		Title  string `yaml:"title" env:"REPORT_TITLE"`
		Subdir string `yaml:"subdir" env:"REPORT_SUBDIR"`
	} `yaml:"report"`

	WhatsApp struct {
		Enabled     bool   `yaml:"enabled" env:"WHATSAPP_ENABLED"`
		AccountSID  string `yaml:"account_sid" env:"TWILIO_ACCOUNT_SID"`
		AuthToken   string `yaml:"auth_token" env:"TWILIO_AUTH_TOKEN"`
		FromNumber  string `yaml:"from_number" env:"TWILIO_WHATSAPP_FROM"`
		CountryCode string `yaml:"country_code" env:"WHATSAPP_COUNTRY_CODE"`
	} `yaml:"whatsapp"`

	SMTP struct {
		Enabled   bool   `yaml:"enabled" env:"SMTP_ENABLED"`
		Host      string `yaml:"host" env:"SMTP_HOST"`
		Port      int    `yaml:"port" env:"SMTP_PORT"`
		Username  string `yaml:"username" env:"SMTP_USERNAME"`
		Password  string `yaml:"password" env:"SMTP_PASSWORD"`
		FromName  string `yaml:"from_name" env:"SMTP_FROM_NAME"`
		FromEmail string `yaml:"from_email" env:"SMTP_FROM_EMAIL"`
		UseTLS    bool   `yaml:"use_tls" env:"SMTP_USE_TLS"`
	} `yaml:"smtp"`

	Seed struct {
		Enabled bool `yaml:"enabled" env:"SEED_ENABLED"`
	} `yaml:"seed"`
}

// LoadConfig loads configuration from a file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	// A missing file is fine, defaults and environment still apply
	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	// Server defaults
	config.Server.Port = "8080"
	config.Server.Mode = "development"
	config.Server.StoragePath = "static"
	config.Server.PublicBaseURL = "http://localhost:8080"
	config.Server.CORSAllowOrigins = []string{"*"}

	// Database defaults
	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "college_predictor"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 10
	config.Database.ConnMaxLifetime = "1h"
	config.Database.QueryTimeout = "5s"

	// Logging defaults
	config.Logging.Level = "info"
	config.Logging.Format = "json"

	config.Report.Title = "College Predictor Report"
	config.Report.Subdir = "reports"

	config.WhatsApp.CountryCode = "+91"
	config.SMTP.Port = 587
	config.SMTP.FromName = "College Predictor"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Database.DBName == "" {
		return fmt.Errorf("database name is required")
	}

	if _, err := strconv.Atoi(config.Database.Port); err != nil {
		return fmt.Errorf("database port must be numeric: %w", err)
	}

	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return fmt.Errorf("server port must be numeric: %w", err)
	}

	if _, err := time.ParseDuration(config.Database.ConnMaxLifetime); err != nil {
		return fmt.Errorf("invalid connection max lifetime format: %w", err)
	}

	if _, err := time.ParseDuration(config.Database.QueryTimeout); err != nil {
		return fmt.Errorf("invalid query timeout format: %w", err)
	}

	if config.WhatsApp.Enabled {
		if config.WhatsApp.AccountSID == "" || config.WhatsApp.AuthToken == "" || config.WhatsApp.FromNumber == "" {
			return fmt.Errorf("whatsapp delivery requires account_sid, auth_token and from_number")
		}
	}

	if config.SMTP.Enabled && config.SMTP.Host == "" {
		return fmt.Errorf("smtp delivery requires a host")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
		sslMode,
	)
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Server.Mode) == "production"
}
