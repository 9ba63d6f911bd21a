// Package config provides centralized configuration management for the ETL run.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"
)

// Config holds all pipeline configuration.
// All settings can be configured via environment variables.
type Config struct {
	Database DatabaseConfig
	Pipeline PipelineConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	// URL is a full connection string. When set it takes precedence over the
	// discrete host/user/password settings below.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// Host is the database host (default: localhost)
	Host string `env:"DB_HOST" default:"localhost"`

	// Port is the database port (default: 5432)
	Port int `env:"DB_PORT" default:"5432"`

	// User is the database user (default: postgres)
	User string `env:"DB_USER" default:"postgres"`

	// Password is the database password (required unless DATABASE_URL is set)
	Password string `env:"DB_PASSWORD"`

	// Name is the database name (default: fleximart)
	Name string `env:"DB_NAME" default:"fleximart"`

	// MaxConns is the maximum number of pooled connections (default: 4)
	MaxConns int `env:"DB_MAX_CONNS" default:"4"`

	// ConnectTimeout is the maximum duration to establish a connection (default: 10s)
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" default:"10s"`
}

// PipelineConfig holds input/output locations and run limits.
type PipelineConfig struct {
	// DataDir is the directory containing the raw CSV exports (default: data)
	DataDir string `env:"ETL_DATA_DIR" default:"data"`

	// CustomersFile is the customers export filename (default: customers_raw.csv)
	CustomersFile string `env:"ETL_CUSTOMERS_FILE" default:"customers_raw.csv"`

	// ProductsFile is the products export filename (default: products_raw.csv)
	ProductsFile string `env:"ETL_PRODUCTS_FILE" default:"products_raw.csv"`

	// SalesFile is the sales export filename (default: sales_raw.csv)
	SalesFile string `env:"ETL_SALES_FILE" default:"sales_raw.csv"`

	// ReportPath is where the data quality report is written (default: data_quality_report.txt)
	ReportPath string `env:"ETL_REPORT_PATH" default:"data_quality_report.txt"`

	// RunTimeout bounds the whole run including the load phase (default: 10m)
	RunTimeout time.Duration `env:"ETL_RUN_TIMEOUT" default:"10m"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// DSN returns the connection string for the storage layer.
// DATABASE_URL wins when set; otherwise one is assembled from the parts.
func (c *DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	return u.String()
}

// CustomersPath returns the full path to the customers export.
func (c *PipelineConfig) CustomersPath() string { return c.DataDir + "/" + c.CustomersFile }

// ProductsPath returns the full path to the products export.
func (c *PipelineConfig) ProductsPath() string { return c.DataDir + "/" + c.ProductsFile }

// SalesPath returns the full path to the sales export.
func (c *PipelineConfig) SalesPath() string { return c.DataDir + "/" + c.SalesFile }

// String returns a safe string representation of the config for logging.
// Credentials are masked.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Database: {Host: %q, Port: %d, Name: %q, User: %q, Password: [MASKED], MaxConns: %d}, "+
			"Pipeline: {DataDir: %q, ReportPath: %q}, Logging: {Level: %q, Format: %q}}",
		c.Database.Host, c.Database.Port, c.Database.Name, c.Database.User, c.Database.MaxConns,
		c.Pipeline.DataDir, c.Pipeline.ReportPath, c.Logging.Level, c.Logging.Format,
	)
}
