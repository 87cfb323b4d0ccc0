// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration. Values come from
// built-in defaults, an optional YAML file, a .env file and the process
// environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/url"
	"os"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Environments.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTesting     = "testing"
)

// envSections maps environment variable prefixes to config sections.
// POSTGRES_PASSWORD becomes postgres.password, BLOG_ADMIN_TOKEN becomes
// blog.admin_token.
var envSections = map[string]string{
	"APP_":      "app",
	"POSTGRES_": "postgres",
	"VALKEY_":   "valkey",
	"BLOG_":     "blog",
}

var numericPort = regexp.MustCompile(`^[0-9]{1,5}$`)

// Config holds all application configuration values.
type Config struct {
	App      AppConfig      `koanf:"app"`
	Postgres PostgresConfig `koanf:"postgres"`
	Valkey   ValkeyConfig   `koanf:"valkey"`
	Blog     BlogConfig     `koanf:"blog"`
}

// AppConfig holds server and logging settings.
type AppConfig struct {
	Host      string `koanf:"host"`
	Port      string `koanf:"port"`
	Env       string `koanf:"env"` // "development", "production", "testing"
	LogFormat string `koanf:"log_format"`
	LogLevel  string `koanf:"log_level"`
}

// PostgresConfig holds the PostgreSQL connection.
type PostgresConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	DB       string `koanf:"db"`
}

// ValkeyConfig holds the Valkey (Redis-compatible) page cache connection.
type ValkeyConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// BlogConfig holds blog behaviour.
type BlogConfig struct {
	// Name is the site name used until the site_name setting is set.
	Name string `koanf:"name"`
	// AdminToken guards /api/admin. Empty disables the check outside
	// production.
	AdminToken  string        `koanf:"admin_token"`
	CORSOrigins []string      `koanf:"cors_origins"`
	CacheTTL    time.Duration `koanf:"cache_ttl"`
	// SearchRateLimit is the number of searches per client per minute.
	// Zero disables the limit.
	SearchRateLimit int  `koanf:"search_rate_limit"`
	SecureCookies   bool `koanf:"secure_cookies"`
}

// Default returns the development defaults.
func Default() *Config {
	return &Config{
		App: AppConfig{
			Host:      "0.0.0.0",
			Port:      "8080",
			Env:       EnvDevelopment,
			LogFormat: "text",
			LogLevel:  "info",
		},
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "inkblog",
			Password: "changeme",
			DB:       "inkblog",
		},
		Valkey: ValkeyConfig{
			Host: "localhost",
			Port: "6379",
		},
		Blog: BlogConfig{
			Name:            "Inkblog",
			CacheTTL:        5 * time.Minute,
			SearchRateLimit: 60,
		},
	}
}

// Load reads the configuration. path names an optional YAML file; an empty
// path or a missing file is skipped. A .env file in the working directory
// is loaded into the environment first, without overriding variables that
// are already set.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("access config %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps a known environment variable to its config key. Unknown and
// empty variables are skipped so they never clear a default.
func envKey(name, value string) (string, any) {
	if value == "" {
		return "", nil
	}
	for prefix, section := range envSections {
		if rest, ok := strings.CutPrefix(name, prefix); ok && rest != "" {
			return section + "." + strings.ToLower(rest), value
		}
	}
	return "", nil
}

// Validate checks ranges and enums, and refuses development secrets in
// production.
func (c *Config) Validate() error {
	err := validation.Errors{
		"app": validation.ValidateStruct(&c.App,
			validation.Field(&c.App.Port, validation.Required, validation.Match(numericPort), validation.By(portRange)),
			validation.Field(&c.App.Env, validation.Required, validation.In(EnvDevelopment, EnvProduction, EnvTesting)),
			validation.Field(&c.App.LogFormat, validation.In("text", "json")),
			validation.Field(&c.App.LogLevel, validation.In("debug", "info", "warn", "error")),
		),
		"postgres": validation.ValidateStruct(&c.Postgres,
			validation.Field(&c.Postgres.Host, validation.Required),
			validation.Field(&c.Postgres.Port, validation.Required, validation.Match(numericPort), validation.By(portRange)),
			validation.Field(&c.Postgres.User, validation.Required),
			validation.Field(&c.Postgres.DB, validation.Required),
		),
		"valkey": validation.ValidateStruct(&c.Valkey,
			validation.Field(&c.Valkey.Port, validation.Match(numericPort), validation.By(portRange)),
			validation.Field(&c.Valkey.DB, validation.Min(0), validation.Max(15)),
		),
		"blog": validation.ValidateStruct(&c.Blog,
			validation.Field(&c.Blog.Name, validation.Required),
			validation.Field(&c.Blog.CacheTTL, validation.Min(time.Duration(0))),
			validation.Field(&c.Blog.SearchRateLimit, validation.Min(0)),
		),
	}.Filter()
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.App.Env == EnvProduction {
		if c.Postgres.Password == "changeme" {
			return fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
		if c.Blog.AdminToken == "" {
			return fmt.Errorf("BLOG_ADMIN_TOKEN must be set in production")
		}
	}
	return nil
}

func portRange(v any) error {
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	var n int
	if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n < 1 || n > 65535 {
		return errors.New("must be between 1 and 65535")
	}
	return nil
}

// DSN returns the PostgreSQL connection string. Credentials are escaped.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Postgres.User, c.Postgres.Password),
		Host:     net.JoinHostPort(c.Postgres.Host, c.Postgres.Port),
		Path:     "/" + c.Postgres.DB,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return net.JoinHostPort(c.App.Host, c.App.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.App.Env == EnvDevelopment
}
