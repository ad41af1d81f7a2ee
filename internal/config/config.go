package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/comitanigiacomo/kanso-coach/internal/core/analytics"
)

// DefaultConfigPaths are searched in order when CONFIG_PATH is not set.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/kanso-coach/config.yaml",
}

const ConfigPathEnvVar = "CONFIG_PATH"

type Config struct {
	Environment string         `koanf:"environment"`
	Server      ServerConfig   `koanf:"server"`
	Database    DatabaseConfig `koanf:"database"`
	Redis       RedisConfig    `koanf:"redis"`
	Auth        AuthConfig     `koanf:"auth"`
	Logging     LoggingConfig  `koanf:"logging"`
	RateLimit   RateLimit      `koanf:"rate_limit"`
	Dashboard   Dashboard      `koanf:"dashboard"`
}

type ServerConfig struct {
	Port string `koanf:"port"`
}

type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
}

// DSN builds the connection string for the pgx driver.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	Password string `koanf:"password"`
}

func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type AuthConfig struct {
	JWTSecret string        `koanf:"jwt_secret"`
	Issuer    string        `koanf:"issuer"`
	TokenTTL  time.Duration `koanf:"token_ttl"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type RateLimit struct {
	Limit  int           `koanf:"limit"`
	Window time.Duration `koanf:"window"`
}

type Dashboard struct {
	LookbackDays      int    `koanf:"lookback_days"`
	WeekStart         string `koanf:"week_start"`
	DefaultWeeklyGoal int    `koanf:"default_weekly_goal"`
	DefaultTimezone   string `koanf:"default_timezone"`
}

// WeekStartDay returns the parsed week start. Validate guarantees it parses.
func (d Dashboard) WeekStartDay() time.Weekday {
	day, err := analytics.ParseWeekday(d.WeekStart)
	if err != nil {
		return time.Sunday
	}
	return day
}

// Location returns the default timezone, falling back to UTC.
func (d Dashboard) Location() *time.Location {
	loc, err := time.LoadLocation(d.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func defaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: "8080",
		},
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "kanso_coach",
			SSLMode: "disable",
		},
		Redis: RedisConfig{
			Host: "localhost",
			Port: "6379",
		},
		Auth: AuthConfig{
			JWTSecret: "",
			Issuer:    "kanso-coach",
			TokenTTL:  24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		RateLimit: RateLimit{
			Limit:  100,
			Window: time.Minute,
		},
		Dashboard: Dashboard{
			LookbackDays:      365,
			WeekStart:         "sunday",
			DefaultWeeklyGoal: analytics.DefaultWeeklyGoal,
			DefaultTimezone:   "UTC",
		},
	}
}

// Load reads .env (if present), then layers defaults, an optional yaml file
// and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

var envMappings = map[string]string{
	"environment":         "environment",
	"port":                "server.port",
	"db_host":             "database.host",
	"db_port":             "database.port",
	"db_user":             "database.user",
	"db_password":         "database.password",
	"db_name":             "database.name",
	"db_sslmode":          "database.sslmode",
	"redis_host":          "redis.host",
	"redis_port":          "redis.port",
	"redis_password":      "redis.password",
	"jwt_secret":          "auth.jwt_secret",
	"jwt_issuer":          "auth.issuer",
	"jwt_ttl":             "auth.token_ttl",
	"log_level":           "logging.level",
	"log_format":          "logging.format",
	"rate_limit":          "rate_limit.limit",
	"rate_window":         "rate_limit.window",
	"lookback_days":       "dashboard.lookback_days",
	"week_start":          "dashboard.week_start",
	"default_weekly_goal": "dashboard.default_weekly_goal",
	"default_timezone":    "dashboard.default_timezone",
}

// envTransformFunc maps known env names to config keys. Anything else is
// ignored so unrelated process variables never leak into the config tree.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET is required in production")
		}
		c.Auth.JWTSecret = "dev-secret-change-me"
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	if c.Dashboard.LookbackDays <= 0 {
		return fmt.Errorf("LOOKBACK_DAYS must be positive, got %d", c.Dashboard.LookbackDays)
	}
	if _, err := analytics.ParseWeekday(c.Dashboard.WeekStart); err != nil {
		return fmt.Errorf("WEEK_START: %w", err)
	}
	if c.Dashboard.DefaultWeeklyGoal <= 0 {
		return fmt.Errorf("DEFAULT_WEEKLY_GOAL must be positive, got %d", c.Dashboard.DefaultWeeklyGoal)
	}
	if _, err := time.LoadLocation(c.Dashboard.DefaultTimezone); err != nil {
		return fmt.Errorf("DEFAULT_TIMEZONE: %w", err)
	}
	if c.RateLimit.Limit <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("RATE_LIMIT and RATE_WINDOW must be positive")
	}
	return nil
}
