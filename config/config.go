package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	App    AppConfig
	DB     DBConfig
	Redis  RedisConfig
	Mail   MailConfig
	Notify NotifyConfig
	MQ     MQConfig
}

type AppConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

// IsDevelopment reports whether internal error detail may be exposed to clients.
func (c AppConfig) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

type DBConfig struct {
	Driver     string
	DSN        string
	Host       string
	Port       string
	User       string
	Password   string
	Name       string
	SQLitePath string
}

// Address returns the database location without credentials, for startup logs.
func (c DBConfig) Address() string {
	if c.Driver == DriverSQLite {
		return c.SQLitePath
	}
	if c.DSN != "" {
		if i := strings.LastIndex(c.DSN, "@"); i >= 0 {
			return c.DSN[i+1:]
		}
		return "(dsn)"
	}
	return fmt.Sprintf("%s:%s/%s", c.Host, c.Port, c.Name)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled is false when no Redis host is configured; the booking cache is then skipped.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type MailConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	OwnerEmail string
}

// Enabled reports whether SMTP credentials are present.
func (c MailConfig) Enabled() bool {
	return c.User != "" && c.Password != ""
}

type NotifyConfig struct {
	Timeout  time.Duration
	Timezone string
}

type MQConfig struct {
	URL      string
	Exchange string
}

func (c MQConfig) Enabled() bool {
	return c.URL != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "5000")
	v.SetDefault("APP_ENV", EnvProduction)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "borewell")
	v.SetDefault("DB_SQLITE_PATH", "borewell.db")

	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "10m")

	v.SetDefault("SMTP_HOST", "smtp.gmail.com")
	v.SetDefault("SMTP_PORT", 587)

	v.SetDefault("NOTIFY_TIMEOUT", "15s")
	v.SetDefault("NOTIFY_TIMEZONE", "Asia/Kolkata")

	v.SetDefault("MQ_EXCHANGE", "borewell.events")
}

// LoadConfig reads .env when present, then lets the process environment override it.
func LoadConfig() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if _, err := os.Stat(envFile); err == nil {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	cacheTTL, err := time.ParseDuration(v.GetString("CACHE_TTL"))
	if err != nil {
		cacheTTL = 10 * time.Minute
	}

	notifyTimeout, err := time.ParseDuration(v.GetString("NOTIFY_TIMEOUT"))
	if err != nil || notifyTimeout <= 0 {
		notifyTimeout = 15 * time.Second
	}

	cfg := &Config{
		App: AppConfig{
			Port:           v.GetString("APP_PORT"),
			Env:            strings.ToLower(v.GetString("APP_ENV")),
			LogLevel:       v.GetString("LOG_LEVEL"),
			AllowedOrigins: splitCSV(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			Driver:     strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:        v.GetString("DB_DSN"),
			Host:       v.GetString("DB_HOST"),
			Port:       v.GetString("DB_PORT"),
			User:       v.GetString("DB_USER"),
			Password:   v.GetString("DB_PASSWORD"),
			Name:       v.GetString("DB_NAME"),
			SQLitePath: v.GetString("DB_SQLITE_PATH"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      cacheTTL,
		},
		Mail: MailConfig{
			Host:       v.GetString("SMTP_HOST"),
			Port:       v.GetInt("SMTP_PORT"),
			User:       v.GetString("EMAIL_USER"),
			Password:   v.GetString("EMAIL_PASS"),
			OwnerEmail: v.GetString("OWNER_EMAIL"),
		},
		Notify: NotifyConfig{
			Timeout:  notifyTimeout,
			Timezone: v.GetString("NOTIFY_TIMEZONE"),
		},
		MQ: MQConfig{
			URL:      v.GetString("RABBITMQ_URL"),
			Exchange: v.GetString("MQ_EXCHANGE"),
		},
	}

	switch cfg.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}

	return cfg, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
