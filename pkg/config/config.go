package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config groups the application settings, read from the environment and an optional .env file.
type Config struct {
	App      AppConfig
	DB       DBConfig
	Session  SessionConfig
	RabbitMQ RabbitMQConfig
}

// AppConfig holds general settings.
type AppConfig struct {
	Env      string // development, production
	Port     string
	LogLevel string
}

// DBConfig holds the relational database settings.
// When DSN is set it is used as is.
type DBConfig struct {
	Driver   string // mysql, postgres or sqlite
	DSN      string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	Timeout  time.Duration
}

// SessionConfig holds the session cookie settings.
type SessionConfig struct {
	Secure bool
}

// RabbitMQConfig holds the broker settings. An empty URL disables publishing.
type RabbitMQConfig struct {
	URL string
}

// ConnectionString returns the DSN for the configured driver.
func (c DBConfig) ConnectionString() string {
	if c.DSN != "" {
		return c.DSN
	}
	switch c.Driver {
	case "postgres":
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable connect_timeout=%d",
			c.Host, c.Port, c.User, c.Password, c.Name, int(c.Timeout.Seconds()))
	case "sqlite":
		return c.Name + ".db"
	default:
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=true&timeout=%s",
			c.User, c.Password, c.Host, c.Port, c.Name, c.Timeout)
	}
}

// Load reads the configuration. Environment variables win over the .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}
	return FromViper(v), nil
}

// FromViper builds the configuration from an already populated viper instance.
func FromViper(v *viper.Viper) *Config {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	driver := v.GetString("DB_DRIVER")
	port := v.GetInt("DB_PORT")
	if port == 0 {
		port = defaultPort(driver)
	}

	return &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			Port:     v.GetString("APP_PORT"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Driver:   driver,
			DSN:      v.GetString("DATABASE_DSN"),
			Host:     v.GetString("DB_HOST"),
			Port:     port,
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			Name:     v.GetString("DB_NAME"),
			Timeout:  v.GetDuration("DB_TIMEOUT"),
		},
		Session: SessionConfig{
			Secure: v.GetBool("SESSION_SECURE"),
		},
		RabbitMQ: RabbitMQConfig{
			URL: v.GetString("RABBITMQ_URL"),
		},
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DATABASE_DSN", "")
	v.SetDefault("DB_HOST", "127.0.0.1")
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASS", "")
	v.SetDefault("DB_NAME", "locGM")
	v.SetDefault("DB_TIMEOUT", "3s")
	v.SetDefault("SESSION_SECURE", false)
	v.SetDefault("RABBITMQ_URL", "")
}

// defaultPort is used when DB_PORT is not set.
func defaultPort(driver string) int {
	switch driver {
	case "postgres":
		return 5432
	case "sqlite":
		return 0
	default:
		return 3306
	}
}
