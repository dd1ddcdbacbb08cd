package config_test

import (
	"testing"
	"time"

	"locgm/pkg/config"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg := config.FromViper(viper.New())

	assert.Equal(t, ":8080", cfg.App.Port)
	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, 3306, cfg.DB.Port)
	assert.Equal(t, "locGM", cfg.DB.Name)
	assert.Equal(t, 3*time.Second, cfg.DB.Timeout)
	assert.Empty(t, cfg.RabbitMQ.URL)
	assert.Equal(t,
		"root:@tcp(127.0.0.1:3306)/locGM?charset=utf8mb4&parseTime=true&timeout=3s",
		cfg.DB.ConnectionString())
}

func TestFromViper_EnvironmentOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_PASS", "secret")
	t.Setenv("SESSION_SECURE", "true")

	cfg := config.FromViper(viper.New())
	assert.True(t, cfg.Session.Secure)
	assert.Equal(t,
		"host=db port=5432 user=root password=secret dbname=locGM sslmode=disable connect_timeout=3",
		cfg.DB.ConnectionString())

	t.Setenv("DATABASE_DSN", "file::memory:")
	cfg = config.FromViper(viper.New())
	assert.Equal(t, "file::memory:", cfg.DB.ConnectionString())
}

func TestFromViper_PortFollowsDriver(t *testing.T) {
	t.Setenv("DB_DRIVER", "postgres")
	cfg := config.FromViper(viper.New())
	assert.Equal(t, 5432, cfg.DB.Port)

	t.Setenv("DB_PORT", "6543")
	cfg = config.FromViper(viper.New())
	assert.Equal(t, 6543, cfg.DB.Port)

	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_PORT", "")
	cfg = config.FromViper(viper.New())
	assert.Equal(t, 3306, cfg.DB.Port)
}
