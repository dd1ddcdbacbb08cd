package repositories

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"locgm/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrUnavailable is returned by every repository call when the database cannot be reached.
var ErrUnavailable = errors.New("persistence unavailable")

// Opener opens a fresh database handle.
type Opener func() (*gorm.DB, error)

// Gateway owns the process-wide database handle. The handle is opened lazily on
// first use and cached once the schema has been ensured; a failed attempt is not
// cached, so the next call tries again.
type Gateway struct {
	open Opener
	log  zerolog.Logger

	mu sync.Mutex
	db *gorm.DB
}

// NewGateway creates a Gateway around the given opener.
func NewGateway(open Opener, log zerolog.Logger) *Gateway {
	return &Gateway{open: open, log: log}
}

// NewGatewayFromDialector creates a Gateway over a GORM dialector. GORM's own
// warnings (slow statements, failed queries) go to log.
func NewGatewayFromDialector(dialector gorm.Dialector, log zerolog.Logger) *Gateway {
	gormLog := logger.New(gormWriter{log: log}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
	return NewGateway(func() (*gorm.DB, error) {
		return gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	}, log)
}

type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warn().Str("component", "gorm").Msgf(format, args...)
}

// Dialector picks the GORM driver for the configured database.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "", "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

// Conn returns the cached handle, connecting and migrating on first use.
func (g *Gateway) Conn() (*gorm.DB, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db != nil {
		return g.db, nil
	}
	if g.open == nil {
		return nil, ErrUnavailable
	}

	db, err := g.open()
	if err != nil {
		g.log.Warn().Err(err).Msg("database connect failed")
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := db.AutoMigrate(&models.Company{}, &models.User{}); err != nil {
		g.log.Warn().Err(err).Msg("failed to ensure schema")
		if sqlDB, sqlErr := db.DB(); sqlErr == nil {
			sqlDB.Close()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	g.db = db
	g.log.Info().Str("dialect", db.Dialector.Name()).Msg("database connected")
	return g.db, nil
}

// Available reports whether a connection can be established right now.
func (g *Gateway) Available() bool {
	_, err := g.Conn()
	return err == nil
}

// Close releases the cached handle, if any.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	g.db = nil
	return sqlDB.Close()
}
