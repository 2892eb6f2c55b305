package db

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/terraincognita07/ovumcy/internal/logging"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	sqliteBusyTimeout = 5 * time.Second
	slowQueryAfter    = time.Second
)

// OpenSQLite opens (creating if needed) the database at dbPath and brings its
// schema up to date.
func OpenSQLite(dbPath string) (*gorm.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	database, err := gorm.Open(sqlite.Open(sqliteDSN(dbPath)), &gorm.Config{
		Logger:  queryLogger(),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	applied, err := ApplyMigrations(database)
	if err != nil {
		_ = Close(database)
		return nil, fmt.Errorf("apply embedded migrations: %w", err)
	}
	for _, name := range applied {
		logging.Info().Str("migration", name).Str("db", dbPath).Msg("migration applied")
	}
	return database, nil
}

func sqliteDSN(dbPath string) string {
	return fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", dbPath, sqliteBusyTimeout.Milliseconds())
}

// queryLogger routes gorm warnings and slow queries into zerolog.
func queryLogger() gormlogger.Interface {
	return gormlogger.New(
		log.New(logging.Writer(zerolog.WarnLevel), "", 0),
		gormlogger.Config{
			SlowThreshold:             slowQueryAfter,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// Close releases the underlying connection pool.
func Close(database *gorm.DB) error {
	sqlDB, err := database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
