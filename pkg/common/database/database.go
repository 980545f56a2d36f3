package database

import (
	"strings"

	"github.com/sreekrishna-ayurveda/clinic-api/pkg/common/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DefaultSQLitePath is the embedded store used when no DATABASE_URL is set.
const DefaultSQLitePath = "clinic.db"

// Open connects to the store selected by the DSN: a Postgres URL or keyword
// DSN opens Postgres, anything else is treated as a sqlite file path. The
// returned handle is meant to be constructed once at startup and injected.
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	var (
		db  *gorm.DB
		err error
	)
	switch {
	case dsn == "":
		db, err = gorm.Open(sqlite.Open(DefaultSQLitePath), cfg)
	case isPostgres(dsn):
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	default:
		db, err = gorm.Open(sqlite.Open(strings.TrimPrefix(dsn, "sqlite://")), cfg)
	}
	if err != nil {
		return nil, err
	}

	logger.Log.WithField("kind", Kind(dsn)).Info("connected to database")
	return db, nil
}

// Kind reports which driver a DSN selects, for logging.
func Kind(dsn string) string {
	if isPostgres(dsn) {
		return "postgres"
	}
	return "sqlite"
}

func isPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
