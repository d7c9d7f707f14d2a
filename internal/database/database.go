package database

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/logger"
)

// sqliteBusyTimeoutMs is how long a connection waits for the file lock before
// failing with SQLITE_BUSY.
const sqliteBusyTimeoutMs = 5000

// sqliteTxLock makes every transaction take the write lock at BEGIN. A deferred
// transaction that reads and then writes cannot upgrade its lock while another
// writer holds it, and the busy timeout does not help there.
const sqliteTxLock = "immediate"

type Database struct {
	DB  *gorm.DB
	log *logger.Logger
}

// NewDatabase opens the store and brings the schema up to date.
func NewDatabase(cfg config.Database, log *logger.Logger) (*Database, error) {
	d, err := Open(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := Migrate(d.DB); err != nil {
		d.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("database initialized", "driver", string(cfg.Driver), "path", cfg.Path)

	return d, nil
}

// Open connects to the store without touching the schema.
func Open(cfg config.Database, log *logger.Logger) (*Database, error) {
	dialector, err := openDialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		// Books may outlive their author, so author_id carries no FK constraint.
		DisableForeignKeyConstraintWhenMigrating: true,
		TranslateError:                           true,
		Logger: gormlogger.New(log.StdLog(), gormlogger.Config{
			SlowThreshold:             cfg.SlowThreshold,
			LogLevel:                  parseLogLevel(cfg.LogLevel),
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{DB: db, log: log}, nil
}

// HasSchema reports whether the catalog tables already exist.
func (d *Database) HasSchema() bool {
	m := d.DB.Migrator()
	return m.HasTable(&entities.Author{}) && m.HasTable(&entities.Book{})
}

// Migrate creates or updates the authors and books tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.Author{},
		&entities.Book{},
	)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the store answers.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// WithTx runs fn in one transaction on db. The transaction commits when fn
// returns nil and rolls back when fn returns an error or panics; the
// connection is released on every path. The returned error is translated.
func WithTx(ctx context.Context, db *gorm.DB, op string, fn func(tx *gorm.DB) error) error {
	return Translate(op, db.WithContext(ctx).Transaction(fn))
}

func openDialector(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite, "":
		if cfg.Path == "" {
			return nil, fmt.Errorf("database path is required for the sqlite driver")
		}
		return sqlite.Open(sqliteDSN(cfg.Path)), nil
	case config.DriverPostgres:
		if cfg.DSN == "" {
			return nil, fmt.Errorf("database DSN is required for the postgres driver")
		}
		return postgres.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// sqliteDSN adds the busy timeout and transaction lock mode to path unless
// the caller already set them.
func sqliteDSN(path string) string {
	var params []string
	if !strings.Contains(path, "_busy_timeout") {
		params = append(params, fmt.Sprintf("_busy_timeout=%d", sqliteBusyTimeoutMs))
	}
	if !strings.Contains(path, "_txlock") {
		params = append(params, "_txlock="+sqliteTxLock)
	}
	if len(params) == 0 {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + strings.Join(params, "&")
}

func parseLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
