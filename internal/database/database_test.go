package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/logger"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) (*Database, func()) {
	t.Helper()
	db, err := NewDatabase(config.Database{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "catalog.db"),
		LogLevel: "silent",
	}, logger.Nop())
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}
	return db, cleanup
}

func TestNewDatabase_CreatesSchema(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	migrator := db.DB.Migrator()
	assert.True(t, migrator.HasTable(&entities.Author{}))
	assert.True(t, migrator.HasTable(&entities.Book{}))
	for _, column := range []string{"title", "publication_date", "author_id", "isbn", "metadata"} {
		assert.True(t, migrator.HasColumn(&entities.Book{}, column), column)
	}
	assert.True(t, migrator.HasColumn(&entities.Author{}, "birth_date"))
	assert.True(t, migrator.HasIndex(&entities.Author{}, "idx_authors_name"))
	assert.True(t, migrator.HasIndex(&entities.Book{}, "idx_books_isbn"))
}

func TestNewDatabase_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	cfg := config.Database{Driver: config.DriverSQLite, Path: path, LogLevel: "silent"}

	db, err := NewDatabase(cfg, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, db.DB.Create(&entities.Author{Name: "Persisted"}).Error)
	require.NoError(t, db.Close())

	db, err = NewDatabase(cfg, logger.Nop())
	require.NoError(t, err)
	defer db.Close()

	var count int64
	require.NoError(t, db.DB.Model(&entities.Author{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestOpen_LeavesSchemaAlone(t *testing.T) {
	cfg := config.Database{Driver: config.DriverSQLite, Path: filepath.Join(t.TempDir(), "catalog.db"), LogLevel: "silent"}

	db, err := Open(cfg, logger.Nop())
	require.NoError(t, err)
	assert.False(t, db.HasSchema())
	require.NoError(t, Migrate(db.DB))
	assert.True(t, db.HasSchema())
	require.NoError(t, db.Close())
}

func TestNewDatabase_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Database
	}{
		{"unknown driver", config.Database{Driver: "oracle"}},
		{"sqlite without path", config.Database{Driver: config.DriverSQLite}},
		{"postgres without dsn", config.Database{Driver: config.DriverPostgres}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, err := NewDatabase(tt.cfg, logger.Nop())
			assert.Nil(t, db)
			assert.Error(t, err)
		})
	}
}

func TestDatabase_Ping(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	assert.NoError(t, db.Ping(context.Background()))
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		err := WithTx(ctx, db.DB, "test", func(tx *gorm.DB) error {
			if err := tx.Create(&entities.Author{Name: "A"}).Error; err != nil {
				return err
			}
			return tx.Create(&entities.Author{Name: "B"}).Error
		})
		require.NoError(t, err)

		var count int64
		require.NoError(t, db.DB.Model(&entities.Author{}).Count(&count).Error)
		assert.Equal(t, int64(2), count)
	})

	t.Run("rolls back every statement on error", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		err := WithTx(ctx, db.DB, "test", func(tx *gorm.DB) error {
			if err := tx.Create(&entities.Author{Name: "A"}).Error; err != nil {
				return err
			}
			return tx.Create(&entities.Author{Name: "A"}).Error
		})
		assert.ErrorIs(t, err, ErrConflict)

		var count int64
		require.NoError(t, db.DB.Model(&entities.Author{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("rolls back on panic", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		assert.Panics(t, func() {
			_ = WithTx(ctx, db.DB, "test", func(tx *gorm.DB) error {
				tx.Create(&entities.Author{Name: "A"})
				panic("boom")
			})
		})

		var count int64
		require.NoError(t, db.DB.Model(&entities.Author{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("domain errors pass through", func(t *testing.T) {
		db, cleanup := setupTestDB(t)
		defer cleanup()

		err := WithTx(ctx, db.DB, "test", func(tx *gorm.DB) error {
			return ErrAuthorNotFound
		})
		assert.True(t, errors.Is(err, ErrAuthorNotFound))
	})
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t, "./a.db?_busy_timeout=5000&_txlock=immediate", sqliteDSN("./a.db"))
	assert.Equal(t, "file:a.db?mode=rwc&_busy_timeout=5000&_txlock=immediate", sqliteDSN("file:a.db?mode=rwc"))
	assert.Equal(t, "./a.db?_busy_timeout=10&_txlock=immediate", sqliteDSN("./a.db?_busy_timeout=10"))
	assert.Equal(t, "./a.db?_txlock=exclusive&_busy_timeout=5000", sqliteDSN("./a.db?_txlock=exclusive"))
	assert.Equal(t, "./a.db?_busy_timeout=1&_txlock=deferred", sqliteDSN("./a.db?_busy_timeout=1&_txlock=deferred"))
}
