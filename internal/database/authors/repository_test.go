package authors

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/entities"
	"github.com/mrlokans/catalog/internal/logger"
)

func setupTestDB(t *testing.T) (*Repository, *gorm.DB, func()) {
	t.Helper()
	db, err := database.NewDatabase(config.Database{
		Driver:   config.DriverSQLite,
		Path:     filepath.Join(t.TempDir(), "authors.db"),
		LogLevel: "silent",
	}, logger.Nop())
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}
	return NewRepository(db.DB), db.DB, cleanup
}

func datePtr(d datatypes.Date) *datatypes.Date {
	return &d
}

func TestRepository_Create(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	author, err := repo.Create(ctx, entities.Author{
		Name:      "Agatha Christie",
		BirthDate: datePtr(entities.NewDate(1890, 9, 15)),
	})

	require.NoError(t, err)
	assert.NotZero(t, author.ID)
	assert.Equal(t, "Agatha Christie", author.Name)
	require.NotNil(t, author.BirthDate)
	assert.Equal(t, "1890-09-15", entities.FormatDate(*author.BirthDate))
	assert.Empty(t, author.Books)
}

func TestRepository_Create_DuplicateNameConflicts(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	_, err := repo.Create(ctx, entities.Author{Name: "Stephen King"})
	require.NoError(t, err)
	before, err := repo.Count(ctx)
	require.NoError(t, err)

	author, err := repo.Create(ctx, entities.Author{Name: "Stephen King"})

	assert.Nil(t, author)
	assert.ErrorIs(t, err, database.ErrConflict)
	after, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRepository_Get(t *testing.T) {
	repo, db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	created, err := repo.Create(ctx, entities.Author{Name: "J.R.R. Tolkien"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&entities.Book{
		Title:           "The Hobbit",
		PublicationDate: entities.NewDate(1937, 9, 21),
		AuthorID:        created.ID,
	}).Error)

	t.Run("returns author with books", func(t *testing.T) {
		author, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "J.R.R. Tolkien", author.Name)
		require.Len(t, author.Books, 1)
		assert.Equal(t, "The Hobbit", author.Books[0].Title)
	})

	t.Run("missing id is not found", func(t *testing.T) {
		author, err := repo.Get(ctx, created.ID+100)
		assert.Nil(t, author)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestRepository_FindByName(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	created, err := repo.Create(ctx, entities.Author{Name: "Stephen King"})
	require.NoError(t, err)

	found, err := repo.FindByName(ctx, "Stephen King")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	found, err = repo.FindByName(ctx, "stephen king")
	assert.Nil(t, found)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_List(t *testing.T) {
	repo, _, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C", "D", "E"} {
		_, err := repo.Create(ctx, entities.Author{Name: name})
		require.NoError(t, err)
	}

	names := func(authors []entities.Author) []string {
		out := make([]string, 0, len(authors))
		for _, a := range authors {
			out = append(out, a.Name)
		}
		return out
	}

	tests := []struct {
		name  string
		skip  int
		limit int
		want  []string
	}{
		{"first page", 0, 2, []string{"A", "B"}},
		{"tail clamped to store size", 3, 10, []string{"D", "E"}},
		{"skip past end", 10, 5, []string{}},
		{"zero limit", 0, 0, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authors, err := repo.List(ctx, tt.skip, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(authors))
		})
	}

	t.Run("negative arguments are rejected", func(t *testing.T) {
		_, err := repo.List(ctx, -1, 10)
		assert.ErrorIs(t, err, database.ErrInvalidPage)
		_, err = repo.List(ctx, 0, -1)
		assert.ErrorIs(t, err, database.ErrInvalidPage)
	})
}

func TestRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("empty patch leaves author unchanged", func(t *testing.T) {
		repo, _, cleanup := setupTestDB(t)
		defer cleanup()

		created, err := repo.Create(ctx, entities.Author{
			Name:      "George R.R. Martin",
			BirthDate: datePtr(entities.NewDate(1948, 9, 20)),
		})
		require.NoError(t, err)
		before, err := repo.Get(ctx, created.ID)
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID, entities.AuthorPatch{})
		require.NoError(t, err)

		assert.Equal(t, before.ID, updated.ID)
		assert.Equal(t, before.Name, updated.Name)
		assert.Equal(t, entities.FormatDate(*before.BirthDate), entities.FormatDate(*updated.BirthDate))
	})

	t.Run("name only changes name", func(t *testing.T) {
		repo, _, cleanup := setupTestDB(t)
		defer cleanup()

		created, err := repo.Create(ctx, entities.Author{
			Name:      "J.K. Rowling",
			BirthDate: datePtr(entities.NewDate(1965, 7, 31)),
		})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID, entities.AuthorPatch{
			Name: entities.Some("Robert Galbraith"),
		})
		require.NoError(t, err)

		assert.Equal(t, "Robert Galbraith", updated.Name)
		require.NotNil(t, updated.BirthDate)
		assert.Equal(t, "1965-07-31", entities.FormatDate(*updated.BirthDate))
	})

	t.Run("explicit nil clears birth date", func(t *testing.T) {
		repo, _, cleanup := setupTestDB(t)
		defer cleanup()

		created, err := repo.Create(ctx, entities.Author{
			Name:      "Homer",
			BirthDate: datePtr(entities.NewDate(1900, 1, 1)),
		})
		require.NoError(t, err)

		updated, err := repo.Update(ctx, created.ID, entities.AuthorPatch{
			BirthDate: entities.Some[*datatypes.Date](nil),
		})
		require.NoError(t, err)

		assert.Equal(t, "Homer", updated.Name)
		assert.Nil(t, updated.BirthDate)
	})

	t.Run("duplicate name conflicts and keeps stored value", func(t *testing.T) {
		repo, _, cleanup := setupTestDB(t)
		defer cleanup()

		_, err := repo.Create(ctx, entities.Author{Name: "First"})
		require.NoError(t, err)
		second, err := repo.Create(ctx, entities.Author{Name: "Second"})
		require.NoError(t, err)

		_, err = repo.Update(ctx, second.ID, entities.AuthorPatch{Name: entities.Some("First")})
		assert.ErrorIs(t, err, database.ErrConflict)

		stored, err := repo.Get(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, "Second", stored.Name)
	})

	t.Run("missing id is not found", func(t *testing.T) {
		repo, _, cleanup := setupTestDB(t)
		defer cleanup()

		updated, err := repo.Update(ctx, 42, entities.AuthorPatch{Name: entities.Some("Nobody")})
		assert.Nil(t, updated)
		assert.ErrorIs(t, err, database.ErrNotFound)

		count, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("returns deleted author and keeps books", func(t *testing.T) {
		repo, db, cleanup := setupTestDB(t)
		defer cleanup()

		created, err := repo.Create(ctx, entities.Author{Name: "Stephen King"})
		require.NoError(t, err)
		require.NoError(t, db.Create(&entities.Book{
			Title:           "The Shining",
			PublicationDate: entities.NewDate(1977, 1, 28),
			AuthorID:        created.ID,
		}).Error)

		deleted, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, deleted.ID)
		assert.Len(t, deleted.Books, 1)

		_, err = repo.Get(ctx, created.ID)
		assert.ErrorIs(t, err, database.ErrNotFound)

		var books int64
		require.NoError(t, db.Model(&entities.Book{}).Count(&books).Error)
		assert.Equal(t, int64(1), books)
	})

	t.Run("missing id is not found and changes nothing", func(t *testing.T) {
		repo, db, cleanup := setupTestDB(t)
		defer cleanup()

		created, err := repo.Create(ctx, entities.Author{Name: "Agatha Christie"})
		require.NoError(t, err)
		require.NoError(t, db.Create(&entities.Book{
			Title:           "Murder on the Orient Express",
			PublicationDate: entities.NewDate(1934, 1, 1),
			AuthorID:        created.ID,
		}).Error)

		deleted, err := repo.Delete(ctx, created.ID+1)
		assert.Nil(t, deleted)
		assert.ErrorIs(t, err, database.ErrNotFound)

		authors, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), authors)
		var books int64
		require.NoError(t, db.Model(&entities.Book{}).Count(&books).Error)
		assert.Equal(t, int64(1), books)
	})
}
