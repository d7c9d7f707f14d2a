// Package database provides the data access layer for the catalog.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations, transactions
//	├── errors.go        # Error taxonomy and driver error translation
//	├── authors/         # Author CRUD
//	├── books/           # Book CRUD, sorting, metadata merge
//	└── analytics/       # Per-author counts and metadata search
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type built on a *gorm.DB:
//
//	db, err := database.NewDatabase(cfg.Database, log)
//
//	authorsRepo := authors.NewRepository(db.DB)
//	booksRepo := books.NewRepository(db.DB, log)
//	analyticsRepo := analytics.NewRepository(db.DB)
//
//	author, err := authorsRepo.Get(ctx, 1)
//	if errors.Is(err, database.ErrNotFound) { ... }
//
// # Errors
//
// Repositories return errors from a fixed taxonomy so the transport layer can
// map them without knowing the driver:
//
//   - ErrNotFound: the id does not exist; the entity result is nil
//   - ErrConflict: duplicate author name or book ISBN
//   - ErrAuthorNotFound: a book write references a missing author
//   - ErrInvalidPage, ErrInvalidQuery: rejected arguments, nothing was read
//   - *StoreError: the store itself failed; nothing was written
//
// # Transactions
//
// Every operation that issues more than one statement runs inside WithTx and
// is all-or-nothing.
package database
