// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - AuthorStore: Author CRUD (internal/http/authors.go)
//   - BookStore: Book CRUD, per-author lookups and metadata merge (internal/http/books.go)
//   - CatalogAnalytics: Books-per-author report and metadata search (internal/http/stats.go)
//   - Pinger: Store liveness for the health check (internal/http/health.go)
//
// Each interface is declared next to the controller that consumes it and is
// satisfied by a repository under internal/database.
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., publishers):
//
//  1. Add the entity to internal/entities and to database.Migrate
//
//  2. Create sub-package: internal/database/publishers/
//
//  3. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  4. Run multi-statement writes through database.WithTx so failures are
//     translated into the catalog error taxonomy
//
//  5. Declare the store interface next to its controller in internal/http and
//     add a compile-time check:
//
//     var _ http.PublisherStore = (*publishers.Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go.
package interfaces
