package http

// This file documents the store interfaces used by HTTP controllers.
// Each controller defines its own interface next to it:
//
// AuthorStore (authors.go):
//   - Author CRUD with the author's books loaded
//
// BookStore (books.go):
//   - Book CRUD and sorted listing
//   - Lookup by author and publication date
//   - Key-wise metadata merge across an author's books
//   - Listing with the author resolved
//
// CatalogAnalytics (stats.go):
//   - Books-per-author report
//   - Metadata search
//
// Pinger (health.go):
//   - Store liveness for /health
//
// Compile-time checks that the database repositories satisfy these live in
// internal/interfaces.
