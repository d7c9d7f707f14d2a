package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/database/analytics"
	"github.com/mrlokans/catalog/internal/database/authors"
	"github.com/mrlokans/catalog/internal/database/books"
	"github.com/mrlokans/catalog/internal/http"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// AuthorStore implementations
var _ http.AuthorStore = (*authors.Repository)(nil)

// BookStore implementations
var _ http.BookStore = (*books.Repository)(nil)

// CatalogAnalytics implementations
var _ http.CatalogAnalytics = (*analytics.Repository)(nil)

// =============================================================================
// Health
// =============================================================================

// Pinger implementations
var _ http.Pinger = (*database.Database)(nil)
