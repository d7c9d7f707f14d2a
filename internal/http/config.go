package http

import "github.com/mrlokans/catalog/internal/logger"

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	AuthorStore AuthorStore
	BookStore   BookStore
	Analytics   CatalogAnalytics

	// Health check target, nil when no database is configured
	Database Pinger

	// Page size policy for list endpoints
	Pagination Pagination

	Logger *logger.Logger

	// Application info
	Version string
}
