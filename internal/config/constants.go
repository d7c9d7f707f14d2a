package config

const (
	// DefaultDatabasePath is the default path for the catalog database
	DefaultDatabasePath = "./catalog.db"

	// DefaultPageLimit is the page size when the client sends no limit
	DefaultPageLimit = 100

	// MaxPageLimit caps a single list request
	MaxPageLimit = 1000
)
