package cli

import (
	"flag"

	"github.com/mrlokans/catalog/internal/config"
)

// databaseFlags registers the store selection flags shared by every command.
// Defaults come from the environment so flags only need to override.
func databaseFlags(fs *flag.FlagSet, cfg *config.Database) {
	defaults := config.NewConfig().Database
	*cfg = defaults

	fs.Func("driver", "Database driver: sqlite or postgres (default "+string(defaults.Driver)+")", func(s string) error {
		cfg.Driver = config.DatabaseDriver(s)
		return nil
	})
	fs.StringVar(&cfg.Path, "db", defaults.Path, "Path to the SQLite database file")
	fs.StringVar(&cfg.DSN, "dsn", defaults.DSN, "Postgres connection string")
}
