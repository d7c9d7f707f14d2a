package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/catalog/internal/config"
	"github.com/mrlokans/catalog/internal/database"
	"github.com/mrlokans/catalog/internal/logger"
)

// InitDBCommand provisions the catalog schema.
type InitDBCommand struct {
	Database config.Database
	Out      io.Writer
	Log      *logger.Logger
}

func NewInitDBCommand() *InitDBCommand {
	return &InitDBCommand{Out: os.Stdout, Log: logger.Nop()}
}

func (cmd *InitDBCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("init-db", flag.ContinueOnError)
	databaseFlags(fs, &cmd.Database)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s init-db [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create the authors and books tables if they do not exist.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s init-db -db ./catalog.db\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s init-db -driver postgres -dsn 'host=localhost user=catalog dbname=catalog'\n", os.Args[0])
	}

	return fs.Parse(args)
}

// Run creates the schema. A store that already has it is brought up to date
// and reported as existing.
func (cmd *InitDBCommand) Run() error {
	db, err := database.Open(cmd.Database, cmd.Log)
	if err != nil {
		return err
	}
	defer db.Close()

	existed := db.HasSchema()
	if err := database.Migrate(db.DB); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if existed {
		fmt.Fprintln(cmd.Out, "Database already exists.")
	} else {
		fmt.Fprintln(cmd.Out, "Database created successfully.")
	}
	return nil
}
