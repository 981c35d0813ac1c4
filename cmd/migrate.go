package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/jjenkins/gabinete/internal/config"
	"github.com/jjenkins/gabinete/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	Long: `Migrate creates or updates the technical note table in PostgreSQL.

Examples:
  # Migrate the database named by DATABASE_URL
  ./gabinete migrate

  # Migrate using a config file
  ./gabinete migrate --config gabinete.yml`,
	Run: runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) {
	// The legislator identity is not needed here, so skip Validate
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("Connecting to database...")
	db, err := store.NewDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	version, dirty, err := store.RunMigrations(db)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	log.Printf("Database at version %d (dirty: %t)", version, dirty)
}
