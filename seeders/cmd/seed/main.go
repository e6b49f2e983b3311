package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"machinery-registry/internal/repositories"
	"machinery-registry/internal/services"
	"machinery-registry/pkg/config"
	"machinery-registry/pkg/database"
	applogger "machinery-registry/pkg/logger"
	"machinery-registry/seeders"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "Database maintenance for the machinery registry",
	Long:  `Applies migrations, creates the administrator, loads sample data and imports machinery lists.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.New()
		logger = applogger.NewLogger(cfg.Log)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Run: func(cmd *cobra.Command, args []string) {
		withDB(func(ctx context.Context, db *database.DB) error {
			return nil
		})
		fmt.Println("Database is up to date.")
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Create the administrator account if it is missing",
	Run: func(cmd *cobra.Command, args []string) {
		withDB(func(ctx context.Context, db *database.DB) error {
			created, err := seeders.EnsureAdmin(ctx, repositories.NewUserRepository(db, logger), cfg.Admin, logger)
			if err != nil {
				return err
			}
			if created {
				fmt.Printf("Administrator %q created.\n", cfg.Admin.Username)
			} else {
				fmt.Printf("Administrator %q already exists.\n", cfg.Admin.Username)
			}
			return nil
		})
	},
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Load sample projects, machinery, teams and employees into an empty database",
	Run: func(cmd *cobra.Command, args []string) {
		withDB(func(ctx context.Context, db *database.DB) error {
			return seeders.SeedSampleData(ctx, db, logger)
		})
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run migrate, admin and sample",
	Run: func(cmd *cobra.Command, args []string) {
		withDB(func(ctx context.Context, db *database.DB) error {
			if _, err := seeders.EnsureAdmin(ctx, repositories.NewUserRepository(db, logger), cfg.Admin, logger); err != nil {
				return err
			}
			return seeders.SeedSampleData(ctx, db, logger)
		})
	},
}

var passwdCmd = &cobra.Command{
	Use:   "passwd <username> <password>",
	Short: "Set a user's password",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		withDB(func(ctx context.Context, db *database.DB) error {
			return seeders.SetPassword(ctx, repositories.NewUserRepository(db, logger), args[0], args[1])
		})
		fmt.Printf("Password of %q updated.\n", args[0])
	},
}

var importCmd = &cobra.Command{
	Use:   "import-machinery <file.xlsx>",
	Short: "Import machinery from a spreadsheet",
	Long: `Import machinery from an Excel workbook.

The first row that has a "code" and a "name" column is the header. Other
recognised columns: type, brand, model, year, notes. Rows whose code already
exists are skipped.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		withDB(func(ctx context.Context, db *database.DB) error {
			importer := services.NewMachineryImporter(repositories.NewMachineryRepository(db, logger), logger)
			result, err := importer.ImportFile(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Created: %d\nSkipped: %d\nFailed:  %d\n", result.Created, result.Skipped, result.Failed)
			return nil
		})
	},
}

// withDB connects, migrates and runs fn, exiting on any error.
func withDB(fn func(ctx context.Context, db *database.DB) error) {
	ctx := context.Background()
	db, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db, logger); err != nil {
		fmt.Fprintf(os.Stderr, "Error running migrations: %v\n", err)
		os.Exit(1)
	}

	if err := fn(ctx, db); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		db.Close()
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(migrateCmd, adminCmd, sampleCmd, allCmd, passwdCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
