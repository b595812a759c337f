package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/unilanding/cms-backend/pkg/logger"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Install the module catalog and the superadmin account",
	Long:  `Idempotent bootstrap: upserts the fixed module catalog and creates the seed admin if missing.`,
	Run: func(cmd *cobra.Command, args []string) {
		runSeeder()
	},
}

func runSeeder() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	gormDB, err := initGorm(db)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize orm: %v\n", err)
		os.Exit(1)
	}

	// The CLI path reuses the HTTP wiring and authorizes with the
	// configured secret itself.
	_, _, seedService := buildHandlers(config, gormDB, lg)
	result, err := seedService.Run(config.Seed.Secret)
	if err != nil {
		lg.Error("seed failed", "error", err)
		os.Exit(1)
	}

	lg.Info("seed completed",
		"modules", result.Modules,
		"admin_created", result.AdminCreated,
		"admin_email", result.AdminEmail)
}
