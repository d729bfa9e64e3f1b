package commands

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yamdb-api/config"
	"github.com/yamdb-api/database"
	"github.com/yamdb-api/utils"
	"gorm.io/gorm"
)

var (
	// Global flags
	envFile  string
	logLevel string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "yamdb",
	Short: "YaMDb - reviews of works: films, books and music",
	Long: `YaMDb collects user reviews of works (titles) grouped by category and genre.

Commands:
  serve            run the HTTP API
  migrate          create or update the database schema
  createsuperuser  add an administrator and email them a confirmation code`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file instead of .env")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override LOG_LEVEL")
}

// bootstrap loads configuration and initializes logging
func bootstrap() (*config.Config, error) {
	if envFile != "" {
		config.LoadEnv(envFile)
	} else {
		config.LoadEnv()
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if err := utils.InitLogger(cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// openDatabase connects and migrates the schema
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	logrus.WithField("driver", cfg.Database.Driver).Info("Database connection established")
	return db, nil
}
