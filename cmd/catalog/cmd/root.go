package cmd

import (
	"fmt"
	"os"

	"catalog-backend/internal/catalog"
	"catalog-backend/internal/components/serviceutil"
	"catalog-backend/internal/components/telemetry"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "catalog",
	Short: "catalog scrapes the course calendar into a database and serves course weightings from it.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output.")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json5", "Path to the config file.")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func mustLoadConfig() Config {
	cfg, err := loadConfig(configPath, os.Getenv)
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

// openLookup opens the course store for reading, closeDB releases the
// database.
func openLookup(cfg Config) (lookup catalog.Lookup, closeDB func()) {
	database, err := cfg.Database.OpenDB()
	if err != nil {
		serviceutil.Fatal("failed to open db", err)
	}
	store := catalog.NewStore(database, telemetry.SlogAPI{})
	return catalog.NewLookup(store), func() { database.Close() }
}
