package main

import (
	"fmt"
	"os"

	"snapdev-task/internal/config"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var Version = "dev"

var (
	configPath string
	dbPath     string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "snapdev",
		Short:         "SnapDev Task - Kanban board with a Pomodoro timer",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runBoard,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(boardCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(tasksCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig merges the config file, the environment and the persistent flags
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
	log.SetLevel(cfg.LogLevel())
	return cfg, nil
}
