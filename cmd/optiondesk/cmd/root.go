package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"optiondesk/broker/paper"
	"optiondesk/config"
	"optiondesk/session"
)

var rootCmd = &cobra.Command{
	Use:   "optiondesk",
	Short: "An order-ticket client for a paper options brokerage",
	Long: `Optiondesk is a client for assembling multi-leg options orders against
a paperbroker-style account, previewing their cash and margin impact
before committing, and submitting them.

It provides tools for:
  - Opening and inspecting paper brokerage accounts
  - Browsing option expirations and priced quotes
  - Building a multi-leg ticket interactively with a live simulated preview
  - Submitting tickets and journaling what was sent`,
}

var (
	cfgFile   string
	serverURL string
	launchURL string
	verbose   bool
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "brokerage service base URL")
	rootCmd.PersistentFlags().StringVar(&launchURL, "launch-url", "", "launch URL; its accountId parameter overrides the stored session")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging to stderr")
}

// loadConfig merges the config file (when given) with command-line
// overrides.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		loaded, err := config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if serverURL != "" {
		cfg.Service.BaseURL = serverURL
	}
	if launchURL != "" {
		cfg.Session.LaunchURL = launchURL
	}
	return cfg, nil
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newClient(cfg *config.Config, log *zap.Logger) (*paper.Client, error) {
	timeout, err := cfg.Service.ParseTimeout()
	if err != nil {
		return nil, fmt.Errorf("service timeout: %w", err)
	}
	return paper.NewClient(cfg.Service.BaseURL, timeout, log), nil
}

// openSessionStore opens the SQLite session slot, creating its parent
// directory if needed.
func openSessionStore(cfg *config.Config) (*session.SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Session.DBPath), 0755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return session.NewSQLite(cfg.Session.DBPath)
}
