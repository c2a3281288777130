// Package main provides the bescan command-line tool for CRISPR
// base-editing screens: guide generation from a gene sequence and
// aggregation of screen scores.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:     "bescan",
	Short:   "Generate and analyze guides for CRISPR base-editing screens",
	Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initConfig()
		var err error
		if verbose {
			logger, err = zap.NewDevelopment()
		} else {
			logger, err = zap.NewProduction()
		}
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose (development) logging")
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newCompareCmd())
	rootCmd.AddCommand(newNormalizeCmd())
	rootCmd.AddCommand(newConfigCmd())
}

// initConfig reads ~/.bescan.yaml when present.
func initConfig() {
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".bescan")
		viper.SetConfigType("yaml")
		viper.SetConfigFile(filepath.Join(home, ".bescan.yaml"))
	}
	viper.SetDefault("cas", "Sp")
	viper.SetDefault("window.start", 4)
	viper.SetDefault("window.end", 8)
	_ = viper.ReadInConfig() // missing config file is fine
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
