// Package main provides the entry point for the portfolio site and its
// content-editing CMS.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nijanthan/portfolio-cms/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Portfolio site with a GitHub-backed content CMS",
	Long:  "Serves the portfolio page and an editing API whose publish workflow writes the content document back to its GitHub repository with conditional writes.",
}

var configPath string

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON config file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// mergedConfig layers env vars over the optional config file over the
// built-in defaults.
func mergedConfig() (*config.Config, error) {
	fileCfg := config.Config{}
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		fileCfg = *loaded
	}

	envCfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	merged := envCfg.MergeWithDefaults(fileCfg)
	merged = merged.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}
