// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the content-crafter CLI.
// The run subcommand drives the research, outline and draft pipeline; the
// corpus subcommands manage the local snippet corpus used for offline
// grounding.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/content-crafter/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets secrets.Set

// secretDefault returns fallback if it is set, or the secret value for key otherwise.
func secretDefault(key, fallback string) string {
	return loadedSecrets.Or(key, fallback)
}

// rootCmd is the base command for the content-crafter CLI.
var rootCmd = &cobra.Command{
	Use:   "content-crafter",
	Short: "Research, outline and draft a blog post from a topic",
	Long: `content-crafter turns a topic into a Markdown blog post in three
sequential stages. Research collects search snippets and asks a model for
keywords and facts; outline turns the research into a section outline;
draft writes the article from the outline.

A stage that gets unusable output degrades instead of aborting. Without
research there is no outline, and without an outline the run ends with a
single "ERROR: ..." line.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", s.Names())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./content-crafter.yaml or ~/.config/content-crafter/content-crafter.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("content-crafter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "content-crafter"))
		}
	}

	viper.SetEnvPrefix("CONTENT_CRAFTER")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
