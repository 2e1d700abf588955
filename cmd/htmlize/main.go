// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the htmlize CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the htmlize CLI.
var rootCmd = &cobra.Command{
	Use:   "htmlize",
	Short: "Convert Markdown documents into HTML pages",
	Long: `htmlize converts Markdown files into standalone HTML pages. Each file is
translated line by line (headings, paragraphs, lists, fenced code,
blockquotes, links, images, and inline emphasis) and wrapped in a page
template.

Conversions are recorded in a local SQLite history so unchanged files are
skipped on later runs and converted documents can be searched.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./htmlize.yaml or ~/.config/htmlize/htmlize.yaml)")
	rootCmd.PersistentFlags().String("history-dir", ".htmlize", "directory holding the conversion history database")

	viper.SetDefault("conversion.source_dir", "docs")
	viper.SetDefault("conversion.output_dir", "site")
	viper.SetDefault("history.dir", ".htmlize")
	viper.SetDefault("history.max_results", 20)

	_ = viper.BindPFlag("history.dir", rootCmd.PersistentFlags().Lookup("history-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("htmlize")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "htmlize"))
		}
	}

	viper.SetEnvPrefix("HTMLIZE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
