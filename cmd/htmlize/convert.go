// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/htmlize/internal/convert"
	"github.com/pdiddy/htmlize/internal/history"
	"github.com/pdiddy/htmlize/internal/render"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files...]",
	Short: "Convert Markdown files to HTML pages",
	Long: `Convert translates Markdown files into HTML pages written to the output
directory, one <name>.html page per <name>.md source. With no file
arguments, every Markdown file directly inside the source directory is
converted.

Files whose modification time matches their last successful conversion
are skipped unless --force is given. Use --no-history to bypass the
history database entirely.`,
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := conversionConfig()

	renderer, err := render.New(cfg.TemplatePath)
	if err != nil {
		return err
	}

	var tracker convert.Tracker
	noHistory, _ := cmd.Flags().GetBool("no-history")
	if !noHistory {
		store, err := history.NewStore(historyConfig())
		if err != nil {
			return err
		}
		defer store.Close()
		tracker = store
	}

	p := convert.NewPipeline(convert.MarkdownConverter{}, renderer, tracker, cfg)

	var result convert.BatchResult
	if len(args) > 0 {
		result, err = p.ConvertBatch(cmd.Context(), args, cmd.OutOrStdout())
	} else {
		result, err = p.ConvertDir(cmd.Context(), cfg.SourceDir, cmd.OutOrStdout())
	}
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d file(s) failed conversion", result.Failed)
	}
	return nil
}

func init() {
	convertCmd.Flags().String("dir", "docs", "source directory scanned when no files are given")
	convertCmd.Flags().String("out", "site", "output directory for generated pages")
	convertCmd.Flags().String("template", "", "page template with {{title}} and {{content}} placeholders (default: built-in)")
	convertCmd.Flags().Bool("force", false, "convert files even when unchanged since the last run")
	convertCmd.Flags().Bool("no-history", false, "do not read or write the conversion history")

	_ = viper.BindPFlag("conversion.source_dir", convertCmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("conversion.output_dir", convertCmd.Flags().Lookup("out"))
	_ = viper.BindPFlag("conversion.template_path", convertCmd.Flags().Lookup("template"))
	_ = viper.BindPFlag("conversion.force", convertCmd.Flags().Lookup("force"))

	rootCmd.AddCommand(convertCmd)
}
