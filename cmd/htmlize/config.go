// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/viper"

	"github.com/pdiddy/htmlize/pkg/types"
)

// conversionConfig reads the convert settings from viper, which layers
// bound flags over environment variables, the config file and defaults.
func conversionConfig() types.ConversionConfig {
	return types.ConversionConfig{
		SourceDir:    viper.GetString("conversion.source_dir"),
		OutputDir:    viper.GetString("conversion.output_dir"),
		TemplatePath: viper.GetString("conversion.template_path"),
		Force:        viper.GetBool("conversion.force"),
	}
}

func historyConfig() types.HistoryConfig {
	return types.HistoryConfig{
		Dir:        viper.GetString("history.dir"),
		MaxResults: viper.GetInt("history.max_results"),
	}
}
