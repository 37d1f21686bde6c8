/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Taxinomia Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package cmd

import (
	"fmt"
	"os"

	"github.com/google/sortabletable/core/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	sortField string
	sortOrder string
)

var rootCmd = &cobra.Command{
	Use:           "sortable-table",
	Short:         "Render and serve sortable HTML tables",
	Version:       config.Version,
	Long:          `sortable-table renders a collection of records as an HTML table whose columns sort by numeric, locale-aware string or custom order`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return initConfig()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		config.Get().CloseLogging()
		os.Exit(1)
	}
	config.Get().CloseLogging()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("sortable-table version {{.Version}} (commit: %s, date: %s)\n", config.GitCommit, config.BuildDate))

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.sortable-table.yaml)")
	flags.CountP("verbose", "v", "increase verbosity")
	flags.String("locale", config.DefaultLocale, "collation locale for string columns")
	flags.String("columns", "", "YAML file describing the columns")
	flags.String("data", "", "JSON, YAML or CSV file with the records")
	flags.String("title", "Sortable table", "table title")
	flags.String("log-file", "", "write logs to this file instead of stderr")
	flags.String("seq-url", "", "also send logs to this Seq server")

	viper.BindPFlag("verbose", flags.Lookup("verbose"))
	viper.BindPFlag("locale", flags.Lookup("locale"))
	viper.BindPFlag("columns", flags.Lookup("columns"))
	viper.BindPFlag("data", flags.Lookup("data"))
	viper.BindPFlag("title", flags.Lookup("title"))
	viper.BindPFlag("log_file", flags.Lookup("log-file"))
	viper.BindPFlag("seq_url", flags.Lookup("seq-url"))
}

// addSortFlags registers the --sort and --order flags on a command
func addSortFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&sortField, "sort", "", "column to sort by (default: first sortable column)")
	cmd.Flags().StringVar(&sortOrder, "order", "asc", "sort order (asc, desc)")
}

func initConfig() error {
	cfg := config.Get()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".sortable-table")
	}

	viper.SetEnvPrefix("SORTABLE_TABLE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		cfg.ConfigPath = viper.ConfigFileUsed()
	} else if cfgFile != "" {
		return fmt.Errorf("failed to read config: %w", err)
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.SetupLogging()
	if cfg.ConfigPath != "" {
		cfg.Logger.Debug("using config file", "path", cfg.ConfigPath)
	}
	return nil
}
