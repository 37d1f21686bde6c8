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

// Package config holds the runtime configuration of the sortable-table
// command and sets up logging from it.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"sync"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// FullVersion returns a concatenated version string
func FullVersion() string {
	return fmt.Sprintf("%s-%s-%s", Version, GitCommit, BuildDate)
}

// Config holds the global configuration
type Config struct {
	Locale    string `mapstructure:"locale"`
	Listen    string `mapstructure:"listen"`
	Columns   string `mapstructure:"columns"` // YAML column descriptor file
	Data      string `mapstructure:"data"`    // JSON, YAML or CSV records file
	Title     string `mapstructure:"title"`
	Verbosity int    `mapstructure:"verbose"`
	LogFile   string `mapstructure:"log_file"`
	SeqURL    string `mapstructure:"seq_url"`

	// Runtime only
	ConfigPath string         `mapstructure:"-"`
	Logger     *slog.Logger   `mapstructure:"-"`
	LogLevel   *slog.LevelVar `mapstructure:"-"`

	closeLog func()
}

const (
	DefaultLocale = "ru"
	DefaultListen = "127.0.0.1:8090"
)

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration singleton
func Get() *Config {
	once.Do(func() {
		instance = Default()
	})
	return instance
}

// Default returns a configuration with default values and a stderr logger
func Default() *Config {
	lvl := &slog.LevelVar{}
	lvl.Set(slog.LevelInfo)
	return &Config{
		Locale:   DefaultLocale,
		Listen:   DefaultListen,
		Title:    "Sortable table",
		Logger:   slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})),
		LogLevel: lvl,
		closeLog: func() {},
	}
}

// Validate checks values that cannot be fixed up silently
func (c *Config) Validate() error {
	if c.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if (c.Columns == "") != (c.Data == "") {
		return fmt.Errorf("columns and data must be configured together")
	}
	return nil
}
