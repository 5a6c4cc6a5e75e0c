/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Hospadmin Authors

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

// Package config loads the console's settings from defaults, an optional
// config file, HOSPADMIN_* environment variables and command line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hospadmin/console/datasources"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. HOSPADMIN_STORE_DRIVER.
const EnvPrefix = "HOSPADMIN"

// Keys of the settings.
const (
	KeyAddr        = "addr"
	KeyLogLevel    = "log.level"
	KeyLogFormat   = "log.format"
	KeyStoreDriver = "store.driver"
	KeyStoreDSN    = "store.dsn"
	KeyStoreCSVDir = "store.csv_dir"
	KeyScreensFile = "screens.file"
)

type Config struct {
	Addr    string        `mapstructure:"addr"`
	Log     LogConfig     `mapstructure:"log"`
	Store   StoreConfig   `mapstructure:"store"`
	Screens ScreensConfig `mapstructure:"screens"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	CSVDir string `mapstructure:"csv_dir"`
}

type ScreensConfig struct {
	// File holds screen definitions; empty selects the built-in screens.
	File string `mapstructure:"file"`
}

// New returns a viper instance with the defaults and environment binding
// in place. Callers may bind flags onto it before calling Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault(KeyAddr, "127.0.0.1:8097")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyStoreDriver, "memory")
	v.SetDefault(KeyStoreDSN, "")
	v.SetDefault(KeyStoreCSVDir, "")
	v.SetDefault(KeyScreensFile, "")
	return v
}

// Load reads the config file at path (if any) into v and returns the
// validated configuration.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the settings are consistent.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "memory":
	case "csv":
		if c.Store.CSVDir == "" {
			return errors.New("store.csv_dir is required when store.driver is \"csv\"")
		}
	case "sqlite", "postgres":
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required when store.driver is %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("store.driver must be \"memory\", \"csv\", \"sqlite\" or \"postgres\", got %q", c.Store.Driver)
	}

	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log.format must be \"console\" or \"json\", got %q", c.Log.Format)
	}
	return nil
}

// DataSource returns the settings of the data store.
func (c *Config) DataSource() datasources.Config {
	return datasources.Config{
		Driver: c.Store.Driver,
		DSN:    c.Store.DSN,
		CSVDir: c.Store.CSVDir,
	}
}

// Seedable reports whether the configured store keeps records between runs.
func (c *Config) Seedable() bool {
	return c.Store.Driver == "sqlite" || c.Store.Driver == "postgres"
}
