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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8097", cfg.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.Empty(t, cfg.Screens.File)
	assert.False(t, cfg.Seedable())
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("HOSPADMIN_ADDR", ":9000")
	t.Setenv("HOSPADMIN_STORE_DRIVER", "sqlite")
	t.Setenv("HOSPADMIN_STORE_DSN", "/tmp/console.db")
	t.Setenv("HOSPADMIN_LOG_FORMAT", "json")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "sqlite", cfg.DataSource().Driver)
	assert.Equal(t, "/tmp/console.db", cfg.DataSource().DSN)
	assert.True(t, cfg.Seedable())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "console.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":8123"
store:
  driver: csv
  csv_dir: ./data
screens:
  file: screens.yaml
`), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, ":8123", cfg.Addr)
	assert.Equal(t, "./data", cfg.Store.CSVDir)
	assert.Equal(t, "screens.yaml", cfg.Screens.File)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Store: StoreConfig{Driver: "memory"}, Log: LogConfig{Format: "console"}}, false},
		{"csv without dir", Config{Store: StoreConfig{Driver: "csv"}, Log: LogConfig{Format: "console"}}, true},
		{"sqlite without dsn", Config{Store: StoreConfig{Driver: "sqlite"}, Log: LogConfig{Format: "json"}}, true},
		{"postgres", Config{Store: StoreConfig{Driver: "postgres", DSN: "postgres://x"}, Log: LogConfig{Format: "json"}}, false},
		{"unknown driver", Config{Store: StoreConfig{Driver: "oracle"}, Log: LogConfig{Format: "json"}}, true},
		{"unknown format", Config{Store: StoreConfig{Driver: "memory"}, Log: LogConfig{Format: "xml"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
