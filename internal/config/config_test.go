// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tor2json/internal/config"
)

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadFromFile(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
	require.NoError(t, cfg.Validate())

	cfg, err = config.LoadFromFile("")
	require.NoError(t, err)
	require.Equal(t, config.Default(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(`
[output]
indent = 4
max-files = 100

[fetch]
timeout = "1m30s"

[batch]
workers = 8

[serve]
address = "0.0.0.0:9000"
`), 0o600))

	cfg, err := config.LoadFromFile(p)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, 4, cfg.Output.Indent)
	require.Equal(t, 100, cfg.Output.MaxFiles)
	require.Equal(t, 90*time.Second, cfg.Fetch.Timeout.Std())
	require.Equal(t, config.Default().Fetch.MaxSize, cfg.Fetch.MaxSize)
	require.Equal(t, 8, cfg.Batch.Workers)
	require.Equal(t, "0.0.0.0:9000", cfg.Serve.Address)
}

func TestLoadInvalid(t *testing.T) {
	t.Parallel()

	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(`[fetch]
timeout = "soon"`), 0o600))

	_, err := config.LoadFromFile(p)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Batch.Workers = 0
	require.Error(t, cfg.Validate())

	cfg = config.Default()
	cfg.Output.Indent = -1
	require.Error(t, cfg.Validate())

	cfg = config.Default()
	cfg.Serve.Address = "not an address"
	require.Error(t, cfg.Validate())
}
