// Copyright 2024 trim21 <trim21.me@gmail.com>
// SPDX-License-Identifier: GPL-3.0-only

package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/docker/go-units"
	"github.com/go-playground/validator/v10"
	"github.com/trim21/errgo"
)

type Output struct {
	Indent int `toml:"indent" validate:"gte=0,lte=16"`
	// 0 means no limit
	MaxFiles int `toml:"max-files" validate:"gte=0"`
}

type Fetch struct {
	UserAgent string   `toml:"user-agent"`
	Timeout   Duration `toml:"timeout" validate:"gt=0"`
	MaxSize   int64    `toml:"max-size" validate:"gt=0"`
}

type Batch struct {
	Workers int `toml:"workers" validate:"gte=1,lte=256"`
}

type Serve struct {
	Address   string `toml:"address" validate:"required,hostname_port"`
	CacheSize int    `toml:"cache-size" validate:"gte=1"`
	MaxBody   int64  `toml:"max-body" validate:"gt=0"`
}

type Config struct {
	Output Output `toml:"output"`
	Fetch  Fetch  `toml:"fetch"`
	Batch  Batch  `toml:"batch"`
	Serve  Serve  `toml:"serve"`
}

func Default() Config {
	return Config{
		Output: Output{Indent: 2},
		Fetch: Fetch{
			UserAgent: "tor2json (https://github.com/trim21/tor2json)",
			Timeout:   Duration(30 * time.Second),
			MaxSize:   64 * units.MiB,
		},
		Batch: Batch{Workers: 4},
		Serve: Serve{
			Address:   "127.0.0.1:8002",
			CacheSize: 1024,
			MaxBody:   16 * units.MiB,
		},
	}
}

// LoadFromFile reads a toml config, a missing file gives default config.
func LoadFromFile(path string) (Config, error) {
	var cfg = Default()

	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}

		return Config{}, errgo.Wrap(err, "failed to read config file")
	}

	if err := toml.Unmarshal(raw, &cfg); err != nil {
		return cfg, errgo.Wrap(err, "failed to parse config file")
	}

	return cfg, nil
}

var validate = validator.New()

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errgo.Wrap(err, "invalid config")
	}

	return nil
}

// Duration accepts strings like "30s" or "1m30s".
type Duration time.Duration

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}

	*d = Duration(v)

	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}
