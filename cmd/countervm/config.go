// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/ava-labs/avalanchego/utils/profiler"

	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/pebble"
	"github.com/ava-labs/countervm/server"
	"github.com/ava-labs/countervm/trace"
)

type Config struct {
	TraceConfig              trace.Config      `json:"traceConfig"`
	ContinuousProfilerConfig profiler.Config   `json:"continuousProfilerConfig"`
	HTTPHost                 string            `json:"httpHost"`
	HTTPPort                 uint16            `json:"httpPort"`
	HTTPConfig               server.HTTPConfig `json:"httpConfig"`
	AllowedOrigins           []string          `json:"allowedOrigins"`
	ShutdownTimeout          time.Duration     `json:"shutdownTimeout"`
	// DataDir holds the pebble database. Account state is kept in memory
	// when it is empty.
	DataDir      string        `json:"dataDir"`
	PebbleConfig pebble.Config `json:"pebbleConfig"`
	LogDir       string        `json:"logDir"`
	LogLevel     string        `json:"logLevel"`
	LogDisplay   string        `json:"logDisplayLevel"`
	Ledger       ledger.Config `json:"ledger"`
}

func NewConfig() Config {
	return Config{
		TraceConfig:              trace.NewConfig(consts.Name),
		ContinuousProfilerConfig: profiler.Config{Enabled: false},
		HTTPHost:                 "127.0.0.1",
		HTTPPort:                 8899,
		HTTPConfig:               server.NewHTTPConfig(),
		AllowedOrigins:           []string{"*"},
		ShutdownTimeout:          10 * time.Second,
		PebbleConfig:             pebble.NewDefaultConfig(),
		LogDir:                   "logs",
		LogLevel:                 "info",
		LogDisplay:               "info",
		Ledger:                   ledger.NewConfig(),
	}
}

// LoadConfig overlays the JSON file at [path] onto the defaults. An empty
// path returns the defaults.
func LoadConfig(path string) (Config, error) {
	config := NewConfig()
	if len(path) == 0 {
		return config, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := json.Unmarshal(b, &config); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.HTTPHost, c.HTTPPort)
}
