// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"
	"path"
	"sync"

	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"
	"gopkg.in/natefinch/lumberjack.v2"
)

type logWrapper struct {
	logger       logging.Logger
	displayLevel zap.AtomicLevel
	logLevel     zap.AtomicLevel
}

// logFactory writes each logger to the console and to its own rotated file
// under the configured directory.
type logFactory struct {
	config logging.Config
	lock   sync.RWMutex

	// Logger name --> the logger.
	loggers map[string]logWrapper
}

func newLogFactory(config logging.Config) *logFactory {
	return &logFactory{
		config:  config,
		loggers: make(map[string]logWrapper),
	}
}

func newLoggingConfig(dir string, logLevel string, displayLevel string) (logging.Config, error) {
	config := logging.Config{}
	config.MaxSize = 8 // megabytes
	config.MaxFiles = 7
	config.MaxAge = 30 // days
	config.Directory = dir
	config.LogFormat = logging.Colors
	var err error
	config.LogLevel, err = logging.ToLevel(logLevel)
	if err != nil {
		return logging.Config{}, err
	}
	config.DisplayLevel, err = logging.ToLevel(displayLevel)
	if err != nil {
		return logging.Config{}, err
	}
	return config, nil
}

// Assumes [f.lock] is held
func (f *logFactory) makeLogger(config logging.Config) (logging.Logger, error) {
	if _, ok := f.loggers[config.LoggerName]; ok {
		return nil, fmt.Errorf("logger with name %q already exists", config.LoggerName)
	}
	consoleEnc := config.LogFormat.ConsoleEncoder()
	fileEnc := logging.JSON.FileEncoder()

	consoleCore := logging.NewWrappedCore(config.DisplayLevel, os.Stderr, consoleEnc)

	rw := &lumberjack.Logger{
		Filename:   path.Join(config.Directory, config.LoggerName+".log"),
		MaxSize:    config.MaxSize,  // megabytes
		MaxAge:     config.MaxAge,   // days
		MaxBackups: config.MaxFiles, // files
		Compress:   config.Compress,
	}
	fileCore := logging.NewWrappedCore(config.LogLevel, rw, fileEnc)
	prefix := config.LogFormat.WrapPrefix(config.MsgPrefix)

	l := logging.NewLogger(prefix, consoleCore, fileCore)
	f.loggers[config.LoggerName] = logWrapper{
		logger:       l,
		displayLevel: consoleCore.AtomicLevel,
		logLevel:     fileCore.AtomicLevel,
	}
	return l, nil
}

func (f *logFactory) Make(name string) (logging.Logger, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	config := f.config
	config.LoggerName = name
	return f.makeLogger(config)
}

func (f *logFactory) Close() {
	f.lock.Lock()
	defer f.lock.Unlock()

	for _, lw := range f.loggers {
		lw.logger.Stop()
	}
	f.loggers = nil
}
