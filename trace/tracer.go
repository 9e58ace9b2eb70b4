// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ava-labs/avalanchego/trace"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const (
	exportTimeout = 10 * time.Second
	// Longer than [exportTimeout] so a running export can finish.
	shutdownTimeout = 15 * time.Second

	DefaultEndpoint = "http://localhost:9411/api/v2/spans"
)

var ErrInvalidSampleRate = errors.New("sample rate must be in [0, 1]")

// Config selects between a noop tracer and one exporting to a zipkin
// collector.
type Config struct {
	Enabled bool `json:"enabled"`

	// Fraction of transactions whose spans are exported.
	TraceSampleRate float64 `json:"traceSampleRate"`
	Endpoint        string  `json:"endpoint"`

	AppName string `json:"appName"`
	Agent   string `json:"agent"`
	Version string `json:"version"`
}

// NewConfig returns a disabled config which, once enabled, samples every
// trace and exports to a local collector.
func NewConfig(appName string) Config {
	return Config{
		TraceSampleRate: 1,
		Endpoint:        DefaultEndpoint,
		AppName:         appName,
		Agent:           appName,
	}
}

func (c *Config) Verify() error {
	if c.TraceSampleRate < 0 || c.TraceSampleRate > 1 {
		return fmt.Errorf("%w: %f", ErrInvalidSampleRate, c.TraceSampleRate)
	}
	return nil
}

type tracer struct {
	oteltrace.Tracer

	tp *sdktrace.TracerProvider
}

func (t *tracer) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return t.tp.Shutdown(ctx)
}

// New returns the tracer described by config. Spans are batched and
// exported in the background; Close flushes them.
func New(config *Config) (trace.Tracer, error) {
	if !config.Enabled {
		return Noop(config.AppName), nil
	}
	if err := config.Verify(); err != nil {
		return nil, err
	}

	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	exporter, err := zipkin.New(endpoint)
	if err != nil {
		return nil, err
	}
	agent := config.Agent
	if agent == "" {
		agent = config.AppName
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithExportTimeout(exportTimeout)),
		sdktrace.WithResource(resource.NewWithAttributes(
			semconv.SchemaURL,
			attribute.String("version", config.Version),
			semconv.ServiceNameKey.String(agent),
		)),
		sdktrace.WithSampler(sdktrace.TraceIDRatioBased(config.TraceSampleRate)),
	)
	return &tracer{
		Tracer: tp.Tracer(config.AppName),
		tp:     tp,
	}, nil
}
