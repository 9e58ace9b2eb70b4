// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package trace

import (
	"github.com/ava-labs/avalanchego/trace"

	oteltrace "go.opentelemetry.io/otel/trace"
)

var _ trace.Tracer = noop{}

type noop struct {
	oteltrace.Tracer
}

// Noop returns a tracer whose spans are never recorded.
func Noop(name string) trace.Tracer {
	return noop{Tracer: oteltrace.NewNoopTracerProvider().Tracer(name)}
}

func (noop) Close() error {
	return nil
}
