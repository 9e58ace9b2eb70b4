// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"net/http"

	"github.com/ava-labs/avalanchego/utils/json"
	"github.com/gorilla/rpc/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ava-labs/countervm/server"
)

func NewJSONRPCHandler(
	name string,
	service interface{},
) (http.Handler, error) {
	server := rpc.NewServer()
	server.RegisterCodec(json.NewCodec(), "application/json")
	server.RegisterCodec(json.NewCodec(), "application/json;charset=UTF-8")
	return server, server.RegisterService(service, name)
}

// Register mounts [service] at [JSONRPCEndpoint] and, if [gatherer] is
// non-nil, the prometheus scrape handler at [MetricsEndpoint].
func Register(s server.PathAdder, service *JSONRPCServer, gatherer prometheus.Gatherer) error {
	handler, err := NewJSONRPCHandler(Name, service)
	if err != nil {
		return err
	}
	if err := s.AddRoute(handler, JSONRPCEndpoint, http.MethodPost); err != nil {
		return err
	}
	if gatherer == nil {
		return nil
	}
	return s.AddRoute(
		promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
		MetricsEndpoint,
		http.MethodGet,
	)
}
