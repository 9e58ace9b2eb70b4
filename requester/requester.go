// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package requester

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ava-labs/avalanchego/utils/rpc"
)

// EndpointRequester sends JSON-RPC requests for one service to one
// endpoint.
type EndpointRequester struct {
	uri  string
	base string
}

// New returns a requester for service [base] served at [uri]. Method names
// are sent as "<base>.<method>".
func New(uri, base string) *EndpointRequester {
	return &EndpointRequester{
		uri:  uri,
		base: base,
	}
}

func (e *EndpointRequester) SendRequest(
	ctx context.Context,
	method string,
	params interface{},
	reply interface{},
	options ...rpc.Option,
) error {
	uri, err := url.Parse(e.uri)
	if err != nil {
		return err
	}
	return rpc.SendJSONRequest(
		ctx,
		uri,
		fmt.Sprintf("%s.%s", e.base, method),
		params,
		reply,
		options...,
	)
}
