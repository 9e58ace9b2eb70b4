// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"context"
	"strings"

	"github.com/ava-labs/avalanchego/ids"

	"github.com/ava-labs/countervm/chain"
	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/requester"
	"github.com/ava-labs/countervm/runtime"
)

type JSONRPCClient struct {
	requester *requester.EndpointRequester
}

func NewJSONRPCClient(uri string) *JSONRPCClient {
	uri = strings.TrimSuffix(uri, "/")
	uri += JSONRPCEndpoint
	req := requester.New(uri, Name)
	return &JSONRPCClient{requester: req}
}

func (cli *JSONRPCClient) Ping(ctx context.Context) (bool, error) {
	resp := new(PingReply)
	err := cli.requester.SendRequest(ctx,
		"ping",
		nil,
		resp,
	)
	return resp.Success, err
}

func (cli *JSONRPCClient) LatestBlockhash(ctx context.Context) (ids.ID, error) {
	resp := new(LatestBlockhashReply)
	err := cli.requester.SendRequest(
		ctx,
		"latestBlockhash",
		nil,
		resp,
	)
	return resp.Blockhash, err
}

func (cli *JSONRPCClient) Balance(ctx context.Context, addr codec.Address) (uint64, error) {
	resp := new(BalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		"getBalance",
		&AddressArgs{Address: addr},
		resp,
	)
	return resp.Lamports, mapError(err)
}

func (cli *JSONRPCClient) Account(ctx context.Context, addr codec.Address) (*runtime.Account, error) {
	resp := new(AccountReply)
	err := cli.requester.SendRequest(
		ctx,
		"getAccount",
		&AddressArgs{Address: addr},
		resp,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Account, nil
}

func (cli *JSONRPCClient) MinimumBalanceForRentExemption(ctx context.Context, space uint64) (uint64, error) {
	resp := new(BalanceReply)
	err := cli.requester.SendRequest(
		ctx,
		"minimumBalanceForRentExemption",
		&RentArgs{Space: space},
		resp,
	)
	return resp.Lamports, err
}

func (cli *JSONRPCClient) RequestAirdrop(ctx context.Context, to codec.Address, lamports uint64) (ids.ID, error) {
	resp := new(TxReply)
	err := cli.requester.SendRequest(
		ctx,
		"requestAirdrop",
		&AirdropArgs{To: to, Lamports: lamports},
		resp,
	)
	return resp.TxID, mapError(err)
}

func (cli *JSONRPCClient) SubmitTx(ctx context.Context, tx *chain.Transaction) (ids.ID, error) {
	b, err := tx.Bytes()
	if err != nil {
		return ids.Empty, err
	}
	resp := new(TxReply)
	err = cli.requester.SendRequest(
		ctx,
		"submitTx",
		&SubmitTxArgs{Tx: b},
		resp,
	)
	return resp.TxID, mapError(err)
}

func (cli *JSONRPCClient) TxStatus(ctx context.Context, txID ids.ID) (*ledger.Status, error) {
	resp := new(TxStatusReply)
	err := cli.requester.SendRequest(
		ctx,
		"getTxStatus",
		&TxStatusArgs{TxID: txID},
		resp,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Status, nil
}
