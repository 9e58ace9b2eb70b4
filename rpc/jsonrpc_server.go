// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package rpc

import (
	"net/http"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/trace"
	"github.com/ava-labs/avalanchego/utils/logging"
	"go.uber.org/zap"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/ledger"
	"github.com/ava-labs/countervm/runtime"
)

type JSONRPCServer struct {
	log    logging.Logger
	tracer trace.Tracer
	ledger *ledger.Ledger
}

func NewJSONRPCServer(log logging.Logger, tracer trace.Tracer, l *ledger.Ledger) *JSONRPCServer {
	return &JSONRPCServer{
		log:    log,
		tracer: tracer,
		ledger: l,
	}
}

type PingReply struct {
	Success bool `json:"success"`
}

func (j *JSONRPCServer) Ping(_ *http.Request, _ *struct{}, reply *PingReply) (err error) {
	j.log.Info("ping")
	reply.Success = true
	return nil
}

type LatestBlockhashReply struct {
	Blockhash ids.ID `json:"blockhash"`
	Height    uint64 `json:"height"`
}

func (j *JSONRPCServer) LatestBlockhash(_ *http.Request, _ *struct{}, reply *LatestBlockhashReply) error {
	reply.Blockhash = j.ledger.LatestBlockhash()
	reply.Height = j.ledger.Height()
	return nil
}

type AddressArgs struct {
	Address codec.Address `json:"address"`
}

type BalanceReply struct {
	Lamports uint64 `json:"lamports"`
}

func (j *JSONRPCServer) GetBalance(req *http.Request, args *AddressArgs, reply *BalanceReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.GetBalance")
	defer span.End()

	balance, err := j.ledger.GetBalance(ctx, args.Address)
	if err != nil {
		return err
	}
	reply.Lamports = balance
	return nil
}

type AccountReply struct {
	Account *runtime.Account `json:"account"`
}

func (j *JSONRPCServer) GetAccount(req *http.Request, args *AddressArgs, reply *AccountReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.GetAccount")
	defer span.End()

	a, err := j.ledger.GetAccount(ctx, args.Address)
	if err != nil {
		return err
	}
	reply.Account = a
	return nil
}

type RentArgs struct {
	Space uint64 `json:"space"`
}

func (j *JSONRPCServer) MinimumBalanceForRentExemption(_ *http.Request, args *RentArgs, reply *BalanceReply) error {
	reply.Lamports = j.ledger.MinimumBalanceForRentExemption(args.Space)
	return nil
}

type AirdropArgs struct {
	To       codec.Address `json:"to"`
	Lamports uint64        `json:"lamports"`
}

type TxReply struct {
	TxID ids.ID `json:"txId"`
}

func (j *JSONRPCServer) RequestAirdrop(req *http.Request, args *AirdropArgs, reply *TxReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.RequestAirdrop")
	defer span.End()

	txID, err := j.ledger.RequestAirdrop(ctx, args.To, args.Lamports)
	if err != nil {
		return err
	}
	reply.TxID = txID
	return nil
}

type SubmitTxArgs struct {
	Tx []byte `json:"tx"`
}

func (j *JSONRPCServer) SubmitTx(req *http.Request, args *SubmitTxArgs, reply *TxReply) error {
	ctx, span := j.tracer.Start(req.Context(), "JSONRPCServer.SubmitTx")
	defer span.End()

	txID, err := j.ledger.SubmitBytes(ctx, args.Tx)
	if err != nil {
		j.log.Debug("rejected transaction", zap.Error(err))
		return err
	}
	reply.TxID = txID
	return nil
}

type TxStatusArgs struct {
	TxID ids.ID `json:"txId"`
}

type TxStatusReply struct {
	Status *ledger.Status `json:"status"`
}

func (j *JSONRPCServer) GetTxStatus(_ *http.Request, args *TxStatusArgs, reply *TxStatusReply) error {
	status, err := j.ledger.Status(args.TxID)
	if err != nil {
		return err
	}
	reply.Status = status
	return nil
}
