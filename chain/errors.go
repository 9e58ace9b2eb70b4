// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import "errors"

var (
	ErrMissingSigner     = errors.New("missing signer key")
	ErrMissingSignature  = errors.New("missing signature")
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrInvalidSigner     = errors.New("signer is not an ed25519 account")
	ErrTooManySigners    = errors.New("too many signers")
	ErrNoInstructions    = errors.New("transaction has no instructions")
	ErrTransactionTooBig = errors.New("transaction too big")
	ErrExtraBytes        = errors.New("transaction has extra bytes")
)
