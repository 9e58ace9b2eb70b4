// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package chain

import (
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
	"github.com/ava-labs/avalanchego/utils/hashing"
	"github.com/near/borsh-go"

	"github.com/ava-labs/countervm/codec"
	"github.com/ava-labs/countervm/consts"
	"github.com/ava-labs/countervm/crypto/ed25519"
	"github.com/ava-labs/countervm/state"
)

// Message is the signed part of a transaction.
type Message struct {
	// Blockhash must be recent for the transaction to be accepted.
	Blockhash    ids.ID        `json:"blockhash"`
	FeePayer     codec.Address `json:"feePayer"`
	Instructions []Instruction `json:"instructions"`
}

type Signature struct {
	PublicKey ed25519.PublicKey `json:"publicKey"`
	Signature ed25519.Signature `json:"signature"`
}

type Transaction struct {
	Message    Message     `json:"message"`
	Signatures []Signature `json:"signatures"`
}

func NewTx(blockhash ids.ID, feePayer codec.Address, instructions ...Instruction) *Transaction {
	return &Transaction{
		Message: Message{
			Blockhash:    blockhash,
			FeePayer:     feePayer,
			Instructions: instructions,
		},
	}
}

// Digest is the byte string every signer signs.
func (t *Transaction) Digest() ([]byte, error) {
	return borsh.Serialize(t.Message)
}

// Signers returns the accounts that must sign, fee payer first.
func (t *Transaction) Signers() []codec.Address {
	signers := []codec.Address{t.Message.FeePayer}
	seen := map[codec.Address]struct{}{t.Message.FeePayer: {}}
	for _, ix := range t.Message.Instructions {
		for _, meta := range ix.Accounts {
			if !meta.IsSigner {
				continue
			}
			if _, ok := seen[meta.Address]; ok {
				continue
			}
			seen[meta.Address] = struct{}{}
			signers = append(signers, meta.Address)
		}
	}
	return signers
}

// Sign replaces the signatures of t with one signature per required
// signer. keys may contain extra keys.
func (t *Transaction) Sign(keys ...ed25519.PrivateKey) error {
	msg, err := t.Digest()
	if err != nil {
		return err
	}
	byAddress := make(map[codec.Address]ed25519.PrivateKey, len(keys))
	for _, k := range keys {
		byAddress[k.Address()] = k
	}
	signers := t.Signers()
	if len(signers) > consts.MaxSigners {
		return fmt.Errorf("%w: %d > %d", ErrTooManySigners, len(signers), consts.MaxSigners)
	}
	sigs := make([]Signature, 0, len(signers))
	for _, signer := range signers {
		k, ok := byAddress[signer]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingSigner, signer)
		}
		sigs = append(sigs, Signature{
			PublicKey: k.PublicKey(),
			Signature: ed25519.Sign(msg, k),
		})
	}
	t.Signatures = sigs
	return nil
}

// Verify checks that every required signer produced a valid signature over
// the digest.
func (t *Transaction) Verify() error {
	if len(t.Message.Instructions) == 0 {
		return ErrNoInstructions
	}
	msg, err := t.Digest()
	if err != nil {
		return err
	}
	byAddress := make(map[codec.Address]Signature, len(t.Signatures))
	for _, sig := range t.Signatures {
		byAddress[sig.PublicKey.Address()] = sig
	}
	signers := t.Signers()
	if len(signers) > consts.MaxSigners {
		return fmt.Errorf("%w: %d > %d", ErrTooManySigners, len(signers), consts.MaxSigners)
	}

	batch := ed25519.NewBatch(len(signers))
	for _, signer := range signers {
		if signer.TypeID() != codec.ED25519ID {
			return fmt.Errorf("%w: %s", ErrInvalidSigner, signer)
		}
		sig, ok := byAddress[signer]
		if !ok {
			return fmt.Errorf("%w: %s", ErrMissingSignature, signer)
		}
		if len(signers) < ed25519.MinBatchSize {
			if !ed25519.Verify(msg, sig.PublicKey, sig.Signature) {
				return fmt.Errorf("%w: %s", ErrInvalidSignature, signer)
			}
			continue
		}
		batch.Add(msg, sig.PublicKey, sig.Signature)
	}
	if len(signers) >= ed25519.MinBatchSize && !batch.Verify() {
		return ErrInvalidSignature
	}
	return nil
}

// IsSigner reports whether addr signed t.
func (t *Transaction) IsSigner(addr codec.Address) bool {
	for _, sig := range t.Signatures {
		if sig.PublicKey.Address() == addr {
			return true
		}
	}
	return false
}

func (t *Transaction) Bytes() ([]byte, error) {
	return borsh.Serialize(*t)
}

// ID is the hash of the signed transaction bytes.
func (t *Transaction) ID() (ids.ID, error) {
	b, err := t.Bytes()
	if err != nil {
		return ids.Empty, err
	}
	return ids.ID(hashing.ComputeHash256Array(b)), nil
}

// StateKeys returns the account keys t touches. The fee payer is always
// written.
func (t *Transaction) StateKeys() state.Keys {
	keys := make(state.Keys)
	keys.Add(string(state.AccountKey(t.Message.FeePayer)), state.Write)
	for _, ix := range t.Message.Instructions {
		keys.Add(string(state.AccountKey(ix.ProgramID)), state.Read)
		for _, meta := range ix.Accounts {
			perm := state.Read
			if meta.IsWritable {
				perm = state.Write
			}
			keys.Add(string(state.AccountKey(meta.Address)), perm)
		}
	}
	return keys
}

// UnmarshalTx parses a signed transaction, rejecting oversized inputs and
// trailing bytes.
func UnmarshalTx(b []byte) (*Transaction, error) {
	if len(b) > consts.MaxTxSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrTransactionTooBig, len(b), consts.MaxTxSize)
	}
	tx := new(Transaction)
	if err := borsh.Deserialize(tx, b); err != nil {
		return nil, err
	}
	canonical, err := tx.Bytes()
	if err != nil {
		return nil, err
	}
	if len(canonical) != len(b) {
		return nil, ErrExtraBytes
	}
	return tx, nil
}
