// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package codec

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/ava-labs/avalanchego/ids"
)

const (
	AddressLen = 33

	// Address type prefixes.
	ED25519ID uint8 = 0
	ProgramID uint8 = 1
	SystemID  uint8 = 2
)

var ErrInvalidAddress = errors.New("invalid address")

// Address identifies an account or a program. The first byte is the
// type prefix, the remaining 32 bytes are the key or program ID.
type Address [AddressLen]byte

var EmptyAddress = Address{}

// CreateAddress returns [Address] made from concatenating
// [typeID] with [id].
func CreateAddress(typeID uint8, id ids.ID) Address {
	var a Address
	a[0] = typeID
	copy(a[1:], id[:])
	return a
}

// TypeID returns the address type prefix.
func (a Address) TypeID() uint8 {
	return a[0]
}

// ID returns the 32 bytes following the type prefix.
func (a Address) ID() ids.ID {
	return ids.ID(a[1:])
}

// ToAddress parses a hex string (with or without the 0x prefix) into an
// Address. Unlike a plain copy, it requires exactly [AddressLen] bytes.
func ToAddress(s string) (Address, error) {
	var a Address
	if err := a.UnmarshalText([]byte(s)); err != nil {
		return EmptyAddress, err
	}
	return a, nil
}

// MustToAddress is [ToAddress] for constants.
func MustToAddress(s string) Address {
	a, err := ToAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// String implements fmt.Stringer.
func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// MarshalText returns the hex representation of a.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText parses a hex-encoded address.
func (a *Address) UnmarshalText(input []byte) error {
	if len(input) >= 2 && input[0] == '0' && (input[1] == 'x' || input[1] == 'X') {
		input = input[2:]
	}
	decoded, err := hex.DecodeString(string(input))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if len(decoded) != AddressLen {
		return fmt.Errorf("%w: expected %d bytes but got %d", ErrInvalidAddress, AddressLen, len(decoded))
	}
	copy(a[:], decoded)
	return nil
}
