// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	Read  Permissions = 1
	Write             = 1<<1 | Read

	None Permissions = 0
	All              = Read | Write
)

// Permissions is the access a transaction declares on a key.
type Permissions byte

// Has returns true if [p] has all the permissions that are contained in require
func (p Permissions) Has(require Permissions) bool {
	return require&^p == 0
}

// Keys is the access set of a transaction.
type Keys map[string]Permissions

// Add unions [permission] into the permissions already held for [name].
func (k Keys) Add(name string, permission Permissions) {
	k[name] |= permission
}

// Sorted returns the keys in a stable order, which callers use to acquire
// locks without deadlocking against each other.
func (k Keys) Sorted() []string {
	names := maps.Keys(k)
	slices.Sort(names)
	return names
}
