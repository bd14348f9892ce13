// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package account

import (
	"crypto/ed25519"

	"github.com/bitmark-inc/kittiesd/fault"
)

// SeedSize - bytes of entropy in a private key seed
const SeedSize = ed25519.SeedSize

// PrivateKey - signing half of an account
type PrivateKey struct {
	privateKey ed25519.PrivateKey
}

// PrivateKeyFromSeed - deterministic key from 32 bytes of seed
func PrivateKeyFromSeed(seed []byte) (*PrivateKey, error) {
	if SeedSize != len(seed) {
		return nil, fault.ErrInvalidKeyLength
	}
	return &PrivateKey{
		privateKey: ed25519.NewKeyFromSeed(seed),
	}, nil
}

// Account - the public account of this key
func (key *PrivateKey) Account() *Account {
	account, _ := FromBytes(key.privateKey.Public().(ed25519.PublicKey))
	return account
}

// Seed - recover the seed for storage
func (key *PrivateKey) Seed() []byte {
	return key.privateKey.Seed()
}

// Sign - ed25519 signature of message
func (key *PrivateKey) Sign(message []byte) Signature {
	return ed25519.Sign(key.privateKey, message)
}
