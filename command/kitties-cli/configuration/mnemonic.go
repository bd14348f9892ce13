// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"crypto/rand"
	"io"

	"github.com/tyler-smith/go-bip39"
	"github.com/zeebo/blake3"

	"github.com/bitmark-inc/kittiesd/fault"
)

// bytes of entropy behind a twelve word phrase
const mnemonicEntropySize = 16

// NewMnemonic - random recovery phrase and the key seed it derives
func NewMnemonic() (string, []byte, error) {
	entropy := make([]byte, mnemonicEntropySize)
	if _, err := io.ReadFull(rand.Reader, entropy); nil != err {
		return "", nil, err
	}

	phrase, err := bip39.NewMnemonic(entropy)
	if nil != err {
		return "", nil, err
	}

	seed := blake3.Sum256(entropy)
	return phrase, seed[:], nil
}

// SeedFromMnemonic - recover the key seed of a phrase
func SeedFromMnemonic(phrase string) ([]byte, error) {
	entropy, err := bip39.EntropyFromMnemonic(phrase)
	if nil != err {
		return nil, fault.ErrInvalidMnemonic
	}

	seed := blake3.Sum256(entropy)
	return seed[:], nil
}
