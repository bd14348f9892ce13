// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package randomness - random seeds and dna selectors
package randomness

import (
	"crypto/rand"
	"encoding/binary"

	"github.com/sasha-s/go-deadlock"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/kitty"
)

// SeedSize - bytes in a random seed
const SeedSize = 32

// Source - anything that can supply a random seed
type Source interface {
	RandomSeed() [SeedSize]byte
}

// Beacon - rolling blake3 hash chain
//
// each seed is the hash of the previous state and a sequence number
type Beacon struct {
	sync     deadlock.Mutex
	state    [SeedSize]byte
	sequence uint64
}

// NewBeacon - beacon started from the given entropy
func NewBeacon(entropy []byte) *Beacon {
	return &Beacon{
		state: blake3.Sum256(entropy),
	}
}

// NewEntropyBeacon - beacon started from the system random source
func NewEntropyBeacon() (*Beacon, error) {
	entropy := make([]byte, SeedSize)
	if _, err := rand.Read(entropy); nil != err {
		return nil, err
	}
	return NewBeacon(entropy), nil
}

// RandomSeed - advance the chain and return the new state
func (b *Beacon) RandomSeed() [SeedSize]byte {
	b.sync.Lock()
	defer b.sync.Unlock()

	buffer := make([]byte, SeedSize+8)
	copy(buffer, b.state[:])
	binary.BigEndian.PutUint64(buffer[SeedSize:], b.sequence)

	b.sequence += 1
	b.state = blake3.Sum256(buffer)
	return b.state
}

// Fixed - a constant seed
type Fixed [SeedSize]byte

// RandomSeed - always the same value
func (f Fixed) RandomSeed() [SeedSize]byte {
	return f
}

// Selector - 128 bit selector for a caller and call index
//
// blake2b-128 over seed ++ caller ++ little endian index
func Selector(seed [SeedSize]byte, caller *account.Account, index uint32) kitty.DNA {
	h, err := blake2b.New(kitty.DNASize, nil)
	if nil != err {
		panic(err)
	}

	i := make([]byte, 4)
	binary.LittleEndian.PutUint32(i, index)

	h.Write(seed[:])
	h.Write(caller.Bytes())
	h.Write(i)

	dna := kitty.DNA{}
	copy(dna[:], h.Sum(nil))
	return dna
}
