// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package kitty - the owned, bred and traded creature
package kitty

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"strconv"

	"github.com/bitmark-inc/kittiesd/fault"
)

// DNASize - bytes of dna
const DNASize = 16

// Index - kitty identifier, assigned in sequence from zero
type Index uint32

// MaxIndex - the counter can never reach beyond this value
const MaxIndex = Index(math.MaxUint32)

// IndexSize - bytes in a packed index
const IndexSize = 4

// DNA - immutable 128 bit genome
type DNA [DNASize]byte

// Kitty - an index with its dna
type Kitty struct {
	Id  Index `json:"id"`
	DNA DNA   `json:"dna"`
}

// Bytes - big endian so keys sort by index
func (index Index) Bytes() []byte {
	buffer := make([]byte, IndexSize)
	binary.BigEndian.PutUint32(buffer, uint32(index))
	return buffer
}

// String - decimal
func (index Index) String() string {
	return strconv.FormatUint(uint64(index), 10)
}

// IndexFromBytes - decode a packed index
func IndexFromBytes(buffer []byte) (Index, error) {
	if IndexSize != len(buffer) {
		return 0, fault.ErrRecordCorrupt
	}
	return Index(binary.BigEndian.Uint32(buffer)), nil
}

// DNAFromBytes - decode a packed dna
func DNAFromBytes(buffer []byte) (DNA, error) {
	dna := DNA{}
	if DNASize != len(buffer) {
		return dna, fault.ErrRecordCorrupt
	}
	copy(dna[:], buffer)
	return dna, nil
}

// Combine - each bit of the child comes from parent1 where the
// selector bit is set and from parent2 where it is clear
func Combine(selector DNA, parent1 DNA, parent2 DNA) DNA {
	child := DNA{}
	for i := 0; i < DNASize; i += 1 {
		child[i] = (selector[i] & parent1[i]) | (^selector[i] & parent2[i])
	}
	return child
}

// String - hex
func (dna DNA) String() string {
	return hex.EncodeToString(dna[:])
}

// MarshalText - hex for JSON
func (dna DNA) MarshalText() ([]byte, error) {
	buffer := make([]byte, hex.EncodedLen(DNASize))
	hex.Encode(buffer, dna[:])
	return buffer, nil
}

// UnmarshalText - from hex
func (dna *DNA) UnmarshalText(s []byte) error {
	if hex.EncodedLen(DNASize) != len(s) {
		return fault.ErrRecordCorrupt
	}
	_, err := hex.Decode(dna[:], s)
	return err
}
