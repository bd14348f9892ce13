// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"

	"github.com/bitmark-inc/logger"
)

// PoolHandle - one prefix table inside the database
type PoolHandle struct {
	prefix byte
	access Access
}

// Reader - point reads against some view of the pools
type Reader interface {
	Get(*PoolHandle, []byte) []byte
	Has(*PoolHandle, []byte) bool
}

// View - reader of committed data, for queries outside a transaction
var View Reader = committedReader{}

type committedReader struct{}

func (committedReader) Get(p *PoolHandle, key []byte) []byte {
	return p.Get(key)
}

func (committedReader) Has(p *PoolHandle, key []byte) bool {
	return p.Has(key)
}

// prepend the prefix onto the key
func (p *PoolHandle) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = p.prefix
	return append(prefixedKey, key...)
}

// Prefix - the prefix byte of this pool
func (p *PoolHandle) Prefix() byte {
	return p.prefix
}

// Get - read a committed value for a given key, nil if absent
func (p *PoolHandle) Get(key []byte) []byte {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.access {
		return nil
	}
	value, err := p.access.GetDB(p.prefixKey(key))
	logger.PanicIfError("pool.Get", err)
	return value
}

// GetN - read a committed record and decode as big endian uint64
//
// second parameter is false if record was not found
// panics if not 8 bytes in the record
func (p *PoolHandle) GetN(key []byte) (uint64, bool) {
	return decodeN(key, p.Get(key))
}

// Has - check if a committed key exists
func (p *PoolHandle) Has(key []byte) bool {
	poolData.RLock()
	defer poolData.RUnlock()
	if nil == p.access {
		return false
	}
	found, err := p.access.HasDB(p.prefixKey(key))
	logger.PanicIfError("pool.Has", err)
	return found
}

func decodeN(key []byte, buffer []byte) (uint64, bool) {
	if nil == buffer {
		return 0, false
	}
	if 8 != len(buffer) {
		logger.Panicf("pool.GetN truncated record for: %x: %x", key, buffer)
	}
	return binary.BigEndian.Uint64(buffer), true
}

func encodeN(value uint64) []byte {
	buffer := make([]byte, 8)
	binary.BigEndian.PutUint64(buffer, value)
	return buffer
}
