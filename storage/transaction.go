// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittiesd/fault"
)

// Transaction - all-or-nothing group of pool writes
//
// reads through the transaction see its own pending writes
type Transaction interface {
	Reader
	Abort()
	Begin() error
	Commit() error
	Delete(*PoolHandle, []byte)
	GetN(*PoolHandle, []byte) (uint64, bool)
	InUse() bool
	Put(*PoolHandle, []byte, []byte)
	PutN(*PoolHandle, []byte, uint64)
}

// TransactionData - transaction over a single database access
type TransactionData struct {
	sync.Mutex
	inUse  bool
	access Access
}

func newTransaction(access Access) *TransactionData {
	return &TransactionData{
		inUse:  false,
		access: access,
	}
}

func (t *TransactionData) Begin() error {
	t.Lock()
	defer t.Unlock()

	if t.inUse {
		return fault.ErrTransactionAlreadyOpen
	}

	err := t.access.Begin()
	if nil != err {
		return err
	}

	t.inUse = true
	return nil
}

func (t *TransactionData) Put(p *PoolHandle, key []byte, value []byte) {
	t.access.Put(p.prefixKey(key), value)
}

func (t *TransactionData) PutN(p *PoolHandle, key []byte, value uint64) {
	t.access.Put(p.prefixKey(key), encodeN(value))
}

func (t *TransactionData) Delete(p *PoolHandle, key []byte) {
	t.access.Delete(p.prefixKey(key))
}

func (t *TransactionData) Get(p *PoolHandle, key []byte) []byte {
	value, err := t.access.Get(p.prefixKey(key))
	logger.PanicIfError("transaction.Get", err)
	return value
}

func (t *TransactionData) GetN(p *PoolHandle, key []byte) (uint64, bool) {
	return decodeN(key, t.Get(p, key))
}

func (t *TransactionData) Has(p *PoolHandle, key []byte) bool {
	found, err := t.access.Has(p.prefixKey(key))
	logger.PanicIfError("transaction.Has", err)
	return found
}

// Commit - write all pending data; the transaction is closed even on error
func (t *TransactionData) Commit() error {
	t.Lock()
	defer t.Unlock()

	if !t.inUse {
		return fault.ErrTransactionNotOpen
	}

	t.inUse = false
	return t.access.Commit()
}

// Abort - discard all pending data
func (t *TransactionData) Abort() {
	t.Lock()
	defer t.Unlock()

	t.access.Abort()
	t.inUse = false
}

func (t *TransactionData) InUse() bool {
	t.Lock()
	defer t.Unlock()
	return t.inUse
}
