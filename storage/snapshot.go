// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	bolt "go.etcd.io/bbolt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittiesd/fault"
)

// Snapshot - reader fixed at the committed state of the moment it
// was opened, commits made afterwards are not visible
//
// Release must be called when the query is finished
type Snapshot interface {
	Reader
	Release()
}

// backend side of a snapshot, keys already carry the pool prefix
type accessSnapshot interface {
	Get([]byte) ([]byte, error)
	Has([]byte) (bool, error)
	Release()
}

// NewSnapshot - open a consistent view of committed data
func NewSnapshot() (Snapshot, error) {
	poolData.RLock()
	defer poolData.RUnlock()

	if nil == poolData.access {
		return nil, fault.ErrDatabaseIsNotSet
	}
	s, err := poolData.access.Snapshot()
	if nil != err {
		return nil, err
	}
	return &snapshotReader{snapshot: s}, nil
}

type snapshotReader struct {
	snapshot accessSnapshot
}

func (r *snapshotReader) Get(p *PoolHandle, key []byte) []byte {
	value, err := r.snapshot.Get(p.prefixKey(key))
	logger.PanicIfError("snapshot.Get", err)
	return value
}

func (r *snapshotReader) Has(p *PoolHandle, key []byte) bool {
	found, err := r.snapshot.Has(p.prefixKey(key))
	logger.PanicIfError("snapshot.Has", err)
	return found
}

func (r *snapshotReader) Release() {
	r.snapshot.Release()
}

// leveldb

type levelDBSnapshot struct {
	snapshot *leveldb.Snapshot
}

func (d *LevelDBAccess) Snapshot() (accessSnapshot, error) {
	s, err := d.db.GetSnapshot()
	if nil != err {
		return nil, errors.Wrap(err, "leveldb snapshot")
	}
	return &levelDBSnapshot{snapshot: s}, nil
}

func (s *levelDBSnapshot) Get(key []byte) ([]byte, error) {
	value, err := s.snapshot.Get(key, nil)
	if leveldb.ErrNotFound == err {
		return nil, nil
	}
	if nil != err {
		return nil, errors.Wrapf(err, "leveldb snapshot get: %x", key)
	}
	return value, nil
}

func (s *levelDBSnapshot) Has(key []byte) (bool, error) {
	found, err := s.snapshot.Has(key, nil)
	if nil != err {
		return false, errors.Wrapf(err, "leveldb snapshot has: %x", key)
	}
	return found, nil
}

func (s *levelDBSnapshot) Release() {
	s.snapshot.Release()
}

// bolt: a read only transaction held open until release

type boltSnapshot struct {
	tx *bolt.Tx
}

func (d *BoltAccess) Snapshot() (accessSnapshot, error) {
	tx, err := d.db.Begin(false)
	if nil != err {
		return nil, errors.Wrap(err, "bolt snapshot")
	}
	return &boltSnapshot{tx: tx}, nil
}

func (s *boltSnapshot) Get(key []byte) ([]byte, error) {
	bucket := s.tx.Bucket(boltBucket)
	if nil == bucket {
		return nil, nil
	}
	v := bucket.Get(key)
	if nil == v {
		return nil, nil
	}
	value := make([]byte, len(v))
	copy(value, v)
	return value, nil
}

func (s *boltSnapshot) Has(key []byte) (bool, error) {
	bucket := s.tx.Bucket(boltBucket)
	if nil == bucket {
		return false, nil
	}
	return nil != bucket.Get(key), nil
}

func (s *boltSnapshot) Release() {
	_ = s.tx.Rollback()
}
