// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/pkg/errors"
	bolt "go.etcd.io/bbolt"

	"github.com/bitmark-inc/kittiesd/fault"
)

// all pools share one bucket, separated by their prefix byte
var boltBucket = []byte("kitties")

// BoltAccess - bbolt backend
//
// pending writes live only in the cache and are replayed inside a
// single bolt update on commit
type BoltAccess struct {
	sync.Mutex
	inUse bool
	db    *bolt.DB
	cache Cache
}

func newBoltAccess(db *bolt.DB, cache Cache) *BoltAccess {
	return &BoltAccess{
		inUse: false,
		db:    db,
		cache: cache,
	}
}

func (d *BoltAccess) Begin() error {
	d.Lock()
	defer d.Unlock()

	if d.inUse {
		return fault.ErrTransactionAlreadyOpen
	}

	d.inUse = true
	return nil
}

func (d *BoltAccess) Put(key []byte, value []byte) {
	d.cache.Set(dbPut, string(key), value)
}

func (d *BoltAccess) Delete(key []byte) {
	d.cache.Set(dbDelete, string(key), nil)
}

func (d *BoltAccess) Commit() error {
	d.Lock()
	defer d.Unlock()

	if !d.inUse {
		return fault.ErrTransactionNotOpen
	}

	items := d.cache.Items()
	err := d.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(boltBucket)
		for key, item := range items {
			var err error
			if item.Delete {
				err = bucket.Delete([]byte(key))
			} else {
				err = bucket.Put([]byte(key), item.Value)
			}
			if nil != err {
				return err
			}
		}
		return nil
	})
	d.reset()
	if nil != err {
		return errors.Wrap(err, "bolt update")
	}
	return nil
}

func (d *BoltAccess) Abort() {
	d.Lock()
	defer d.Unlock()

	d.reset()
}

func (d *BoltAccess) reset() {
	d.cache.Clear()
	d.inUse = false
}

func (d *BoltAccess) Get(key []byte) ([]byte, error) {
	value, state := d.cache.Get(string(key))
	switch state {
	case CachePut:
		return value, nil
	case CacheDeleted:
		return nil, nil
	}
	return d.GetDB(key)
}

// GetDB - bolt values are only valid inside the view so copy out
func (d *BoltAccess) GetDB(key []byte) ([]byte, error) {
	var value []byte
	err := d.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(boltBucket).Get(key)
		if nil != v {
			value = make([]byte, len(v))
			copy(value, v)
		}
		return nil
	})
	if nil != err {
		return nil, errors.Wrapf(err, "bolt get: %x", key)
	}
	return value, nil
}

func (d *BoltAccess) Has(key []byte) (bool, error) {
	_, state := d.cache.Get(string(key))
	switch state {
	case CachePut:
		return true, nil
	case CacheDeleted:
		return false, nil
	}
	return d.HasDB(key)
}

func (d *BoltAccess) HasDB(key []byte) (bool, error) {
	found := false
	err := d.db.View(func(tx *bolt.Tx) error {
		found = nil != tx.Bucket(boltBucket).Get(key)
		return nil
	})
	if nil != err {
		return false, errors.Wrapf(err, "bolt has: %x", key)
	}
	return found, nil
}

func (d *BoltAccess) InUse() bool {
	d.Lock()
	defer d.Unlock()
	return d.inUse
}

func (d *BoltAccess) Close() error {
	return d.db.Close()
}
