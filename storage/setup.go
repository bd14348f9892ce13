// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	bolt "go.etcd.io/bbolt"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/kittiesd/fault"
)

// exported storage pools
//
// note all must be exported (i.e. initial capital) or initialisation will panic
type pools struct {
	Kitties      *PoolHandle `prefix:"K"`
	KittiesCount *PoolHandle `prefix:"N"`
	KittyOwners  *PoolHandle `prefix:"O"`
	KittyPrices  *PoolHandle `prefix:"P"`
	OwnedKitties *PoolHandle `prefix:"L"`
	Parents      *PoolHandle `prefix:"R"`
	Children     *PoolHandle `prefix:"C"`
	Partners     *PoolHandle `prefix:"M"`
	Balances     *PoolHandle `prefix:"B"`
	Locks        *PoolHandle `prefix:"F"`
	Genesis      *PoolHandle `prefix:"G"`
	TestData     *PoolHandle `prefix:"Z"`
}

// Pool - the set of exported pools
var Pool pools

// database backends
const (
	BackendLevelDB = "leveldb"
	BackendBolt    = "bolt"
)

// pool access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const currentDBVersion = 0x100

const boltInitialMmapSize = 16 * 1024 * 1024

// holds the database handle
var poolData struct {
	sync.RWMutex
	access Access
	trx    *TransactionData
}

// Initialise - open up the database connection
//
// this must be called before any pool is accessed
// database is the file name without extension
func Initialise(database string, backend string, readOnly bool) error {
	poolData.Lock()
	defer poolData.Unlock()

	if nil != poolData.access {
		return fault.ErrAlreadyInitialised
	}

	var access Access
	var err error
	switch backend {
	case BackendLevelDB, "":
		access, err = openLevelDB(database+".leveldb", readOnly)
	case BackendBolt:
		access, err = openBolt(database+".bolt", readOnly)
	default:
		return fault.ErrInvalidBackend
	}
	if nil != err {
		return err
	}

	ok := false
	defer func() {
		if !ok {
			access.Close()
		}
	}()

	version, err := getVersion(access)
	if nil != err {
		return err
	}

	switch {
	case version > currentDBVersion:
		logger.Criticalf("database version: %d > current version: %d", version, currentDBVersion)
		return fault.ErrVersionMismatch

	case 0 == version && readOnly:
		logger.Criticalf("read only database has no version")
		return fault.ErrVersionMismatch

	case 0 == version:
		// database was empty so tag as current version
		err = putVersion(access, currentDBVersion)
		if nil != err {
			return err
		}

	case version < currentDBVersion:
		logger.Criticalf("database version: %d < current version: %d", version, currentDBVersion)
		return fault.ErrVersionMismatch
	}

	// this will be a struct type
	poolType := reflect.TypeOf(Pool)

	// get write access by using pointer + Elem()
	poolValue := reflect.ValueOf(&Pool).Elem()

	// scan each field
	for i := 0; i < poolType.NumField(); i += 1 {

		fieldInfo := poolType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("pool: %v has invalid prefix: %q", fieldInfo, prefixTag)
		}

		p := &PoolHandle{
			prefix: prefixTag[0],
			access: access,
		}
		poolValue.Field(i).Set(reflect.ValueOf(p))
	}

	poolData.access = access
	poolData.trx = newTransaction(access)

	ok = true // prevent db close
	return nil
}

// Finalise - close the database connection
func Finalise() {
	poolData.Lock()
	defer poolData.Unlock()

	if nil == poolData.access {
		return
	}
	err := poolData.access.Close()
	if nil != err {
		logger.Criticalf("storage close error: %s", err)
	}
	poolData.access = nil
	poolData.trx = nil
	Pool = pools{}
}

// NewDBTransaction - open the single write transaction
func NewDBTransaction() (Transaction, error) {
	poolData.RLock()
	trx := poolData.trx
	poolData.RUnlock()

	if nil == trx {
		return nil, fault.ErrDatabaseIsNotSet
	}
	err := trx.Begin()
	if nil != err {
		return nil, err
	}
	return trx, nil
}

func openLevelDB(name string, readOnly bool) (Access, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, err
	}
	return newLevelDBAccess(db, newCache()), nil
}

func openBolt(name string, readOnly bool) (Access, error) {
	name, err := filepath.Abs(name)
	if nil != err {
		return nil, err
	}

	if readOnly {
		if _, err := os.Stat(name); nil != err {
			return nil, err
		}
	}

	// a commit that must grow the map waits for open snapshots
	db, err := bolt.Open(name, 0600, &bolt.Options{
		Timeout:         time.Second,
		NoFreelistSync:  true,
		ReadOnly:        readOnly,
		InitialMmapSize: boltInitialMmapSize,
	})
	if nil != err {
		return nil, err
	}

	if !readOnly {
		err = db.Update(func(tx *bolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(boltBucket)
			return err
		})
		if nil != err {
			db.Close()
			return nil, err
		}
	}
	return newBoltAccess(db, newCache()), nil
}

// return zero if no version is present
func getVersion(access Access) (int, error) {
	versionValue, err := access.GetDB(versionKey)
	if nil != err {
		return 0, err
	}
	if nil == versionValue {
		return 0, nil
	}

	if 4 != len(versionValue) {
		return 0, fmt.Errorf("incompatible database version length: expected: %d  actual: %d", 4, len(versionValue))
	}

	return int(binary.BigEndian.Uint32(versionValue)), nil
}

func putVersion(access Access, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	err := access.Begin()
	if nil != err {
		return err
	}
	access.Put(versionKey, currentVersion)
	return access.Commit()
}
