// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/syndtr/goleveldb/leveldb"
)

const (
	defaultKey = "key"
)

var (
	defaultValue = []byte{'a'}
)

func setupTestLevelDBAccess(t *testing.T, cache Cache) (*LevelDBAccess, *leveldb.DB) {
	setupTestLogger()
	db, err := leveldb.OpenFile(filepath.Join(testingDirName, "access.leveldb"), nil)
	if nil != err {
		t.Fatalf("open leveldb error: %s", err)
	}
	return newLevelDBAccess(db, cache), db
}

func teardownTestLevelDBAccess(db *leveldb.DB) {
	_ = db.Close()
	teardownTestLogger()
}

func TestBeginShouldErrorWhenAlreadyInTransaction(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	da, db := setupTestLevelDBAccess(t, NewMockCache(ctl))
	defer teardownTestLevelDBAccess(db)

	err := da.Begin()
	assert.Nil(t, err, "first time Begin should not error")

	err = da.Begin()
	assert.NotNil(t, err, "second time Begin should return error")
}

func TestCommitResetsTransaction(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	mc := NewMockCache(ctl)
	mc.EXPECT().Set(dbPut, defaultKey, defaultValue).Times(1)
	mc.EXPECT().Clear().Times(1)

	da, db := setupTestLevelDBAccess(t, mc)
	defer teardownTestLevelDBAccess(db)

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)
	err := da.Commit()
	assert.Nil(t, err, "commit error")

	assert.False(t, da.InUse(), "commit did not reset in use")
	assert.Equal(t, 0, da.batch.Len(), "commit did not reset batch")

	actual, _ := db.Get([]byte(defaultKey), nil)
	assert.Equal(t, defaultValue, actual, "commit did not write to db")
}

func TestCommitWithoutBegin(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	da, db := setupTestLevelDBAccess(t, NewMockCache(ctl))
	defer teardownTestLevelDBAccess(db)

	assert.NotNil(t, da.Commit(), "commit without begin")
}

func TestAbortDiscardsBatch(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	mc := NewMockCache(ctl)
	mc.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	mc.EXPECT().Clear().Times(1)

	da, db := setupTestLevelDBAccess(t, mc)
	defer teardownTestLevelDBAccess(db)

	_ = da.Begin()
	da.Put([]byte(defaultKey), defaultValue)
	da.Abort()

	found, _ := db.Has([]byte(defaultKey), nil)
	assert.False(t, found, "abort wrote to db")
	assert.False(t, da.InUse(), "abort did not reset in use")
}

func TestGetPrefersCache(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	mc := NewMockCache(ctl)
	da, db := setupTestLevelDBAccess(t, mc)
	defer teardownTestLevelDBAccess(db)

	_ = db.Put([]byte(defaultKey), []byte("stored"), nil)

	mc.EXPECT().Get(defaultKey).Return(defaultValue, CachePut).Times(1)
	actual, err := da.Get([]byte(defaultKey))
	assert.Nil(t, err, "get error")
	assert.Equal(t, defaultValue, actual, "cached value not returned")

	mc.EXPECT().Get(defaultKey).Return(nil, CacheMiss).Times(1)
	actual, err = da.Get([]byte(defaultKey))
	assert.Nil(t, err, "get error")
	assert.Equal(t, []byte("stored"), actual, "db value not returned")

	actual, err = da.GetDB([]byte(defaultKey))
	assert.Nil(t, err, "get db error")
	assert.Equal(t, []byte("stored"), actual, "db value not returned")
}

func TestDeletedKeyIsNotFound(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	mc := NewMockCache(ctl)
	da, db := setupTestLevelDBAccess(t, mc)
	defer teardownTestLevelDBAccess(db)

	_ = db.Put([]byte(defaultKey), defaultValue, nil)

	mc.EXPECT().Get(defaultKey).Return(nil, CacheDeleted).Times(2)

	actual, err := da.Get([]byte(defaultKey))
	assert.Nil(t, err, "get error")
	assert.Nil(t, actual, "deleted key returned a value")

	found, err := da.Has([]byte(defaultKey))
	assert.Nil(t, err, "has error")
	assert.False(t, found, "deleted key reported as present")

	found, err = da.HasDB([]byte(defaultKey))
	assert.Nil(t, err, "has db error")
	assert.True(t, found, "committed key missing")
}

func TestMissingKey(t *testing.T) {
	ctl := gomock.NewController(t)
	defer ctl.Finish()

	mc := NewMockCache(ctl)
	mc.EXPECT().Get(gomock.Any()).Return(nil, CacheMiss).AnyTimes()

	da, db := setupTestLevelDBAccess(t, mc)
	defer teardownTestLevelDBAccess(db)

	actual, err := da.Get([]byte("/nonexistent"))
	assert.Nil(t, err, "missing key is not an error")
	assert.Nil(t, actual, "missing key has value")

	found, err := da.Has([]byte("/nonexistent"))
	assert.Nil(t, err, "has error")
	assert.False(t, found, "missing key found")
}
