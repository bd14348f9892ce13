// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package linkedlist_test

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/kittiesd/fault"
	"github.com/bitmark-inc/kittiesd/linkedlist"
	"github.com/bitmark-inc/kittiesd/storage"
)

const (
	testingDirName = "testing"
)

type bucketCodec struct{}

func (bucketCodec) Size() int { return 2 }
func (bucketCodec) Encode(b uint16) []byte {
	buffer := make([]byte, 2)
	binary.BigEndian.PutUint16(buffer, b)
	return buffer
}
func (bucketCodec) Decode(buffer []byte) (uint16, error) {
	return binary.BigEndian.Uint16(buffer), nil
}

type valueCodec struct{}

func (valueCodec) Size() int { return 4 }
func (valueCodec) Encode(v uint32) []byte {
	buffer := make([]byte, 4)
	binary.BigEndian.PutUint32(buffer, v)
	return buffer
}
func (valueCodec) Decode(buffer []byte) (uint32, error) {
	return binary.BigEndian.Uint32(buffer), nil
}

// counts every storage operation made through a transaction
type countingTransaction struct {
	storage.Transaction
	operations int
}

func (c *countingTransaction) Get(p *storage.PoolHandle, key []byte) []byte {
	c.operations += 1
	return c.Transaction.Get(p, key)
}

func (c *countingTransaction) Has(p *storage.PoolHandle, key []byte) bool {
	c.operations += 1
	return c.Transaction.Has(p, key)
}

func (c *countingTransaction) Put(p *storage.PoolHandle, key []byte, value []byte) {
	c.operations += 1
	c.Transaction.Put(p, key, value)
}

func (c *countingTransaction) Delete(p *storage.PoolHandle, key []byte) {
	c.operations += 1
	c.Transaction.Delete(p, key)
}

func setup(t *testing.T) *linkedlist.List[uint16, uint32] {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}
	_ = logger.Initialise(logging)

	err := storage.Initialise(filepath.Join(testingDirName, "list"), storage.BackendLevelDB, storage.ReadWrite)
	if nil != err {
		t.Fatalf("storage initialise error: %s", err)
	}
	return linkedlist.New[uint16, uint32](storage.Pool.TestData, bucketCodec{}, valueCodec{})
}

func teardown() {
	storage.Finalise()
	removeFiles()
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func newTransaction(t *testing.T) storage.Transaction {
	trx, err := storage.NewDBTransaction()
	if nil != err {
		t.Fatalf("new transaction error: %s", err)
	}
	return trx
}

func appendAll(t *testing.T, list *linkedlist.List[uint16, uint32], bucket uint16, values ...uint32) {
	trx := newTransaction(t)
	for _, v := range values {
		err := list.Append(trx, bucket, v)
		if nil != err {
			trx.Abort()
			t.Fatalf("append %d error: %s", v, err)
		}
	}
	if err := trx.Commit(); nil != err {
		t.Fatalf("commit error: %s", err)
	}
}

// forward traversal visits every element once and contains agrees with it
func checkIntegrity(t *testing.T, list *linkedlist.List[uint16, uint32], bucket uint16, expected []uint32) {
	actual, err := list.All(storage.View, bucket)
	assert.Nil(t, err, "traversal error")
	assert.Equal(t, expected, actual, "wrong elements for bucket: %d", bucket)

	for _, v := range expected {
		assert.True(t, list.Contains(storage.View, bucket, v), "missing: %d", v)
	}
}

func TestEmptyList(t *testing.T) {
	list := setup(t)
	defer teardown()

	checkIntegrity(t, list, 1, []uint32{})
	assert.False(t, list.Contains(storage.View, 1, 0), "empty list contains zero")

	iter := list.Enumerate(storage.View, 1)
	_, ok := iter.Next()
	assert.False(t, ok, "empty list has element")
	_, ok = iter.Next()
	assert.False(t, ok, "finished iterator restarted")
	assert.Nil(t, iter.Err(), "empty list error")
}

func TestAppendKeepsOrder(t *testing.T) {
	list := setup(t)
	defer teardown()

	appendAll(t, list, 1, 5, 3, 9)
	appendAll(t, list, 2, 3)

	checkIntegrity(t, list, 1, []uint32{5, 3, 9})
	checkIntegrity(t, list, 2, []uint32{3})
	assert.False(t, list.Contains(storage.View, 2, 5), "buckets share elements")
}

func TestAppendDuplicate(t *testing.T) {
	list := setup(t)
	defer teardown()

	appendAll(t, list, 1, 5)

	trx := newTransaction(t)
	err := list.Append(trx, 1, 5)
	trx.Abort()
	assert.Equal(t, fault.ErrListItemExists, err, "duplicate append")

	checkIntegrity(t, list, 1, []uint32{5})
}

func TestRemovePositions(t *testing.T) {
	list := setup(t)
	defer teardown()

	appendAll(t, list, 1, 1, 2, 3, 4, 5)

	removals := []struct {
		value    uint32
		expected []uint32
	}{
		{3, []uint32{1, 2, 4, 5}}, // middle
		{1, []uint32{2, 4, 5}},    // first
		{5, []uint32{2, 4}},       // last
		{2, []uint32{4}},
		{4, []uint32{}}, // only
	}

	for _, r := range removals {
		trx := newTransaction(t)
		err := list.Remove(trx, 1, r.value)
		assert.Nil(t, err, "remove: %d", r.value)
		assert.Nil(t, trx.Commit(), "commit")

		checkIntegrity(t, list, 1, r.expected)
		assert.False(t, list.Contains(storage.View, 1, r.value), "removed still present: %d", r.value)
	}

	// sentinel is gone once empty
	assert.False(t, storage.Pool.TestData.Has([]byte{0, 1, 0}), "sentinel left behind")

	// reusable after becoming empty
	appendAll(t, list, 1, 7, 8)
	checkIntegrity(t, list, 1, []uint32{7, 8})
}

func TestRemoveAbsent(t *testing.T) {
	list := setup(t)
	defer teardown()

	appendAll(t, list, 1, 1)

	trx := newTransaction(t)
	err := list.Remove(trx, 1, 2)
	trx.Abort()
	assert.Equal(t, fault.ErrListItemNotFound, err, "remove absent")
}

func TestMoveBetweenBucketsInOneTransaction(t *testing.T) {
	list := setup(t)
	defer teardown()

	appendAll(t, list, 1, 10, 11, 12)

	trx := newTransaction(t)
	assert.Nil(t, list.Remove(trx, 1, 11), "remove")
	assert.Nil(t, list.Append(trx, 2, 11), "append")

	// pending state visible through the transaction only
	assert.True(t, list.Contains(trx, 2, 11), "pending append")
	assert.False(t, list.Contains(trx, 1, 11), "pending remove")
	assert.True(t, list.Contains(storage.View, 1, 11), "pending remove visible outside")
	pending, err := list.All(trx, 1)
	assert.Nil(t, err, "pending traversal")
	assert.Equal(t, []uint32{10, 12}, pending, "pending traversal")

	assert.Nil(t, trx.Commit(), "commit")

	checkIntegrity(t, list, 1, []uint32{10, 12})
	checkIntegrity(t, list, 2, []uint32{11})
}

func TestAbortLeavesListUnchanged(t *testing.T) {
	list := setup(t)
	defer teardown()

	appendAll(t, list, 1, 1, 2, 3)

	trx := newTransaction(t)
	assert.Nil(t, list.Remove(trx, 1, 2), "remove")
	assert.Nil(t, list.Append(trx, 1, 4), "append")
	trx.Abort()

	checkIntegrity(t, list, 1, []uint32{1, 2, 3})
}

func TestEnumerateIsRestartable(t *testing.T) {
	list := setup(t)
	defer teardown()

	appendAll(t, list, 1, 1, 2, 3)

	first := list.Enumerate(storage.View, 1)
	v, ok := first.Next()
	assert.True(t, ok, "first element")
	assert.Equal(t, uint32(1), v, "first element")

	all, err := list.All(storage.View, 1)
	assert.Nil(t, err, "second traversal")
	assert.Equal(t, []uint32{1, 2, 3}, all, "second traversal starts again")

	v, ok = first.Next()
	assert.True(t, ok, "first traversal continues")
	assert.Equal(t, uint32(2), v, "first traversal continues")
}

func TestCorruptNode(t *testing.T) {
	list := setup(t)
	defer teardown()

	appendAll(t, list, 1, 1, 2)

	// overwrite node 1 with garbage
	trx := newTransaction(t)
	trx.Put(storage.Pool.TestData, []byte{0, 1, 1, 0, 0, 0, 1}, []byte{0x07})
	assert.Nil(t, trx.Commit(), "commit")

	_, err := list.All(storage.View, 1)
	assert.Equal(t, fault.ErrListCorrupt, err, "corrupt node not detected")
}

// the number of storage operations for one mutation must not depend on bucket size
func TestConstantCost(t *testing.T) {
	list := setup(t)
	defer teardown()

	cost := func(size uint32) (int, int, int) {
		bucket := uint16(size)
		values := make([]uint32, size)
		for i := range values {
			values[i] = uint32(i)
		}
		appendAll(t, list, bucket, values...)

		counting := &countingTransaction{Transaction: newTransaction(t)}
		defer func() { assert.Nil(t, counting.Commit(), "commit") }()

		_ = list.Append(counting, bucket, size)
		appendCost := counting.operations

		counting.operations = 0
		_ = list.Remove(counting, bucket, size/2)
		removeCost := counting.operations

		counting.operations = 0
		_ = list.Contains(counting, bucket, 1)
		containsCost := counting.operations

		return appendCost, removeCost, containsCost
	}

	smallAppend, smallRemove, smallContains := cost(10)
	largeAppend, largeRemove, largeContains := cost(1000)

	assert.Equal(t, smallAppend, largeAppend, "append cost grows with size")
	assert.Equal(t, smallRemove, largeRemove, "remove cost grows with size")
	assert.Equal(t, smallContains, largeContains, "contains cost grows with size")
	assert.Equal(t, 1, smallContains, "contains is a single read")
}

func TestSnapshotEnumerationIgnoresLaterCommits(t *testing.T) {
	list := setup(t)
	defer teardown()

	appendAll(t, list, 1, 10, 11, 12)

	snapshot, err := storage.NewSnapshot()
	if nil != err {
		t.Fatalf("new snapshot error: %s", err)
	}
	defer snapshot.Release()

	iter := list.Enumerate(snapshot, 1)
	v, ok := iter.Next()
	assert.True(t, ok, "first element")
	assert.Equal(t, uint32(10), v, "first element")

	trx := newTransaction(t)
	assert.Nil(t, list.Remove(trx, 1, 11), "remove")
	assert.Nil(t, list.Append(trx, 2, 11), "append")
	assert.Nil(t, trx.Commit(), "commit")

	actual := []uint32{v}
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		actual = append(actual, v)
	}
	assert.Nil(t, iter.Err(), "traversal error")
	assert.Equal(t, []uint32{10, 11, 12}, actual, "traversal saw later commit")

	checkIntegrity(t, list, 1, []uint32{10, 12})
	checkIntegrity(t, list, 2, []uint32{11})
}
