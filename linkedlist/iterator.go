// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package linkedlist

import (
	"github.com/bitmark-inc/kittiesd/fault"
	"github.com/bitmark-inc/kittiesd/storage"
)

// Iterator - forward traversal of one bucket
//
// each element costs one point read
type Iterator[K, V any] struct {
	list    *List[K, V]
	reader  storage.Reader
	bucket  K
	next    *V
	started bool
	done    bool
	err     error
}

// Next - the following element, false at the end of the chain or on error
func (iter *Iterator[K, V]) Next() (V, bool) {
	var zero V

	if iter.done {
		return zero, false
	}

	if !iter.started {
		iter.started = true
		head, _, err := iter.list.read(iter.reader, iter.bucket, nil)
		if nil != err {
			return iter.fail(err)
		}
		iter.next = head.next
	}

	if nil == iter.next {
		iter.done = true
		return zero, false
	}

	v := *iter.next
	n, found, err := iter.list.read(iter.reader, iter.bucket, &v)
	if nil != err {
		return iter.fail(err)
	}
	if !found {
		return iter.fail(fault.ErrListCorrupt)
	}
	iter.next = n.next
	return v, true
}

// Err - the error that stopped the traversal
func (iter *Iterator[K, V]) Err() error {
	return iter.err
}

func (iter *Iterator[K, V]) fail(err error) (V, bool) {
	var zero V
	iter.err = err
	iter.done = true
	return zero, false
}
