// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package linkedlist

import (
	"github.com/bitmark-inc/kittiesd/fault"
	"github.com/bitmark-inc/kittiesd/storage"
)

// Codec - fixed width byte form of a bucket or a value
type Codec[T any] interface {
	Size() int
	Encode(T) []byte
	Decode([]byte) (T, error)
}

// List - one chain per bucket stored in a single pool
type List[K, V any] struct {
	pool   *storage.PoolHandle
	bucket Codec[K]
	value  Codec[V]
}

// New - list over the given pool
func New[K, V any](pool *storage.PoolHandle, bucket Codec[K], value Codec[V]) *List[K, V] {
	return &List[K, V]{
		pool:   pool,
		bucket: bucket,
		value:  value,
	}
}

// Contains - true if v is in the bucket
func (l *List[K, V]) Contains(r storage.Reader, bucket K, v V) bool {
	return r.Has(l.pool, l.key(bucket, &v))
}

// Append - add v as the last element of the bucket
func (l *List[K, V]) Append(trx storage.Transaction, bucket K, v V) error {
	if l.Contains(trx, bucket, v) {
		return fault.ErrListItemExists
	}

	head, _, err := l.read(trx, bucket, nil)
	if nil != err {
		return err
	}

	item := node[V]{
		prev: head.prev,
		next: nil,
	}

	if nil == head.prev {
		head.next = &v
	} else {
		tail, found, err := l.read(trx, bucket, head.prev)
		if nil != err {
			return err
		}
		if !found {
			return fault.ErrListCorrupt
		}
		tail.next = &v
		l.write(trx, bucket, head.prev, tail)
	}
	head.prev = &v

	l.write(trx, bucket, nil, head)
	l.write(trx, bucket, &v, item)
	return nil
}

// Remove - splice v out of the bucket
func (l *List[K, V]) Remove(trx storage.Transaction, bucket K, v V) error {
	item, found, err := l.read(trx, bucket, &v)
	if nil != err {
		return err
	}
	if !found {
		return fault.ErrListItemNotFound
	}

	head, found, err := l.read(trx, bucket, nil)
	if nil != err {
		return err
	}
	if !found {
		return fault.ErrListCorrupt
	}
	headChanged := false

	if nil == item.prev {
		head.next = item.next
		headChanged = true
	} else {
		err := l.relink(trx, bucket, item.prev, func(n *node[V]) { n.next = item.next })
		if nil != err {
			return err
		}
	}

	if nil == item.next {
		head.prev = item.prev
		headChanged = true
	} else {
		err := l.relink(trx, bucket, item.next, func(n *node[V]) { n.prev = item.prev })
		if nil != err {
			return err
		}
	}

	switch {
	case nil == head.next && nil == head.prev:
		trx.Delete(l.pool, l.key(bucket, nil))
	case headChanged:
		l.write(trx, bucket, nil, head)
	}

	trx.Delete(l.pool, l.key(bucket, &v))
	return nil
}

// Enumerate - lazy traversal from the first element
func (l *List[K, V]) Enumerate(r storage.Reader, bucket K) *Iterator[K, V] {
	return &Iterator[K, V]{
		list:   l,
		reader: r,
		bucket: bucket,
	}
}

// All - every element of the bucket in order
func (l *List[K, V]) All(r storage.Reader, bucket K) ([]V, error) {
	values := make([]V, 0)
	iter := l.Enumerate(r, bucket)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		values = append(values, v)
	}
	return values, iter.Err()
}

// update one neighbour of a removed node
func (l *List[K, V]) relink(trx storage.Transaction, bucket K, v *V, update func(*node[V])) error {
	n, found, err := l.read(trx, bucket, v)
	if nil != err {
		return err
	}
	if !found {
		return fault.ErrListCorrupt
	}
	update(&n)
	l.write(trx, bucket, v, n)
	return nil
}

// key: bucket ++ 0x00 for the sentinel, bucket ++ 0x01 ++ v for a node
func (l *List[K, V]) key(bucket K, v *V) []byte {
	b := l.bucket.Encode(bucket)
	key := make([]byte, 0, len(b)+1+l.value.Size())
	key = append(key, b...)
	if nil == v {
		return append(key, noneTag)
	}
	key = append(key, someTag)
	return append(key, l.value.Encode(*v)...)
}

// a missing sentinel is an empty list
func (l *List[K, V]) read(r storage.Reader, bucket K, v *V) (node[V], bool, error) {
	buffer := r.Get(l.pool, l.key(bucket, v))
	if nil == buffer {
		return node[V]{}, false, nil
	}
	n, err := unpackNode(l.value, buffer)
	if nil != err {
		return node[V]{}, false, err
	}
	return n, true, nil
}

func (l *List[K, V]) write(trx storage.Transaction, bucket K, v *V, n node[V]) {
	trx.Put(l.pool, l.key(bucket, v), n.pack(l.value))
}
