// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package linkedlist

import (
	"github.com/bitmark-inc/kittiesd/fault"
)

// option tags
const (
	noneTag = 0x00
	someTag = 0x01
)

// node - prev/next links of one element
//
// in the sentinel prev is the last element and next the first
type node[V any] struct {
	prev *V
	next *V
}

// pack: option(prev) ++ option(next)
func (n node[V]) pack(codec Codec[V]) []byte {
	buffer := make([]byte, 0, 2+2*codec.Size())
	buffer = packOption(buffer, codec, n.prev)
	return packOption(buffer, codec, n.next)
}

func packOption[V any](buffer []byte, codec Codec[V], v *V) []byte {
	if nil == v {
		return append(buffer, noneTag)
	}
	buffer = append(buffer, someTag)
	return append(buffer, codec.Encode(*v)...)
}

func unpackNode[V any](codec Codec[V], buffer []byte) (node[V], error) {
	n := node[V]{}

	prev, rest, err := unpackOption(codec, buffer)
	if nil != err {
		return n, err
	}
	next, rest, err := unpackOption(codec, rest)
	if nil != err {
		return n, err
	}
	if 0 != len(rest) {
		return n, fault.ErrListCorrupt
	}

	n.prev = prev
	n.next = next
	return n, nil
}

func unpackOption[V any](codec Codec[V], buffer []byte) (*V, []byte, error) {
	if 0 == len(buffer) {
		return nil, nil, fault.ErrListCorrupt
	}
	switch buffer[0] {
	case noneTag:
		return nil, buffer[1:], nil
	case someTag:
		size := codec.Size()
		if len(buffer) < 1+size {
			return nil, nil, fault.ErrListCorrupt
		}
		v, err := codec.Decode(buffer[1 : 1+size])
		if nil != err {
			return nil, nil, fault.ErrListCorrupt
		}
		return &v, buffer[1+size:], nil
	default:
		return nil, nil, fault.ErrListCorrupt
	}
}
