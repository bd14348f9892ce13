// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package linkedlist - persistent doubly linked list over a storage pool
//
// Each bucket (e.g. an owner) holds an insertion ordered set of
// values (e.g. kitty indexes).  Every element is a separate record
// addressed by bucket ++ option(value), so contains, append and remove
// are a fixed number of point reads and writes whatever the size of
// the bucket.
//
//   bucket ++ 0x00             - sentinel: option(last) ++ option(first)
//   bucket ++ 0x01 ++ value    - node:     option(prev) ++ option(next)
//
// Buckets and values use fixed width codecs so that keys of different
// buckets never overlap.
package linkedlist
