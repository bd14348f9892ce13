// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// maintain separate pools of a number of elements in key->value form
//
// This maintains a single LevelDB (or bbolt) database split into a
// series of tables.  Each table is defined by a prefix byte that is
// obtained from the prefix tag in the struct defining the available
// tables.
//
// All writes go through the one Transaction: they are buffered and
// cached until Commit writes them as a single batch; Abort discards
// them.  Reads through the transaction see its own pending writes,
// including deletions.
//
// Notes:
// 1. each separate pool has a single byte prefix
// 2. ++           = concatenation of byte data
// 3. id           = kitty index as big endian uint32 (4 bytes)
// 4. owner        = account (32 byte ed25519 public key)
// 5. option(id)   = 0x00 for none, 0x01 ++ id for some
// 6. count        = big endian uint64 (8 bytes)
// 7. *others*     = byte values of various length
//
// Kitties:
//
//   K ++ id                    - kitty dna
//                                data: 16 byte dna
//   N ++ "count"               - next kitty index to assign
//                                data: count
//   O ++ id                    - current owner
//                                data: owner
//   P ++ id                    - listed sale price, absent if not for sale
//                                data: count
//
// Ownership (persistent linked list, one chain per owner):
//
//   L ++ owner ++ 0x00         - head sentinel
//                                data: option(last id) ++ option(first id)
//   L ++ owner ++ 0x01 ++ id   - list node
//                                data: option(previous id) ++ option(next id)
//
// Lineage:
//
//   R ++ id                    - parents of a bred kitty
//                                data: id ++ id
//   C ++ id                    - children in breeding order
//                                data: uvarint(n) ++ n * id
//   M ++ id                    - breeding partners in breeding order
//                                data: uvarint(n) ++ n * id
//
// Currency:
//
//   B ++ owner                 - free balance
//                                data: count
//   F ++ owner                 - balance locks
//                                data: uvarint(n) ++ n * (lock id(8) ++ uvarint(amount) ++ reasons(1))
//
// Testing:
//   Z ++ key                   - testing data
package storage
