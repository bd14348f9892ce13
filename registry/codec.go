// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package registry

import (
	"encoding/binary"

	"github.com/bitmark-inc/kittiesd/account"
	"github.com/bitmark-inc/kittiesd/fault"
	"github.com/bitmark-inc/kittiesd/kitty"
)

// owner buckets of the ownership list
type accountCodec struct{}

func (accountCodec) Size() int {
	return account.PublicKeySize
}

func (accountCodec) Encode(a *account.Account) []byte {
	return a.Bytes()
}

func (accountCodec) Decode(buffer []byte) (*account.Account, error) {
	return account.FromBytes(buffer)
}

// kitty values of the ownership list
type indexCodec struct{}

func (indexCodec) Size() int {
	return kitty.IndexSize
}

func (indexCodec) Encode(index kitty.Index) []byte {
	return index.Bytes()
}

func (indexCodec) Decode(buffer []byte) (kitty.Index, error) {
	return kitty.IndexFromBytes(buffer)
}

// lineage sequence: uvarint(n) ++ n * index
func packIndexes(indexes []kitty.Index) []byte {
	buffer := make([]byte, binary.MaxVarintLen64, binary.MaxVarintLen64+len(indexes)*kitty.IndexSize)
	n := binary.PutUvarint(buffer, uint64(len(indexes)))
	buffer = buffer[:n]
	for _, index := range indexes {
		buffer = append(buffer, index.Bytes()...)
	}
	return buffer
}

func unpackIndexes(buffer []byte) ([]kitty.Index, error) {
	if nil == buffer {
		return []kitty.Index{}, nil
	}
	count, n := binary.Uvarint(buffer)
	if n <= 0 {
		return nil, fault.ErrRecordCorrupt
	}
	buffer = buffer[n:]
	if uint64(len(buffer)) != count*kitty.IndexSize {
		return nil, fault.ErrRecordCorrupt
	}

	indexes := make([]kitty.Index, 0, count)
	for i := 0; i < len(buffer); i += kitty.IndexSize {
		index, err := kitty.IndexFromBytes(buffer[i : i+kitty.IndexSize])
		if nil != err {
			return nil, err
		}
		indexes = append(indexes, index)
	}
	return indexes, nil
}
