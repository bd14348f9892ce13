// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package currency

import (
	"encoding/binary"

	"github.com/bitmark-inc/kittiesd/fault"
)

// Lock - an amount frozen against some withdraw reasons
type Lock struct {
	Id      LockIdentifier  `json:"id"`
	Amount  uint64          `json:"amount"`
	Reasons WithdrawReasons `json:"reasons"`
}

// uvarint(n) ++ n * (id ++ uvarint(amount) ++ reasons)
func packLocks(locks []Lock) []byte {
	buffer := make([]byte, 0, binary.MaxVarintLen64+len(locks)*(LockIdentifierSize+binary.MaxVarintLen64+1))
	buffer = appendUvarint(buffer, uint64(len(locks)))
	for _, lock := range locks {
		buffer = append(buffer, lock.Id[:]...)
		buffer = appendUvarint(buffer, lock.Amount)
		buffer = append(buffer, byte(lock.Reasons))
	}
	return buffer
}

func unpackLocks(buffer []byte) ([]Lock, error) {
	if nil == buffer {
		return nil, nil
	}

	count, n := binary.Uvarint(buffer)
	if n <= 0 {
		return nil, fault.ErrRecordCorrupt
	}
	buffer = buffer[n:]
	if count > uint64(len(buffer)) {
		return nil, fault.ErrRecordCorrupt
	}

	locks := make([]Lock, 0, count)
	for i := uint64(0); i < count; i += 1 {
		if len(buffer) < LockIdentifierSize {
			return nil, fault.ErrRecordCorrupt
		}
		lock := Lock{}
		copy(lock.Id[:], buffer[:LockIdentifierSize])
		buffer = buffer[LockIdentifierSize:]

		amount, n := binary.Uvarint(buffer)
		if n <= 0 || n >= len(buffer) {
			return nil, fault.ErrRecordCorrupt
		}
		lock.Amount = amount
		lock.Reasons = WithdrawReasons(buffer[n])
		buffer = buffer[n+1:]

		locks = append(locks, lock)
	}
	if 0 != len(buffer) {
		return nil, fault.ErrRecordCorrupt
	}
	return locks, nil
}

func appendUvarint(buffer []byte, value uint64) []byte {
	b := make([]byte, binary.MaxVarintLen64)
	n := binary.PutUvarint(b, value)
	return append(buffer, b[:n]...)
}

// frozen - locks overlay each other so the largest applicable one counts
func frozen(locks []Lock, reasons WithdrawReasons) uint64 {
	max := uint64(0)
	for _, lock := range locks {
		if 0 != lock.Reasons&reasons && lock.Amount > max {
			max = lock.Amount
		}
	}
	return max
}

// the whole buffer must be one uvarint
func decodeUvarint(buffer []byte) (uint64, int) {
	value, n := binary.Uvarint(buffer)
	if n != len(buffer) {
		return 0, -1
	}
	return value, n
}
