// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package account - ed25519 identities that own kitties and balances
//
// the binary form is the raw 32 byte public key so that it can be
// used directly as a fixed length component of a storage key.
// the text form is base58(variant ++ key ++ checksum[:4])
package account

import (
	"bytes"
	"crypto/ed25519"

	"github.com/mr-tron/base58"
	"golang.org/x/crypto/sha3"

	"github.com/bitmark-inc/kittiesd/fault"
)

// miscellaneous constants
const (
	checksumLength = 4

	// algorithm in high nibble, public key flag in bit 0
	ed25519Variant = 0x11

	// PublicKeySize - length of binary account
	PublicKeySize = ed25519.PublicKeySize
)

// Account - an ed25519 public key
type Account struct {
	publicKey [PublicKeySize]byte
}

// FromBytes - account from a raw public key
func FromBytes(publicKey []byte) (*Account, error) {
	if PublicKeySize != len(publicKey) {
		return nil, fault.ErrInvalidKeyLength
	}
	account := &Account{}
	copy(account.publicKey[:], publicKey)
	return account, nil
}

// FromBase58 - account from its text representation
func FromBase58(s string) (*Account, error) {
	decoded, err := base58.Decode(s)
	if nil != err {
		return nil, fault.ErrInvalidAccount
	}
	if 1+PublicKeySize+checksumLength != len(decoded) {
		return nil, fault.ErrInvalidKeyLength
	}
	if ed25519Variant != decoded[0] {
		return nil, fault.ErrInvalidAccount
	}

	checksumStart := len(decoded) - checksumLength
	checksum := sha3.Sum256(decoded[:checksumStart])
	if !bytes.Equal(checksum[:checksumLength], decoded[checksumStart:]) {
		return nil, fault.ErrChecksumMismatch
	}
	return FromBytes(decoded[1:checksumStart])
}

// Bytes - the raw public key
func (account *Account) Bytes() []byte {
	b := make([]byte, PublicKeySize)
	copy(b, account.publicKey[:])
	return b
}

// Equal - compare two accounts
func (account *Account) Equal(other *Account) bool {
	if nil == account || nil == other {
		return account == other
	}
	return account.publicKey == other.publicKey
}

// CheckSignature - verify an ed25519 signature made by this account
func (account *Account) CheckSignature(message []byte, signature Signature) error {
	if ed25519.SignatureSize != len(signature) {
		return fault.ErrInvalidSignature
	}
	if !ed25519.Verify(account.publicKey[:], message, signature) {
		return fault.ErrInvalidSignature
	}
	return nil
}

// String - base58 text with checksum
func (account *Account) String() string {
	buffer := make([]byte, 0, 1+PublicKeySize+checksumLength)
	buffer = append(buffer, ed25519Variant)
	buffer = append(buffer, account.publicKey[:]...)
	checksum := sha3.Sum256(buffer)
	buffer = append(buffer, checksum[:checksumLength]...)
	return base58.Encode(buffer)
}

// GoString - for %#v
func (account *Account) GoString() string {
	return "<ed25519-account:" + account.String() + ">"
}

// MarshalText - for JSON
func (account *Account) MarshalText() ([]byte, error) {
	return []byte(account.String()), nil
}

// UnmarshalText - from JSON
func (account *Account) UnmarshalText(s []byte) error {
	a, err := FromBase58(string(s))
	if nil != err {
		return err
	}
	*account = *a
	return nil
}
